// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mountbatch is the concurrent mount-orchestration engine: the
// per-target status state machine, the fan-out of concurrent mount attempts,
// and the single aggregation point that serializes status updates.
//
// The registry is mutated by exactly one logical owner at any point in the
// run: the dispatcher during its synchronous pass, then the aggregator as
// the completion channel's sole consumer. The completion channel is the only
// concurrency primitive; each producer sends exactly one message.
package mountbatch
