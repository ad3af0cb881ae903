// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package hostsfile reads the declared mount targets. Two formats are
// supported: the classic line-oriented "local=remote" hosts file and a YAML
// document. Sources can be local paths or go-getter URLs. Malformed entries
// are skipped with a diagnostic; they never abort the run.
package hostsfile
