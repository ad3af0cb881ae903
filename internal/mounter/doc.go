// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mounter performs single mount operations by running an external
// mount command (sshfs). The operation is opaque, possibly slow, and
// blocking; orchestration above this package decides where it may run.
package mounter
