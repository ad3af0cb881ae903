// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mounttab takes a one-time, read-only snapshot of the currently
// mounted filesystems by parsing mount(8) output.
package mounttab
