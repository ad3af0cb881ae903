// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cursor renders the per-target status view: a fixed set of rows
// updated in place, out of order, without redrawing the whole screen. Only
// relative cursor movement is emitted.
package cursor
