// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader provides a writer that captures process output up to a
// byte cap while tracking the last complete line, for progress and
// diagnostic display purposes.
package teereader
