// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"strings"
	"sync"
)

// LastLineWriter is an io.Writer that captures the written output up to a
// byte cap and tracks the last complete line seen. It is used to retain the
// diagnostic output of a mount process for later display.
// It is safe for concurrent use.
type LastLineWriter struct {
	max      int
	full     bytes.Buffer
	lastLine string
	partial  strings.Builder
	mu       sync.RWMutex
}

// NewLastLineWriter creates a LastLineWriter that retains at most max bytes
// of the full output. Last-line tracking still observes bytes written beyond
// the cap.
func NewLastLineWriter(max int) *LastLineWriter {
	return &LastLineWriter{max: max}
}

// Write implements io.Writer. It never returns an error; bytes beyond the
// cap are counted but not retained in the full buffer.
func (lw *LastLineWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if remaining := lw.max - lw.full.Len(); remaining > 0 {
		if len(p) <= remaining {
			lw.full.Write(p)
		} else {
			lw.full.Write(p[:remaining])
		}
	}

	lw.track(string(p))

	return len(p), nil
}

// track updates the last complete line from new data.
// Must be called with the write lock held.
func (lw *LastLineWriter) track(data string) {
	if data == "" {
		return
	}

	lw.partial.WriteString(data)
	combined := lw.partial.String()

	lines := strings.Split(combined, "\n")
	if len(lines) == 1 {
		// No newline yet; the partial builder already holds the fragment.
		return
	}

	lw.lastLine = lines[len(lines)-2]
	lw.partial.Reset()

	// Data not ending in a newline leaves a fresh partial fragment.
	if tail := lines[len(lines)-1]; tail != "" {
		lw.partial.WriteString(tail)
	}
}

// LastLine returns the last complete line written, or, if no complete line
// has been written yet, the current partial fragment.
// This method is safe for concurrent use.
func (lw *LastLineWriter) LastLine() string {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	if lw.lastLine == "" {
		return lw.partial.String()
	}

	return lw.lastLine
}

// Bytes returns the retained output, truncated at the cap.
// This method is safe for concurrent use.
func (lw *LastLineWriter) Bytes() []byte {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	return lw.full.Bytes()
}

// Truncated reports whether output beyond the cap was discarded.
func (lw *LastLineWriter) Truncated() bool {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	return lw.full.Len() >= lw.max
}
