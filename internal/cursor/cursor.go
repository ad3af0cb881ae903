// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cursor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/rmount/internal/color"
	"github.com/matt-FFFFFF/rmount/internal/mountbatch"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultWidth = 80

	cursorUp    = "\033[%dA"
	cursorDown  = "\033[%dB"
	eraseToEnd  = "\033[K"
	unknownMark = "???"
	pendingMark = "..."
	okayMark    = "OK"
)

// Cursor is an incremental terminal writer. It tracks the row the real
// cursor currently occupies and repositions with relative movement only;
// the view's absolute screen offset is unknown to the program, so absolute
// positioning sequences must never be used.
type Cursor struct {
	w     io.Writer
	cur   int
	rows  int
	width int
}

// New creates a Cursor for a view of the given number of rows, none of
// which have been printed yet. The line width is taken from the terminal
// when the writer is one.
func New(w io.Writer, rows int) *Cursor {
	width := defaultWidth

	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}

	return NewWithWidth(w, rows, width)
}

// NewWithWidth creates a Cursor with an explicit line width. Tests use this
// with a capturing writer.
func NewWithWidth(w io.Writer, rows, width int) *Cursor {
	return &Cursor{w: w, rows: rows, width: width}
}

// GoTo moves the cursor to the given row of the view, emitting a relative
// movement sequence. Moving to the current row emits nothing.
func (c *Cursor) GoTo(y int) {
	switch {
	case y < c.cur:
		fmt.Fprintf(c.w, cursorUp, c.cur-y)
	case y > c.cur:
		fmt.Fprintf(c.w, cursorDown, y-c.cur)
	}

	c.cur = y
}

// Render rewrites the status line on the target's row, leaving every other
// line intact. The trailing newline drops the real cursor one row.
func (c *Cursor) Render(t *mountbatch.Target) {
	c.GoTo(t.Row)
	fmt.Fprint(c.w, c.line(t), eraseToEnd, "\n")
	c.cur++
}

// Finalize parks the cursor just past the last row so the process exits
// without leaving the view mid-update.
func (c *Cursor) Finalize() {
	c.GoTo(c.rows)
}

// line formats one status line. Color is cosmetic; with color disabled the
// same text is emitted plain.
func (c *Cursor) line(t *mountbatch.Target) string {
	status := t.Status()

	switch status.Kind {
	case mountbatch.StatusPending:
		return t.Local + ": " + pendingMark
	case mountbatch.StatusOkay:
		return color.Colorize(t.Local, color.FgGreen) + ": " + okayMark
	case mountbatch.StatusWarned:
		prefix := t.Local + " "
		return color.Colorize(t.Local, color.FgYellow) + " " + shorten(status.Reason, c.width-runewidth.StringWidth(prefix))
	case mountbatch.StatusFailed:
		prefix := t.Local + ": "
		return color.Colorize(t.Local, color.FgRed) + ": " + shorten(status.Reason, c.width-runewidth.StringWidth(prefix))
	default:
		// Must never be observable: targets are decided before their first render.
		return t.Local + ": " + unknownMark
	}
}

// shorten reduces diagnostic text to its first line and truncates it to the
// given display width. Truncation is cell-aware, so multi-byte text is never
// cut mid-rune.
func shorten(s string, width int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	if width < 0 {
		width = 0
	}

	return runewidth.Truncate(s, width, "")
}
