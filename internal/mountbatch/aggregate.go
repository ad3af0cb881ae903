// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
)

// ErrNotSettled is returned when the completion channel is exhausted but a
// target still holds a non-terminal status. Like the other invariant errors
// this indicates a bug in the orchestration, not a runtime condition.
var ErrNotSettled = errors.New("target left without a terminal status")

// Drain is the single consumer of the completion channel. It applies each
// incoming result to the registry by explicit row key, never by arrival
// order, and re-renders the affected row. It returns once the channel is
// exhausted, at which point every target must hold a terminal status; the
// renderer is then finalized so the process does not exit mid-view.
func Drain(ctx context.Context, ch <-chan Completion, reg *Registry, r Renderer) error {
	received := 0

	for c := range ch {
		received++

		if err := reg.Apply(c.Row, c.Status); err != nil {
			return err
		}

		t, err := reg.At(c.Row)
		if err != nil {
			return err
		}

		r.Render(t)

		ctxlog.Debug(ctx, "completion applied",
			"target", t.Local,
			"status", c.Status.Kind.String(),
		)
	}

	for t := range reg.Targets() {
		if !t.Status().Kind.Terminal() {
			return fmt.Errorf("%w: %s (%s)", ErrNotSettled, t.Local, t.Status().Kind)
		}
	}

	r.Finalize()

	ctxlog.Debug(ctx, "aggregation complete", "completions", received)

	return nil
}
