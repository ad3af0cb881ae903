// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
	"github.com/matt-FFFFFF/rmount/internal/mounter"
	"github.com/matt-FFFFFF/rmount/internal/mounttab"
)

// Completion is the one-shot message an asynchronous mount attempt sends to
// the aggregator: the target's row and its resulting terminal status.
type Completion struct {
	Row    int
	Status Status
}

// Renderer keeps the per-target status lines visible. The dispatcher renders
// each target once, immediately after deciding it; the aggregator re-renders
// a target's row whenever its status changes.
type Renderer interface {
	// Render writes the target's current status line at its row.
	Render(t *Target)
	// Finalize parks the cursor past the last row before the process exits.
	Finalize()
}

// Dispatcher decides, once per target, whether the target is already
// satisfied by the mount snapshot or needs an asynchronous mount attempt.
// It never blocks on the mount operation itself.
type Dispatcher struct {
	// BaseDir is the directory under which every target mounts, at
	// BaseDir/<local name>.
	BaseDir string
	// Mounter performs the external mount operations.
	Mounter mounter.Mounter
}

// Dispatch walks all targets once, in row order. Targets resolvable from the
// snapshot get their terminal status synchronously; the rest are marked
// Pending and a goroutine per target performs the mount attempt, sending
// exactly one Completion. Every target's line is rendered immediately after
// its decision, so the whole view is painted before any asynchronous
// completion arrives.
//
// The returned channel is closed once all launched attempts have reported.
// The returned count is the number of attempts launched.
func (d *Dispatcher) Dispatch(ctx context.Context, reg *Registry, snap mounttab.Snapshot, r Renderer) (<-chan Completion, int, error) {
	ch := make(chan Completion, reg.Len())
	wg := &sync.WaitGroup{}
	launched := 0

	for t := range reg.Targets() {
		status, launch := decide(t, d.BaseDir, snap)

		if err := reg.Apply(t.Row, status); err != nil {
			return nil, launched, err
		}

		if launch {
			launched++

			wg.Add(1)

			mountpoint := filepath.Join(d.BaseDir, t.Local)

			go func(row int, remote string) {
				defer wg.Done()

				ch <- Completion{Row: row, Status: attempt(ctx, d.Mounter, remote, mountpoint)}
			}(t.Row, t.Remote)
		}

		r.Render(t)

		ctxlog.Debug(ctx, "dispatched target",
			"target", t.Local,
			"status", t.Status().Kind.String(),
		)
	}

	// Producers each send exactly once; close when the last has reported.
	go func() {
		wg.Wait()
		close(ch)
	}()

	return ch, launched, nil
}

// decide classifies one target against the snapshot. It returns the status
// to apply now and whether an asynchronous mount attempt must be launched.
func decide(t *Target, baseDir string, snap mounttab.Snapshot) (Status, bool) {
	mountpoint := filepath.Join(baseDir, t.Local)

	src, ok := snap.Source(mountpoint)

	switch {
	case ok && src == t.Remote:
		return Okay(), false
	case ok:
		return Warned(fmt.Sprintf("already mounted, but wrong source? %q", src)), false
	default:
		return Pending(), true
	}
}

// attempt performs one blocking mount operation and maps its outcome to a
// terminal status.
func attempt(ctx context.Context, m mounter.Mounter, remote, mountpoint string) Status {
	if err := m.Mount(ctx, remote, mountpoint); err != nil {
		return Failed(err.Error())
	}

	return Okay()
}
