// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

import (
	"context"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
	"github.com/matt-FFFFFF/rmount/internal/mounttab"
)

// Run brings all targets in the registry to a terminal status: one
// synchronous dispatch pass over the targets, then a blocking drain of the
// completion channel until every launched attempt has reported.
//
// There is no cancellation or timeout at this layer; a hanging mount
// operation hangs the run. Keep-alive behaviour belongs to the mount
// command's own configuration. Context cancellation propagates into the
// external processes, which ends their attempts.
func Run(ctx context.Context, d *Dispatcher, reg *Registry, snap mounttab.Snapshot, r Renderer) error {
	ch, launched, err := d.Dispatch(ctx, reg, snap, r)
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "dispatch pass complete",
		"targets", reg.Len(),
		"launched", launched,
	)

	return Drain(ctx, ch, reg, r)
}
