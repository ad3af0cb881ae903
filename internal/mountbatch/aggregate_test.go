// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/rmount/internal/hostsfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRegistry(t *testing.T, n int) *Registry {
	t.Helper()

	hosts := make([]hostsfile.Host, 0, n)
	for i := range n {
		hosts = append(hosts, hostsfile.Host{Local: string(rune('a' + i)), Remote: "host:/x"})
	}

	reg := NewRegistry(hosts)
	for i := range n {
		require.NoError(t, reg.Apply(i, Pending()))
	}

	return reg
}

func TestDrainAppliesByRowNotArrivalOrder(t *testing.T) {
	reg := pendingRegistry(t, 3)
	rr := &recordingRenderer{}

	ch := make(chan Completion, 3)
	ch <- Completion{Row: 2, Status: Okay()}
	ch <- Completion{Row: 0, Status: Failed("no route to host")}
	ch <- Completion{Row: 1, Status: Okay()}
	close(ch)

	require.NoError(t, Drain(context.Background(), ch, reg, rr))

	kinds := make([]StatusKind, 0, 3)
	for target := range reg.Targets() {
		kinds = append(kinds, target.Status().Kind)
	}

	assert.Equal(t, []StatusKind{StatusFailed, StatusOkay, StatusOkay}, kinds)
	assert.Equal(t, []int{2, 0, 1}, rr.rows, "rows rendered in arrival order, keyed by row")
	assert.True(t, rr.finalized)
}

func TestDrainRowOutOfRangeIsFatal(t *testing.T) {
	reg := pendingRegistry(t, 1)

	ch := make(chan Completion, 1)
	ch <- Completion{Row: 9, Status: Okay()}
	close(ch)

	err := Drain(context.Background(), ch, reg, &recordingRenderer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestDrainDoubleCompletionIsFatal(t *testing.T) {
	reg := pendingRegistry(t, 1)

	ch := make(chan Completion, 2)
	ch <- Completion{Row: 0, Status: Okay()}
	ch <- Completion{Row: 0, Status: Failed("x")}
	close(ch)

	err := Drain(context.Background(), ch, reg, &recordingRenderer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestDrainLeftoverPendingIsFatal(t *testing.T) {
	reg := pendingRegistry(t, 2)

	ch := make(chan Completion, 1)
	ch <- Completion{Row: 0, Status: Okay()}
	close(ch)

	rr := &recordingRenderer{}

	err := Drain(context.Background(), ch, reg, rr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotSettled)
	assert.False(t, rr.finalized, "view is not finalized after an invariant violation")
}
