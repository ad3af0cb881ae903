// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mountbatch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-FFFFFF/rmount/internal/hostsfile"
	"github.com/matt-FFFFFF/rmount/internal/mounttab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// slowMounter blocks for a fixed delay before delegating, exercising
// out-of-order completion arrival.
type slowMounter struct {
	inner *fakeMounter
	delay time.Duration
}

func (s *slowMounter) Mount(ctx context.Context, remote, mountpoint string) error {
	time.Sleep(s.delay)

	return s.inner.Mount(ctx, remote, mountpoint)
}

func TestRunEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Configuration a=hostA:/data, b=hostB:/srv; snapshot satisfies b only.
	hosts := []hostsfile.Host{
		{Local: "a", Remote: "hostA:/data"},
		{Local: "b", Remote: "hostB:/srv"},
	}
	snap := mounttab.Snapshot{
		filepath.Join(testBaseDir, "b"): "hostB:/srv",
	}

	fm := newFakeMounter()
	reg := NewRegistry(hosts)
	rr := &recordingRenderer{}
	d := &Dispatcher{BaseDir: testBaseDir, Mounter: fm}

	require.NoError(t, Run(context.Background(), d, reg, snap, rr))

	a, err := reg.At(0)
	require.NoError(t, err)
	assert.Equal(t, StatusOkay, a.Status().Kind)

	b, err := reg.At(1)
	require.NoError(t, err)
	assert.Equal(t, StatusOkay, b.Status().Kind)

	for target := range reg.Targets() {
		assert.True(t, target.Status().Kind.Terminal(), "target %s not settled", target.Local)
	}

	// Initial pass painted both rows (a as Pending), then a was repainted.
	assert.Equal(t, []int{0, 1, 0}, rr.rows)
	assert.Equal(t, []StatusKind{StatusPending, StatusOkay, StatusOkay}, rr.kinds)
	assert.True(t, rr.finalized)

	assert.Equal(t, 1, fm.callCount("hostA:/data"))
	assert.Equal(t, 0, fm.callCount("hostB:/srv"))
}

func TestRunWarnedScenario(t *testing.T) {
	defer goleak.VerifyNone(t)

	hosts := []hostsfile.Host{
		{Local: "a", Remote: "hostA:/data"},
		{Local: "b", Remote: "hostB:/srv"},
	}
	snap := mounttab.Snapshot{
		filepath.Join(testBaseDir, "b"): "hostX:/other",
	}

	fm := newFakeMounter()
	reg := NewRegistry(hosts)
	d := &Dispatcher{BaseDir: testBaseDir, Mounter: fm}

	require.NoError(t, Run(context.Background(), d, reg, snap, &recordingRenderer{}))

	b, err := reg.At(1)
	require.NoError(t, err)
	assert.Equal(t, StatusWarned, b.Status().Kind)
	assert.Contains(t, b.Status().Reason, "hostX:/other")
	assert.Equal(t, 0, fm.callCount("hostB:/srv"))
}

func TestRunFailuresAreIsolated(t *testing.T) {
	defer goleak.VerifyNone(t)

	hosts := []hostsfile.Host{
		{Local: "a", Remote: "hostA:/data"},
		{Local: "b", Remote: "hostB:/srv"},
		{Local: "c", Remote: "hostC:/var"},
	}

	fm := newFakeMounter()
	fm.errs["hostB:/srv"] = errors.New("read: Connection reset by peer")

	reg := NewRegistry(hosts)
	d := &Dispatcher{BaseDir: testBaseDir, Mounter: &slowMounter{inner: fm, delay: 10 * time.Millisecond}}

	require.NoError(t, Run(context.Background(), d, reg, mounttab.Snapshot{}, &recordingRenderer{}))

	kinds := make([]StatusKind, 0, 3)
	for target := range reg.Targets() {
		kinds = append(kinds, target.Status().Kind)
	}

	assert.Equal(t, []StatusKind{StatusOkay, StatusFailed, StatusOkay}, kinds)

	b, err := reg.At(1)
	require.NoError(t, err)
	assert.Equal(t, "read: Connection reset by peer", b.Status().Reason)
}

func TestRunEmptyRegistry(t *testing.T) {
	defer goleak.VerifyNone(t)

	rr := &recordingRenderer{}
	d := &Dispatcher{BaseDir: testBaseDir, Mounter: newFakeMounter()}

	require.NoError(t, Run(context.Background(), d, NewRegistry(nil), mounttab.Snapshot{}, rr))
	assert.Empty(t, rr.rows)
	assert.True(t, rr.finalized)
}
