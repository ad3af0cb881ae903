// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounter

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestMountSuccess(t *testing.T) {
	skipOnWindows(t)

	var gotArgs []string

	stubs := gostub.Stub(&execCommand, func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		gotArgs = args
		return exec.CommandContext(ctx, "true")
	})
	defer stubs.Reset()

	s := &SSHFS{Options: []string{"ServerAliveInterval=10"}}

	err := s.Mount(context.Background(), "hostA:/data", "/mnt/alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"-o", "ServerAliveInterval=10", "hostA:/data", "/mnt/alpha"}, gotArgs)
}

func TestMountFailureCapturesDiagnostic(t *testing.T) {
	skipOnWindows(t)

	stubs := gostub.Stub(&execCommand, func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo 'read: Connection reset by peer' >&2; exit 1")
	})
	defer stubs.Reset()

	s := &SSHFS{}

	err := s.Mount(context.Background(), "hostA:/data", "/mnt/alpha")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMountFailed)

	var merr *MountError

	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 1, merr.ExitCode)
	assert.Contains(t, merr.Diagnostic, "Connection reset by peer")
	assert.Equal(t, "read: Connection reset by peer", merr.LastLine)
}

func TestMountCommandMissing(t *testing.T) {
	s := &SSHFS{Path: "/nonexistent/definitely-not-sshfs"}

	err := s.Mount(context.Background(), "hostA:/data", "/mnt/alpha")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCouldNotStartProcess)
	assert.NotErrorIs(t, err, ErrMountFailed)
}

func TestMountErrorMessage(t *testing.T) {
	withDiag := &MountError{ExitCode: 1, Diagnostic: "remote host has disconnected"}
	assert.Equal(t, "remote host has disconnected", withDiag.Error())

	noDiag := &MountError{ExitCode: 127}
	assert.Equal(t, "mount process exited with code 127", noDiag.Error())
}

func TestDefaultOptions(t *testing.T) {
	assert.Equal(t, []string{"ServerAliveCountMax=3", "ServerAliveInterval=10"}, DefaultOptions())
}
