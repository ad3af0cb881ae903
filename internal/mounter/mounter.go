// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
	"github.com/matt-FFFFFF/rmount/internal/teereader"
)

// maxDiagnosticSize caps the stderr retained from a mount process.
const maxDiagnosticSize = 256 * 1024

var (
	// ErrCouldNotStartProcess is returned when the mount process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start mount process")
	// ErrMountFailed is returned when the mount process exits unsuccessfully.
	ErrMountFailed = errors.New("mount failed")
)

// execCommand is a seam for tests.
var execCommand = exec.CommandContext

// Mounter performs one mount operation. Implementations may block for the
// full duration of the external operation; callers must not invoke Mount on
// a goroutine they cannot afford to suspend.
type Mounter interface {
	Mount(ctx context.Context, remote, mountpoint string) error
}

// MountError describes an unsuccessful mount attempt.
type MountError struct {
	// ExitCode is the mount process exit code, or -1 if it did not run.
	ExitCode int
	// Diagnostic is the captured stderr of the mount process, capped.
	Diagnostic string
	// LastLine is the last complete stderr line, for one-line summaries.
	LastLine string
}

// Error implements the error interface. It returns the diagnostic text
// itself, which is what the status view displays.
func (e *MountError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("mount process exited with code %d", e.ExitCode)
	}

	return e.Diagnostic
}

// Is reports that a MountError matches ErrMountFailed.
func (e *MountError) Is(target error) bool {
	return target == ErrMountFailed
}

var _ Mounter = (*SSHFS)(nil)

// SSHFS mounts remote specifications with the sshfs command.
type SSHFS struct {
	// Path is the sshfs executable to run. Defaults to "sshfs".
	Path string
	// Options are passed as repeated -o arguments.
	Options []string
}

// DefaultOptions keep an idle sshfs connection alive so that a hung server
// is eventually detected by sshfs itself; this layer adds no timeout of its
// own.
func DefaultOptions() []string {
	return []string{
		"ServerAliveCountMax=3",
		"ServerAliveInterval=10",
	}
}

// Mount runs one sshfs invocation for the given remote spec and mount point.
// It blocks until the process exits. On failure the returned error is a
// *MountError carrying the process's diagnostic output.
func (s *SSHFS) Mount(ctx context.Context, remote, mountpoint string) error {
	path := s.Path
	if path == "" {
		path = "sshfs"
	}

	args := make([]string, 0, 2*len(s.Options)+2)
	for opt := range slices.Values(s.Options) {
		args = append(args, "-o", opt)
	}

	args = append(args, remote, mountpoint)

	logger := ctxlog.Logger(ctx).With("remote", remote, "mountpoint", mountpoint)
	logger.Debug("starting mount process", "path", path, "args", args)

	stderr := teereader.NewLastLineWriter(maxDiagnosticSize)

	cmd := execCommand(ctx, path, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		logger.Debug("mount process succeeded")
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("mount process failed",
		"exitCode", exitErr.ExitCode(),
		"lastLine", stderr.LastLine(),
	)

	return &MountError{
		ExitCode:   exitErr.ExitCode(),
		Diagnostic: string(stderr.Bytes()),
		LastLine:   stderr.LastLine(),
	}
}
