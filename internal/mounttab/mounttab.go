// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounttab

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
)

var (
	// ErrListMounts is returned when the mount listing command cannot be run
	// or exits unsuccessfully. This is fatal: without a snapshot the run
	// cannot tell mounted targets from unmounted ones.
	ErrListMounts = errors.New("failed to list mounted filesystems")
)

// mountLinePattern matches the relevant part of a mount(8) output line:
// "<source> on <mountpoint> <trailing text>".
var mountLinePattern = regexp.MustCompile(`^([^ ]+) on ([^ ]+) `)

// execCommand is a seam for tests.
var execCommand = exec.CommandContext

// Snapshot is an immutable point-in-time mapping from absolute mount point
// to the source mounted there. It is built once before any orchestration
// begins and never mutated afterwards, so concurrent readers are safe.
type Snapshot map[string]string

// Source returns the source currently mounted at the given path.
func (s Snapshot) Source(path string) (string, bool) {
	src, ok := s[path]
	return src, ok
}

// Parse builds a Snapshot from mount(8) output. Lines that do not look like
// mount records are ignored. When several lines map the same mount point the
// later one wins; that is how stacked mounts behave, the latest mount takes
// effect.
func Parse(r io.Reader) (Snapshot, error) {
	snap := make(Snapshot)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := mountLinePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		snap[m[2]] = m[1]
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Join(ErrListMounts, err)
	}

	return snap, nil
}

// Lister enumerates the currently mounted filesystems by running an external
// listing command, mount(8) by default.
type Lister struct {
	// Path is the listing command to run. Defaults to "mount".
	Path string
}

// List runs the listing command once and parses its output into a Snapshot.
// A command that cannot be started or exits unsuccessfully yields an error
// wrapping ErrListMounts, with the command's stderr included.
func (l *Lister) List(ctx context.Context) (Snapshot, error) {
	path := l.Path
	if path == "" {
		path = "mount"
	}

	ctxlog.Debug(ctx, "listing mounted filesystems", "path", path)

	var stdout, stderr bytes.Buffer

	cmd := execCommand(ctx, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("%w: %s: %w", ErrListMounts, msg, err)
		}

		return nil, errors.Join(ErrListMounts, err)
	}

	snap, err := Parse(&stdout)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "mount snapshot taken", "entries", len(snap))

	return snap, nil
}
