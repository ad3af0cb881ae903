// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package up contains the command that brings all declared targets into a
// mounted state.
package up

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
	"github.com/matt-FFFFFF/rmount/internal/cursor"
	"github.com/matt-FFFFFF/rmount/internal/hostsfile"
	"github.com/matt-FFFFFF/rmount/internal/mountbatch"
	"github.com/matt-FFFFFF/rmount/internal/mounter"
	"github.com/matt-FFFFFF/rmount/internal/mounttab"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag    = "file"
	baseDirFlag = "base-dir"
	sshfsFlag   = "sshfs"
	optionFlag  = "option"
)

// ErrNoHomeDir is returned when neither a base directory nor a home
// directory is available.
var ErrNoHomeDir = errors.New("cannot determine home directory; set --base-dir")

// UpCmd is the command that mounts all declared targets in parallel.
var UpCmd = &cli.Command{
	Name: "up",
	Description: `Bring every declared mount target into a mounted state.

Targets are declared one per line as "local=remote" in the hosts file (or as
a YAML document for .yaml/.yml sources). Each target mounts at
<base-dir>/<local>. The hosts file source supports Hashicorp's go-getter
syntax, which allows fetching from various sources.

Already-mounted targets resolve immediately; the remaining targets are
mounted concurrently with sshfs, one status line per target updating in
place as attempts complete. A failed target does not affect the others and
does not change the exit status.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Hosts file source. Supports Hashicorp's go-getter syntax. " +
				"Defaults to <base-dir>/.hosts.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     baseDirFlag,
			Aliases:  []string{"b"},
			Usage:    "Directory the targets mount under. Defaults to $HOME/remote.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     sshfsFlag,
			Usage:    "Path of the sshfs executable.",
			Value:    "sshfs",
			OnlyOnce: true,
		},
		&cli.StringSliceFlag{
			Name:    optionFlag,
			Aliases: []string{"o"},
			Usage: "sshfs -o option; specify multiple times. " +
				"Defaults to ServerAliveCountMax=3 and ServerAliveInterval=10.",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	baseDir, source, err := resolvePaths(cmd.String(baseDirFlag), cmd.String(fileFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger.Debug("resolved paths", "baseDir", baseDir, "source", source)

	hosts, err := loadHosts(ctx, afero.NewOsFs(), source)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if len(hosts) == 0 {
		logger.Warn("no targets declared", "source", source)
		return nil
	}

	// The snapshot is required to avoid double-mounting; without it the
	// run aborts before any mount attempt.
	lister := &mounttab.Lister{}

	snap, err := lister.List(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	options := cmd.StringSlice(optionFlag)
	if len(options) == 0 {
		options = mounter.DefaultOptions()
	}

	reg := mountbatch.NewRegistry(hosts)
	view := cursor.New(cmd.Writer, reg.Len())
	dispatcher := &mountbatch.Dispatcher{
		BaseDir: baseDir,
		Mounter: &mounter.SSHFS{Path: cmd.String(sshfsFlag), Options: options},
	}

	if err := mountbatch.Run(ctx, dispatcher, reg, snap, view); err != nil {
		// Invariant violations only; per-target failures are in the view.
		return cli.Exit(err.Error(), 1)
	}

	summarize(ctx, reg)

	return nil
}

// resolvePaths fills in the default base directory and hosts file source.
func resolvePaths(baseDir, source string) (string, string, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", errors.Join(ErrNoHomeDir, err)
		}

		baseDir = filepath.Join(home, "remote")
	}

	if source == "" {
		source = filepath.Join(baseDir, ".hosts")
	}

	return baseDir, source, nil
}

// loadHosts reads and parses the hosts source, logging (not failing on)
// malformed entries.
func loadHosts(ctx context.Context, fsys afero.Fs, source string) ([]hostsfile.Host, error) {
	data, err := hostsfile.Read(ctx, fsys, source)
	if err != nil {
		return nil, err
	}

	hosts, warns, err := hostsfile.Parse(source, data)
	if err != nil {
		return nil, err
	}

	for _, w := range hostsfile.Warnings(warns) {
		ctxlog.Warn(ctx, fmt.Sprintf("skipping %s", w.Error()), "source", source)
	}

	return hosts, nil
}

// summarize logs the run outcome after the view is finalized.
func summarize(ctx context.Context, reg *mountbatch.Registry) {
	logger := ctxlog.Logger(ctx)

	var okay, warned, failed int

	for t := range reg.Targets() {
		switch t.Status().Kind {
		case mountbatch.StatusWarned:
			warned++
		case mountbatch.StatusFailed:
			failed++

			logger.Warn("mount failed", "target", t.Local, "reason", lastLine(t.Status().Reason))
		default:
			okay++
		}
	}

	logger.Info("run complete", "okay", okay, "warned", warned, "failed", failed)
}

// lastLine returns the last non-empty line of a diagnostic, which for mount
// tools is usually the actual error.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] != "" {
			return lines[i]
		}
	}

	return ""
}
