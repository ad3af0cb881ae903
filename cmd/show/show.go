// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show contains the command that reports the current state of the
// declared targets without mounting anything.
package show

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/rmount/internal/ctxlog"
	"github.com/matt-FFFFFF/rmount/internal/hostsfile"
	"github.com/matt-FFFFFF/rmount/internal/mounttab"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag    = "file"
	baseDirFlag = "base-dir"
)

// ShowCmd is the command that prints one row per declared target with its
// current mount state.
var ShowCmd = &cli.Command{
	Name: "show",
	Description: `Show the current state of every declared mount target.

Reads the hosts file and the mount table and prints one row per target:
mounted from the expected source, mounted from a different source, or not
mounted. Nothing is changed.`,
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
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	baseDir := cmd.String(baseDirFlag)
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		baseDir = filepath.Join(home, "remote")
	}

	source := cmd.String(fileFlag)
	if source == "" {
		source = filepath.Join(baseDir, ".hosts")
	}

	data, err := hostsfile.Read(ctx, afero.NewOsFs(), source)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	hosts, warns, err := hostsfile.Parse(source, data)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, w := range hostsfile.Warnings(warns) {
		ctxlog.Warn(ctx, fmt.Sprintf("skipping %s", w.Error()), "source", source)
	}

	if len(hosts) == 0 {
		ctxlog.Warn(ctx, "no targets declared", "source", source)
		return nil
	}

	lister := &mounttab.Lister{}

	snap, err := lister.List(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	table := tablewriter.NewWriter(cmd.Writer)
	table.SetHeader([]string{"TARGET", "REMOTE", "STATE"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, h := range hosts {
		table.Append([]string{h.Local, h.Remote, state(snap, baseDir, h)})
	}

	table.Render()

	return nil
}

// state classifies one target against the mount snapshot.
func state(snap mounttab.Snapshot, baseDir string, h hostsfile.Host) string {
	src, ok := snap.Source(filepath.Join(baseDir, h.Local))
	switch {
	case !ok:
		return "not mounted"
	case src == h.Remote:
		return "mounted"
	default:
		return fmt.Sprintf("mounted from %q", src)
	}
}
