// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/rmount/cmd/show"
	"github.com/matt-FFFFFF/rmount/cmd/up"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		up.UpCmd,
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "rmount",
	Description: `rmount brings a declared set of remote sshfs mounts into a mounted state,
in parallel, with one live status line per target. Targets already mounted
with the expected source are confirmed immediately; targets mounted from a
different source are flagged; the rest are mounted concurrently, each line
updating in place as its attempt completes.`,
	Usage:     "rmount up",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
