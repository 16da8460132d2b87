// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"flag"
	"fmt"
	"io"

	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// DefaultStatePath is where tracked state lives when -state is not given.
const DefaultStatePath = "landfall.state.json"

// DefaultOutDir is where generated configuration is written when -out is
// not given.
const DefaultOutDir = "generated"

// Sync represents the command-line arguments for the sync command.
type Sync struct {
	// StatePath is the local tracked-state file.
	StatePath string

	// OutDir is the directory the generated configuration tree is written
	// into.
	OutDir string

	// DryRun runs the pipeline without writing configuration or state.
	DryRun bool

	// IgnoreBindErrors makes per-resource import warnings non-fatal to the
	// process exit status.
	IgnoreBindErrors bool

	// Lock guards the state file against concurrent runs. On by default;
	// -lock=false disables it.
	Lock bool

	// ShowSensitive, when set, displays sensitive output values unredacted.
	ShowSensitive bool

	// ViewType specifies which output format to use: human or JSON.
	ViewType ViewType
}

// ParseSync processes CLI arguments, returning a Sync value and errors. If
// errors are encountered, a Sync value is still returned representing the
// best effort interpretation of the arguments.
func ParseSync(args []string) (*Sync, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	sync := &Sync{ViewType: ViewHuman}

	var jsonOutput bool
	cmdFlags := flag.NewFlagSet("sync", flag.ContinueOnError)
	cmdFlags.SetOutput(io.Discard)
	cmdFlags.StringVar(&sync.StatePath, "state", DefaultStatePath, "path to the tracked state file")
	cmdFlags.StringVar(&sync.OutDir, "out", DefaultOutDir, "directory for generated configuration")
	cmdFlags.BoolVar(&sync.DryRun, "dry-run", false, "run without writing configuration or state")
	cmdFlags.BoolVar(&sync.IgnoreBindErrors, "ignore-bind-errors", false, "exit zero even when some imports failed")
	cmdFlags.BoolVar(&sync.Lock, "lock", true, "hold a lock on the state file while running")
	cmdFlags.BoolVar(&sync.ShowSensitive, "show-sensitive", false, "display sensitive values unredacted")
	cmdFlags.BoolVar(&jsonOutput, "json", false, "machine readable output")

	if err := cmdFlags.Parse(args); err != nil {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to parse command-line flags",
			err.Error(),
		))
		return sync, diags
	}
	if jsonOutput {
		sync.ViewType = ViewJSON
	}

	if remaining := cmdFlags.Args(); len(remaining) > 0 {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Too many command line arguments",
			fmt.Sprintf("The sync command expects no positional arguments, but was given %q.", remaining),
		))
	}
	if sync.StatePath == "" {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Invalid state path",
			"The -state flag must name a file path.",
		))
	}
	if sync.OutDir == "" {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Invalid output directory",
			"The -out flag must name a directory path.",
		))
	}

	return sync, diags
}
