// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/rafagsiqueira/landfall/internal/command/arguments"
	"github.com/rafagsiqueira/landfall/internal/command/views"
	"github.com/rafagsiqueira/landfall/internal/inventory"
	"github.com/rafagsiqueira/landfall/internal/landfall"
	"github.com/rafagsiqueira/landfall/internal/states/statemgr"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// SyncCommand is a Command implementation that discovers the account's live
// resources, generates configuration for them, and imports them into the
// tracked state.
type SyncCommand struct {
	Meta

	// testFetcher, when set, replaces the real API client. Only tests set
	// this.
	testFetcher inventory.Fetcher
}

func (c *SyncCommand) Run(rawArgs []string) int {
	var diags tfdiags.Diagnostics
	ctx := c.CommandContext()

	// Parse and apply global view arguments
	common, rawArgs := arguments.ParseView(rawArgs)
	c.View.Configure(common)

	args, parseDiags := arguments.ParseSync(rawArgs)
	diags = diags.Append(parseDiags)
	c.View.SetShowSensitive(args.ShowSensitive)

	// Instantiate the view, even if there are flag errors, so that we
	// render diagnostics according to the desired view.
	view := views.NewSync(args.ViewType, c.View)

	if diags.HasErrors() {
		view.Diagnostics(diags)
		view.HelpPrompt()
		return 1
	}

	fetcher, fetcherDiags := c.fetcher()
	diags = diags.Append(fetcherDiags)
	if diags.HasErrors() {
		view.Diagnostics(diags)
		return 1
	}

	var mgr statemgr.Full = statemgr.NewFilesystem(args.StatePath)
	if !args.Lock {
		mgr = &statemgr.LockDisabled{Inner: mgr}
	}
	reconciler := &landfall.Reconciler{
		Fetcher: fetcher,
		States:  mgr,
		OutDir:  args.OutDir,
		DryRun:  args.DryRun,
	}

	result, runDiags := reconciler.Run(ctx)
	diags = diags.Append(runDiags)
	view.Diagnostics(diags)
	if diags.HasErrors() {
		return 1
	}

	view.Results(result)
	view.Outputs(result.Outputs)

	// Partial imports leave the account only partly adopted; surface that
	// in the exit status unless the user opted out.
	if diags.HasWarnings() && !args.IgnoreBindErrors {
		return 1
	}
	return 0
}

// fetcher builds the API client from the environment, or returns the test
// override.
func (c *SyncCommand) fetcher() (inventory.Fetcher, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	if c.testFetcher != nil {
		return c.testFetcher, diags
	}

	token := c.apiToken()
	if token == "" {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"No API token configured",
			fmt.Sprintf("Set the %s (or %s) environment variable to a DigitalOcean API token with read access.", EnvToken, EnvTokenAlt),
		))
		return nil, diags
	}

	fetcher, err := inventory.NewDigitalOcean(token)
	if err != nil {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to configure API client",
			err.Error(),
		))
		return nil, diags
	}
	return fetcher, diags
}

func (c *SyncCommand) Help() string {
	helpText := `
Usage: landfall [global options] sync [options]

  Discovers the resources that currently exist in the configured
  DigitalOcean account, writes configuration for them grouped into one
  module per category, and imports each resource into the local tracked
  state.

  Running sync again is safe: resources that are already tracked are
  skipped, and the generated configuration is rewritten deterministically.

Options:

  -state=path            Path to the tracked state file.
                         Defaults to "landfall.state.json".

  -out=path              Directory to write generated configuration into.
                         Defaults to "generated".

  -dry-run               Run discovery and emission but write neither
                         configuration nor state.

  -lock=false            Don't hold a lock on the state file while running.

  -ignore-bind-errors    Exit zero even when some resources failed to
                         import.

  -show-sensitive        Display sensitive exported values unredacted.

  -json                  Machine readable output.

  -no-color              Disable ANSI color codes in output.
`
	return strings.TrimSpace(helpText)
}

func (c *SyncCommand) Synopsis() string {
	return "Discover, generate, and import account resources"
}
