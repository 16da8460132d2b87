// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package views renders command results and diagnostics for humans or for
// machine consumption, behind per-command view interfaces so commands never
// print directly.
package views

import (
	"github.com/mitchellh/colorstring"

	"github.com/rafagsiqueira/landfall/internal/command/arguments"
	"github.com/rafagsiqueira/landfall/internal/terminal"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// View is the layer of abstraction between a command and its output
// streams. Per-command views wrap this to render their specific results.
type View struct {
	streams  *terminal.Streams
	colorize *colorstring.Colorize

	showSensitive bool
}

// NewView returns an initialized View with colors enabled whenever stdout
// is a terminal.
func NewView(streams *terminal.Streams) *View {
	return &View{
		streams: streams,
		colorize: &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !streams.Stdout.IsTerminal(),
			Reset:   true,
		},
	}
}

// Configure applies the global view arguments to the View.
func (v *View) Configure(view *arguments.View) {
	if view.NoColor {
		v.colorize.Disable = true
	}
}

// SetShowSensitive enables displaying sensitive values unredacted.
func (v *View) SetShowSensitive(showSensitive bool) {
	v.showSensitive = showSensitive
}

// Diagnostics renders a set of warnings and errors. Warnings go to stdout
// alongside normal output; errors go to stderr.
func (v *View) Diagnostics(diags tfdiags.Diagnostics) {
	if len(diags) == 0 {
		return
	}

	for _, diag := range diags {
		desc := diag.Description()
		switch diag.Severity() {
		case tfdiags.Warning:
			v.streams.Print(v.colorize.Color("[yellow][bold]Warning: [reset][bold]" + desc.Summary + "[reset]\n"))
			if desc.Detail != "" {
				v.streams.Println(desc.Detail)
			}
			v.streams.Println("")
		default:
			v.streams.Eprint(v.colorize.Color("[red][bold]Error: [reset][bold]" + desc.Summary + "[reset]\n"))
			if desc.Detail != "" {
				v.streams.Eprintln(desc.Detail)
			}
			v.streams.Eprintln("")
		}
	}
}

// HelpPrompt is displayed to the user after an error, directing them to the
// command's help output.
func (v *View) HelpPrompt(command string) {
	v.streams.Eprintf("For more help on using this command, run:\n  landfall %s -help\n", command)
}
