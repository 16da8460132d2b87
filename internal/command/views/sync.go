// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"encoding/json"
	"fmt"
	"sort"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/command/arguments"
	viewsjson "github.com/rafagsiqueira/landfall/internal/command/views/json"
	"github.com/rafagsiqueira/landfall/internal/landfall"
	"github.com/rafagsiqueira/landfall/internal/states"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// Sync renders the results of a sync run.
type Sync interface {
	// Results renders the run summary.
	Results(result *landfall.RunResult)

	// Outputs renders the exported values recorded in state.
	Outputs(outputs map[string]*states.OutputValue)

	// Diagnostics renders warnings and errors.
	Diagnostics(diags tfdiags.Diagnostics)

	// HelpPrompt is displayed after argument errors.
	HelpPrompt()
}

// NewSync returns an initialized Sync view of the requested type.
func NewSync(vt arguments.ViewType, view *View) Sync {
	switch vt {
	case arguments.ViewJSON:
		return &SyncJSON{view: view}
	case arguments.ViewHuman:
		return &SyncHuman{view: view}
	default:
		panic(fmt.Sprintf("unknown view type %v", vt))
	}
}

// SyncHuman renders for a person at a terminal.
type SyncHuman struct {
	view *View
}

var _ Sync = (*SyncHuman)(nil)

func (v *SyncHuman) Results(result *landfall.RunResult) {
	if result.DryRun {
		v.view.streams.Println(v.view.colorize.Color("[bold]Dry run: no configuration or state was written.[reset]"))
	}

	for _, cat := range addrs.Categories {
		st := result.Categories[cat]
		if st == nil || st.Emitted == 0 {
			continue
		}
		v.view.streams.Printf("%s: %d emitted, %d newly bound, %d already bound\n",
			cat, st.Emitted, st.Bound, st.Skipped)
	}

	v.view.streams.Print(v.view.colorize.Color(fmt.Sprintf(
		"\n[bold][green]Sync complete![reset] Units: %d emitted, %d newly bound.\n",
		result.TotalEmitted(), result.TotalBound(),
	)))
}

func (v *SyncHuman) Outputs(outputs map[string]*states.OutputValue) {
	if len(outputs) == 0 {
		return
	}
	v.view.streams.Println("\nExported values:")
	for _, name := range sortedOutputNames(outputs) {
		ov := outputs[name]
		if ov.Sensitive && !v.view.showSensitive {
			v.view.streams.Printf("  %s = (sensitive value)\n", name)
			continue
		}
		src, err := ctyjson.Marshal(ov.Value, ov.Value.Type())
		if err != nil {
			v.view.streams.Eprintf("Failed to render output %q: %s\n", name, err)
			continue
		}
		v.view.streams.Printf("  %s = %s\n", name, src)
	}
}

func (v *SyncHuman) Diagnostics(diags tfdiags.Diagnostics) {
	v.view.Diagnostics(diags)
}

func (v *SyncHuman) HelpPrompt() {
	v.view.HelpPrompt("sync")
}

// SyncJSON renders one JSON document on stdout describing the whole run.
type SyncJSON struct {
	view *View
}

var _ Sync = (*SyncJSON)(nil)

// syncSummary is the top-level JSON document shape.
type syncSummary struct {
	DryRun     bool                             `json:"dry_run"`
	Categories map[string]*landfall.ImportStats `json:"categories"`
}

func (v *SyncJSON) Results(result *landfall.RunResult) {
	summary := syncSummary{
		DryRun:     result.DryRun,
		Categories: make(map[string]*landfall.ImportStats, len(result.Categories)),
	}
	for cat, st := range result.Categories {
		summary.Categories[string(cat)] = st
	}
	src, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		// Should never happen; the structure is fully serializable.
		v.view.streams.Eprintf("Failed to serialize run summary: %s\n", err)
		return
	}
	v.view.streams.Println(string(src))
}

func (v *SyncJSON) Outputs(outputs map[string]*states.OutputValue) {
	rendered, diags := viewsjson.OutputsFromMap(outputs, v.view.showSensitive)
	if diags.HasErrors() {
		v.Diagnostics(diags)
		return
	}
	src, err := json.MarshalIndent(rendered, "", "  ")
	if err != nil {
		v.view.streams.Eprintf("Failed to serialize outputs: %s\n", err)
		return
	}
	v.view.streams.Println(string(src))
}

func (v *SyncJSON) Diagnostics(diags tfdiags.Diagnostics) {
	for _, diag := range diags {
		desc := diag.Description()
		severity := "error"
		if diag.Severity() == tfdiags.Warning {
			severity = "warning"
		}
		src, err := json.Marshal(map[string]string{
			"severity": severity,
			"summary":  desc.Summary,
			"detail":   desc.Detail,
		})
		if err != nil {
			continue
		}
		v.view.streams.Println(string(src))
	}
}

func (v *SyncJSON) HelpPrompt() {}

func sortedOutputNames(outputs map[string]*states.OutputValue) []string {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
