// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/command/arguments"
	"github.com/rafagsiqueira/landfall/internal/landfall"
	"github.com/rafagsiqueira/landfall/internal/states"
	"github.com/rafagsiqueira/landfall/internal/terminal"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

func testRunResult() *landfall.RunResult {
	return &landfall.RunResult{
		Categories: map[addrs.Category]*landfall.ImportStats{
			addrs.Compute:  {Emitted: 3, Bound: 2, Skipped: 1},
			addrs.Database: {},
			addrs.Network:  {Emitted: 1, Bound: 1},
			addrs.Storage:  {},
		},
	}
}

func TestSyncHuman_results(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewSync(arguments.ViewHuman, NewView(streams))

	view.Results(testRunResult())
	got := done(t).Stdout()

	if !strings.Contains(got, "compute: 3 emitted, 2 newly bound, 1 already bound") {
		t.Errorf("missing compute summary line:\n%s", got)
	}
	if !strings.Contains(got, "Sync complete!") {
		t.Errorf("missing completion banner:\n%s", got)
	}
	if strings.Contains(got, "database:") {
		t.Errorf("empty category should not be listed:\n%s", got)
	}
}

func TestSyncHuman_outputsRedaction(t *testing.T) {
	outputs := map[string]*states.OutputValue{
		"droplet_ids_by_name": {
			Value: cty.MapVal(map[string]cty.Value{"web_1": cty.StringVal("111")}),
		},
		"database_hosts": {
			Value:     cty.MapVal(map[string]cty.Value{"app_db": cty.StringVal("db.internal")}),
			Sensitive: true,
		},
	}

	t.Run("redacted", func(t *testing.T) {
		streams, done := terminal.StreamsForTesting(t)
		view := NewSync(arguments.ViewHuman, NewView(streams))
		view.Outputs(outputs)
		got := done(t).Stdout()

		if !strings.Contains(got, "database_hosts = (sensitive value)") {
			t.Errorf("sensitive output not redacted:\n%s", got)
		}
		if strings.Contains(got, "db.internal") {
			t.Errorf("sensitive value leaked:\n%s", got)
		}
		if !strings.Contains(got, `"web_1":"111"`) {
			t.Errorf("plain output missing:\n%s", got)
		}
	})

	t.Run("show sensitive", func(t *testing.T) {
		streams, done := terminal.StreamsForTesting(t)
		v := NewView(streams)
		v.SetShowSensitive(true)
		view := NewSync(arguments.ViewHuman, v)
		view.Outputs(outputs)
		got := done(t).Stdout()

		if !strings.Contains(got, "db.internal") {
			t.Errorf("sensitive value not shown when requested:\n%s", got)
		}
	})
}

func TestSyncJSON_results(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewSync(arguments.ViewJSON, NewView(streams))

	view.Results(testRunResult())
	got := done(t).Stdout()

	var doc struct {
		DryRun     bool `json:"dry_run"`
		Categories map[string]struct {
			Emitted int `json:"emitted"`
			Bound   int `json:"bound"`
		} `json:"categories"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %s\n%s", err, got)
	}
	if doc.Categories["compute"].Bound != 2 {
		t.Errorf("wrong compute bound count in %s", got)
	}
}

func TestSyncJSON_outputs(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewSync(arguments.ViewJSON, NewView(streams))

	view.Outputs(map[string]*states.OutputValue{
		"database_hosts": {
			Value:     cty.MapVal(map[string]cty.Value{"app_db": cty.StringVal("db.internal")}),
			Sensitive: true,
		},
	})
	got := done(t).Stdout()

	var doc map[string]struct {
		Sensitive bool            `json:"sensitive"`
		Value     json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %s\n%s", err, got)
	}
	entry, ok := doc["database_hosts"]
	if !ok {
		t.Fatalf("database_hosts missing from %s", got)
	}
	if !entry.Sensitive {
		t.Error("sensitive flag not set")
	}
	if len(entry.Value) != 0 {
		t.Errorf("sensitive value was serialized: %s", entry.Value)
	}
}

func TestSyncJSON_diagnostics(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewSync(arguments.ViewJSON, NewView(streams))

	var diags tfdiags.Diagnostics
	diags = diags.Append(tfdiags.Sourceless(tfdiags.Warning, "Failed to import resource", "detail here"))
	view.Diagnostics(diags)
	got := done(t).Stdout()

	var doc map[string]string
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %s\n%s", err, got)
	}
	if doc["severity"] != "warning" || doc["summary"] != "Failed to import resource" {
		t.Errorf("wrong diagnostic document: %s", got)
	}
}
