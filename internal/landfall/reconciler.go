// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package landfall

import (
	"context"
	"fmt"
	"log"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/configgen"
	"github.com/rafagsiqueira/landfall/internal/inventory"
	"github.com/rafagsiqueira/landfall/internal/states"
	"github.com/rafagsiqueira/landfall/internal/states/statemgr"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// Reconciler runs the full discover, emit, import, persist pipeline. A run
// is idempotent: the second run against an unchanged account emits the same
// configuration and binds nothing new.
type Reconciler struct {
	// Fetcher discovers the live inventory.
	Fetcher inventory.Fetcher

	// States manages the tracked state, including the concurrency lock.
	States statemgr.Full

	// OutDir is where the generated configuration tree is written.
	OutDir string

	// DryRun runs the whole pipeline but leaves both the output directory
	// and the persisted state untouched.
	DryRun bool
}

// RunResult summarizes one completed run.
type RunResult struct {
	// Categories carries per-category import statistics, keyed by every
	// category even when it produced no units.
	Categories map[addrs.Category]*ImportStats

	// Outputs are the exported aggregate values this run computed. They are
	// populated on dry runs too, where the state they would normally be
	// read back from is never persisted.
	Outputs map[string]*states.OutputValue

	// DryRun records whether the run skipped writing its results.
	DryRun bool
}

// TotalBound returns the number of units newly bound across all categories.
func (r *RunResult) TotalBound() int {
	var n int
	for _, st := range r.Categories {
		n += st.Bound
	}
	return n
}

// TotalEmitted returns the number of units emitted across all categories.
func (r *RunResult) TotalEmitted() int {
	var n int
	for _, st := range r.Categories {
		n += st.Emitted
	}
	return n
}

// Run executes one reconciliation. Systemic failures (API, lock, state
// storage) abort with error diagnostics; per-unit import failures surface
// as warnings in the returned diagnostics with the run otherwise complete.
//
// The results are named so the deferred unlock can still report a failure
// into the returned diagnostics.
func (r *Reconciler) Run(ctx context.Context) (result *RunResult, diags tfdiags.Diagnostics) {
	lockID, err := r.States.Lock(statemgr.NewLockInfo("sync"))
	if err != nil {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to lock state",
			fmt.Sprintf("Another run may be in progress: %s", err),
		))
		return nil, diags
	}
	defer func() {
		if err := r.States.Unlock(lockID); err != nil {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Failed to unlock state",
				err.Error(),
			))
		}
	}()

	if err := r.States.RefreshState(); err != nil {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to load state",
			err.Error(),
		))
		return nil, diags
	}
	state := r.States.State()

	src, err := fetchAll(ctx, r.Fetcher)
	if err != nil {
		// Discovery is all-or-nothing. Emitting from a partial inventory
		// would generate cross-references into resources that were never
		// fetched, so any listing failure aborts before emission starts.
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to discover inventory",
			err.Error(),
		))
		return nil, diags
	}

	cfg, buildDiags := configgen.Build(src)
	diags = diags.Append(buildDiags)

	if r.DryRun {
		log.Printf("[INFO] reconciler: dry run, not writing %s", r.OutDir)
	} else {
		if err := configgen.WriteDir(cfg, r.OutDir); err != nil {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Failed to write configuration",
				err.Error(),
			))
			return nil, diags
		}
		log.Printf("[INFO] reconciler: wrote configuration to %s", r.OutDir)
	}

	importer := &Importer{State: state}
	stats, importDiags := importer.Import(cfg)
	diags = diags.Append(importDiags)

	outputs := make(map[string]*states.OutputValue, len(cfg.Exported))
	for _, ev := range cfg.Exported {
		state.SetOutputValue(ev.Name, ev.Value, ev.Sensitive)
		outputs[ev.Name] = &states.OutputValue{Value: ev.Value, Sensitive: ev.Sensitive}
	}

	if !r.DryRun {
		if err := r.States.WriteState(state); err != nil {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Failed to update state",
				err.Error(),
			))
			return nil, diags
		}
		if err := r.States.PersistState(); err != nil {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Failed to persist state",
				err.Error(),
			))
			return nil, diags
		}
	}

	return &RunResult{Categories: stats, Outputs: outputs, DryRun: r.DryRun}, diags
}

// fetchAll lists every kind in a fixed order. The first failure aborts the
// whole fetch.
func fetchAll(ctx context.Context, f inventory.Fetcher) (*configgen.Source, error) {
	var src configgen.Source
	var err error

	if src.SSHKeys, err = f.SSHKeys(ctx); err != nil {
		return nil, err
	}
	if src.Droplets, err = f.Droplets(ctx); err != nil {
		return nil, err
	}
	if src.Databases, err = f.Databases(ctx); err != nil {
		return nil, err
	}
	if src.Firewalls, err = f.Firewalls(ctx); err != nil {
		return nil, err
	}
	if src.FloatingIPs, err = f.FloatingIPs(ctx); err != nil {
		return nil, err
	}
	if src.Volumes, err = f.Volumes(ctx); err != nil {
		return nil, err
	}
	if src.Snapshots, err = f.VolumeSnapshots(ctx); err != nil {
		return nil, err
	}
	return &src, nil
}
