// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

// Package landfall orchestrates one reconciliation run: discover, emit,
// import, persist. The pipeline is strictly sequential; ordering between
// stages is what guarantees that every cross-reference a module emits can
// be satisfied by an earlier stage's output.
package landfall

import (
	"fmt"
	"log"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/configgen"
	"github.com/rafagsiqueira/landfall/internal/states"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// ImportStats counts the import outcomes of one category.
type ImportStats struct {
	// Emitted is the number of configuration units generated, including
	// data-only units that are never imported.
	Emitted int `json:"emitted"`

	// Bound is the number of units newly bound this run.
	Bound int `json:"bound"`

	// Skipped is the number of units that were already bound from an
	// earlier run and were left untouched.
	Skipped int `json:"skipped"`

	// Failed is the number of units whose import failed and was reported
	// as a warning.
	Failed int `json:"failed"`
}

// Importer binds emitted configuration units to the live resources they
// were generated from, recording the bindings in the tracked state.
//
// Import failures are per-unit: a failed binding is reported as a warning
// and the run continues, so one misbehaving resource cannot block the rest
// of the account from being adopted.
type Importer struct {
	State *states.State
}

// Import walks the configuration in category order and binds every
// importable unit that is not already bound.
func (imp *Importer) Import(cfg *configgen.Config) (map[addrs.Category]*ImportStats, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	stats := make(map[addrs.Category]*ImportStats, len(cfg.Modules))

	for _, m := range cfg.Modules {
		st := &ImportStats{Emitted: len(m.Units)}
		stats[m.Category] = st

		for _, u := range m.Units {
			switch {
			case u.Data:
				// Lookup units have no live resource of their own.
				continue
			case imp.State.HasBinding(u.Addr):
				log.Printf("[INFO] import: %s already bound, skipping", u.Addr)
				st.Skipped++
				continue
			}

			if err := imp.State.SetBinding(u.Addr, u.ProviderID); err != nil {
				st.Failed++
				diags = diags.Append(tfdiags.Sourceless(
					tfdiags.Warning,
					"Failed to import resource",
					fmt.Sprintf("Could not bind %s to %s: %s. The resource remains unmanaged; re-run to retry.", u.Addr, u.ProviderID, err),
				))
				continue
			}
			log.Printf("[DEBUG] import: bound %s to %s", u.Addr, u.ProviderID)
			st.Bound++
		}
	}
	return stats, diags
}
