// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

// Package configgen renders discovered inventory into HCL configuration
// units, grouped into one generated module per category, and computes the
// aggregate values each category exports.
//
// Everything is assembled in memory first; nothing touches the filesystem
// until the whole configuration has been built, so a failure partway
// through emission never leaves interleaved partial files behind.
package configgen

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
)

// Unit is one emitted configuration block, addressable in the tracked
// state.
type Unit struct {
	Addr addrs.Address

	// ProviderID is the live resource identifier this unit binds to on
	// import. Empty for data-only units.
	ProviderID string

	// Data marks read-only lookup units that are never imported.
	Data bool

	// Block is the rendered HCL block.
	Block *hclwrite.Block
}

// Variable is an input variable a module declares; the orchestration layer
// wires a producer module's output into it. Making the dependency an input
// parameter is what enforces the acyclic producer/consumer ordering at
// build time rather than by positional convention.
type Variable struct {
	Name string
	Type string // HCL type expression source, e.g. "map(string)"
}

// Output is one named value a module exports.
type Output struct {
	Name      string
	Expr      hclwrite.Tokens
	Sensitive bool
}

// Module is all the generated configuration of one category.
type Module struct {
	Category  addrs.Category
	Units     []*Unit
	Variables []Variable
	Outputs   []Output
}

// ExportedValue is a concrete aggregate value computed during emission,
// re-exported by the top-level scope and recorded in the tracked state.
type ExportedValue struct {
	Name      string
	Value     cty.Value
	Sensitive bool
}

// Config is the complete generated configuration of one run.
type Config struct {
	// Modules in fixed category order: compute, database, network,
	// storage.
	Modules []*Module

	// Exported are the top-level aggregate values, produced even when
	// empty so consumers can rely on their presence.
	Exported []ExportedValue
}

// Units returns every unit of every module in emission order.
func (c *Config) Units() []*Unit {
	var all []*Unit
	for _, m := range c.Modules {
		all = append(all, m.Units...)
	}
	return all
}

// Module returns the module for the given category, or nil.
func (c *Config) Module(cat addrs.Category) *Module {
	for _, m := range c.Modules {
		if m.Category == cat {
			return m
		}
	}
	return nil
}
