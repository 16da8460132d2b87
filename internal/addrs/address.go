// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

// Package addrs contains types that represent addresses of configuration
// units within the generated configuration and the tracked state.
//
// An address has the form "category.type.name", e.g.
// "compute.droplet.web_1". The category selects the configuration scope
// (one generated module per category), the type is the short resource kind
// within that scope, and the name is the sanitized display name of the
// underlying cloud resource.
package addrs

import (
	"fmt"
	"strings"

	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// Category is one of the configuration scopes that generated units are
// grouped into.
type Category string

const (
	Compute  Category = "compute"
	Database Category = "database"
	Network  Category = "network"
	Storage  Category = "storage"
)

// Categories lists all categories in their fixed processing order. SSH keys
// are handled as a preliminary stage of the compute category, so they do
// not appear here separately.
var Categories = []Category{Compute, Database, Network, Storage}

// Valid returns true if c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Compute, Database, Network, Storage:
		return true
	}
	return false
}

// Address identifies a single configuration unit.
type Address struct {
	Category Category
	Type     string
	Name     string
}

// String returns the canonical string form of the address.
func (a Address) String() string {
	return string(a.Category) + "." + a.Type + "." + a.Name
}

// Parse parses the canonical string form of an address, as stored in the
// tracked state. The name portion may itself contain dots-as-underscores
// only, so exactly three dot-separated segments are expected.
func Parse(raw string) (Address, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Invalid unit address",
			fmt.Sprintf("The address %q does not have the expected form \"category.type.name\".", raw),
		))
		return Address{}, diags
	}

	addr := Address{
		Category: Category(parts[0]),
		Type:     parts[1],
		Name:     parts[2],
	}
	if !addr.Category.Valid() {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Invalid unit address",
			fmt.Sprintf("The address %q refers to unknown category %q.", raw, parts[0]),
		))
		return Address{}, diags
	}
	if addr.Type == "" || addr.Name == "" {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Invalid unit address",
			fmt.Sprintf("The address %q has an empty type or name segment.", raw),
		))
		return Address{}, diags
	}

	return addr, diags
}
