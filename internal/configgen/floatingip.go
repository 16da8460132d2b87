// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
	"github.com/rafagsiqueira/landfall/internal/names"
)

// dropletIDsVar is the input variable through which the network module
// receives the compute module's exported id map. Referencing droplets by
// sanitized name through this map, instead of by raw id, keeps a floating
// IP assignment valid across a recreation of the droplet it points at.
const dropletIDsVar = "droplet_ids_by_name"

// floatingIPName derives the unit name for a reserved address. The IP is
// the only display name a reservation has, and a sanitized IP starts with
// a digit, which is not a legal HCL traversal root, so a fixed prefix is
// applied.
func floatingIPName(ip string) string {
	return "fip_" + names.Sanitize(ip)
}

// floatingIPUnits emits the bare reservation and, when the address is
// currently assigned, a separate assignment unit. The reservation itself
// never references a droplet, so the address outlives any instance it
// happens to be attached to.
func floatingIPUnits(ip inventory.FloatingIP, linker *Linker) (reservation *Unit, assignment *Unit, unresolved bool) {
	name := floatingIPName(ip.IP)

	block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeFloatingIP, name})
	block.Body().SetAttributeValue("region", cty.StringVal(ip.Region))
	reservation = &Unit{
		Addr:       addrs.Address{Category: addrs.Network, Type: TypeFloatingIP, Name: name},
		ProviderID: ip.IP,
		Block:      block,
	}

	if ip.DropletID == 0 {
		return reservation, nil, false
	}

	dropletName, ok := linker.DropletName(ip.DropletID)
	if !ok {
		// The attached droplet never showed up in the compute inventory;
		// emitting a dangling map lookup would make the whole module
		// unevaluable, so the assignment is skipped and reported.
		return reservation, nil, true
	}

	asgBlock := hclwrite.NewBlock("resource", []string{providerPrefix + TypeFloatingIPAssignment, name})
	asgBody := asgBlock.Body()
	asgBody.SetAttributeRaw("ip_address", attrTokens(providerPrefix+TypeFloatingIP, name, "ip_address"))
	asgBody.SetAttributeRaw("droplet_id", indexTokens(dropletName, "var", dropletIDsVar))

	assignment = &Unit{
		Addr:       addrs.Address{Category: addrs.Network, Type: TypeFloatingIPAssignment, Name: name},
		ProviderID: ip.IP,
		Block:      asgBlock,
	}
	return reservation, assignment, false
}
