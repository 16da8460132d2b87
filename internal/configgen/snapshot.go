// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
)

// snapshotUnit emits one volume snapshot. Snapshots are immutable, so the
// source volume is referenced by its provider id directly; there is no
// recreation scenario that the cross-reference indirection would protect
// against.
func snapshotUnit(s inventory.Snapshot, name string) *Unit {
	block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeVolumeSnapshot, name})
	body := block.Body()
	body.SetAttributeValue("name", cty.StringVal(s.Name))
	body.SetAttributeValue("volume_id", cty.StringVal(s.VolumeID))

	return &Unit{
		Addr:       addrs.Address{Category: addrs.Storage, Type: TypeVolumeSnapshot, Name: name},
		ProviderID: s.ID,
		Block:      block,
	}
}
