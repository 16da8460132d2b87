// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
)

// externalVolumePrefix marks volumes provisioned by an external container
// orchestrator. Those volumes must never be adopted: no unit, no output
// map entry, no import attempt.
const externalVolumePrefix = "pvc-"

// ExcludedVolume reports whether the named volume is owned externally.
func ExcludedVolume(name string) bool {
	return strings.HasPrefix(name, externalVolumePrefix)
}

func volumeUnit(v inventory.Volume, name string) *Unit {
	block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeVolume, name})
	body := block.Body()
	body.SetAttributeValue("name", cty.StringVal(v.Name))
	body.SetAttributeValue("region", cty.StringVal(v.Region))
	body.SetAttributeValue("size", cty.NumberIntVal(v.SizeGB))

	return &Unit{
		Addr:       addrs.Address{Category: addrs.Storage, Type: TypeVolume, Name: name},
		ProviderID: v.ID,
		Block:      block,
	}
}

// volumeAttachmentUnits emits one attachment unit per attached droplet,
// keyed by the volume's sanitized name plus the droplet id so multi-attach
// situations stay unambiguous.
func volumeAttachmentUnits(v inventory.Volume, name string) []*Unit {
	var units []*Unit
	for _, dropletID := range v.DropletIDs {
		attachName := fmt.Sprintf("%s_%d", name, dropletID)
		block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeVolumeAttachment, attachName})
		body := block.Body()
		body.SetAttributeValue("droplet_id", cty.NumberIntVal(int64(dropletID)))
		body.SetAttributeRaw("volume_id", attrTokens(providerPrefix+TypeVolume, name, "id"))

		units = append(units, &Unit{
			Addr:       addrs.Address{Category: addrs.Storage, Type: TypeVolumeAttachment, Name: attachName},
			ProviderID: fmt.Sprintf("%d/%s", dropletID, v.ID),
			Block:      block,
		})
	}
	return units
}
