// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
	"github.com/rafagsiqueira/landfall/internal/names"
)

// sshKeyName keys a lookup unit by name and id together. Accounts often
// hold several keys sharing a display name (one per provisioning system),
// and the id suffix keeps them distinct without waiting for a collision.
func sshKeyName(k inventory.SSHKey) string {
	return names.Sanitize(k.Name + strconv.Itoa(k.ID))
}

// sshKeyUnit emits a read-only data lookup. Keys are managed out-of-band:
// landfall never creates, destroys, or attaches them, because attaching
// keys after the fact forces droplet replacement.
func sshKeyUnit(k inventory.SSHKey) *Unit {
	name := sshKeyName(k)
	block := hclwrite.NewBlock("data", []string{providerPrefix + TypeSSHKey, name})
	block.Body().SetAttributeValue("name", cty.StringVal(k.Name))

	return &Unit{
		Addr:  addrs.Address{Category: addrs.Compute, Type: TypeSSHKey, Name: name},
		Data:  true,
		Block: block,
	}
}
