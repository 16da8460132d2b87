// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
)

func databaseUnit(db inventory.Database, name string) *Unit {
	block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeDatabase, name})
	body := block.Body()

	// All cluster attributes are sourced verbatim from the record.
	body.SetAttributeValue("name", cty.StringVal(db.Name))
	body.SetAttributeValue("engine", cty.StringVal(db.Engine))
	body.SetAttributeValue("version", cty.StringVal(db.Version))
	body.SetAttributeValue("region", cty.StringVal(db.Region))
	body.SetAttributeValue("node_count", cty.NumberIntVal(int64(db.NodeCount)))
	body.SetAttributeValue("size", cty.StringVal(db.Size))

	return &Unit{
		Addr:       addrs.Address{Category: addrs.Database, Type: TypeDatabase, Name: name},
		ProviderID: db.ID,
		Block:      block,
	}
}
