// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
)

// allPorts is the sentinel the provider schema uses for "every port".
const allPorts = "0"

// NormalizePortRange maps the provider's assorted spellings of "all ports"
// (absent, null-decoded-to-empty, or the literal "all") onto the sentinel
// the configuration schema expects. Any other value passes through
// unchanged, including explicit ranges like "1-65535".
func NormalizePortRange(raw string) string {
	switch raw {
	case "", "all":
		return allPorts
	}
	return raw
}

func firewallUnit(fw inventory.Firewall, name string) *Unit {
	block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeFirewall, name})
	body := block.Body()

	body.SetAttributeValue("name", cty.StringVal(fw.Name))

	for _, rule := range fw.Inbound {
		appendRuleBlock(body, "inbound_rule", rule, "source")
	}
	for _, rule := range fw.Outbound {
		appendRuleBlock(body, "outbound_rule", rule, "destination")
	}

	return &Unit{
		Addr:       addrs.Address{Category: addrs.Network, Type: TypeFirewall, Name: name},
		ProviderID: fw.ID,
		Block:      block,
	}
}

// appendRuleBlock emits one rule sub-block. direction is "source" for
// inbound rules and "destination" for outbound, matching the provider's
// attribute naming.
func appendRuleBlock(body *hclwrite.Body, blockType string, rule inventory.FirewallRule, direction string) {
	rb := body.AppendNewBlock(blockType, nil).Body()
	rb.SetAttributeValue("protocol", cty.StringVal(rule.Protocol))
	rb.SetAttributeValue("port_range", cty.StringVal(NormalizePortRange(rule.PortRange)))
	if len(rule.Addresses) > 0 {
		rb.SetAttributeValue(direction+"_addresses", stringListValue(rule.Addresses))
	}
	if len(rule.Tags) > 0 {
		rb.SetAttributeValue(direction+"_tags", stringListValue(rule.Tags))
	}
}
