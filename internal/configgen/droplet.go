// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
)

// Short resource type names, used both in unit addresses and (with the
// provider prefix) as the emitted HCL resource types.
const (
	TypeDroplet              = "droplet"
	TypeDatabase             = "database_cluster"
	TypeFirewall             = "firewall"
	TypeFloatingIP           = "floating_ip"
	TypeFloatingIPAssignment = "floating_ip_assignment"
	TypeVolume               = "volume"
	TypeVolumeAttachment     = "volume_attachment"
	TypeVolumeSnapshot       = "volume_snapshot"
	TypeSSHKey               = "ssh_key"
)

// providerPrefix turns a short type name into the provider resource type.
const providerPrefix = "digitalocean_"

func dropletUnit(d inventory.Droplet, name string) *Unit {
	block := hclwrite.NewBlock("resource", []string{providerPrefix + TypeDroplet, name})
	body := block.Body()

	body.SetAttributeValue("name", cty.StringVal(d.Name))
	body.SetAttributeValue("region", cty.StringVal(d.Region))
	body.SetAttributeValue("size", cty.StringVal(d.Size))
	body.SetAttributeValue("image", cty.StringVal(d.Image))

	// Feature flags are emitted only when true. An absent attribute must
	// read as the provider's own default (false), not as an explicit
	// disable, so a false flag is omitted entirely.
	if d.Backups {
		body.SetAttributeValue("backups", cty.True)
	}
	if d.Monitoring {
		body.SetAttributeValue("monitoring", cty.True)
	}
	if d.IPv6 {
		body.SetAttributeValue("ipv6", cty.True)
	}

	if d.VPCUUID != "" {
		body.SetAttributeValue("vpc_uuid", cty.StringVal(d.VPCUUID))
	}
	if len(d.Tags) > 0 {
		body.SetAttributeValue("tags", stringListValue(d.Tags))
	}

	// SSH keys and the backups flag are mutated out-of-band; drift on them
	// must never trigger a destructive plan.
	lifecycle := body.AppendNewBlock("lifecycle", nil)
	lifecycle.Body().SetAttributeRaw("ignore_changes", identListTokens("ssh_keys", "backups"))

	return &Unit{
		Addr:       addrs.Address{Category: addrs.Compute, Type: TypeDroplet, Name: name},
		ProviderID: strconv.Itoa(d.ID),
		Block:      block,
	}
}
