// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
	"github.com/rafagsiqueira/landfall/internal/names"
	"github.com/rafagsiqueira/landfall/internal/tfdiags"
)

// Source is one run's complete fetched inventory, as handed over by the
// fetch phase.
type Source struct {
	Droplets    []inventory.Droplet
	Databases   []inventory.Database
	Firewalls   []inventory.Firewall
	FloatingIPs []inventory.FloatingIP
	Volumes     []inventory.Volume
	Snapshots   []inventory.Snapshot
	SSHKeys     []inventory.SSHKey
}

// Build renders the whole configuration from the given inventory. Category
// order is fixed: SSH keys are handled as a preliminary compute stage, then
// compute, database, network, storage. The compute stage populates the
// Linker that the network stage consumes, so the producer/consumer ordering
// is structural rather than a runtime check.
//
// Diagnostics returned are warnings only; emission itself has no systemic
// failure modes.
func Build(src *Source) (*Config, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	linker := NewLinker()

	compute := &Module{Category: addrs.Compute}
	database := &Module{Category: addrs.Database}
	network := &Module{Category: addrs.Network}
	storage := &Module{Category: addrs.Storage}

	// Keys stage. Lookup units only; aggregates are exported for optional
	// use but droplets never reference them.
	keyIDs := map[string]string{}
	keyFingerprints := map[string]string{}
	keyIDExprs := map[string]hclwrite.Tokens{}
	keyFPExprs := map[string]hclwrite.Tokens{}
	for _, k := range src.SSHKeys {
		unit := sshKeyUnit(k)
		compute.Units = append(compute.Units, unit)
		keyIDs[unit.Addr.Name] = strconv.Itoa(k.ID)
		keyFingerprints[unit.Addr.Name] = k.Fingerprint
		keyIDExprs[unit.Addr.Name] = attrTokens("data", providerPrefix+TypeSSHKey, unit.Addr.Name, "id")
		keyFPExprs[unit.Addr.Name] = attrTokens("data", providerPrefix+TypeSSHKey, unit.Addr.Name, "fingerprint")
	}

	// Compute stage.
	dropletUniq := names.NewUniquer()
	dropletAddrs := map[string]string{}
	dropletIDs := map[string]string{}
	dropletAddrExprs := map[string]hclwrite.Tokens{}
	dropletIDExprs := map[string]hclwrite.Tokens{}
	for _, d := range src.Droplets {
		name := dropletUniq.Claim(d.Name, strconv.Itoa(d.ID))
		unit := dropletUnit(d, name)
		compute.Units = append(compute.Units, unit)
		linker.RecordDroplet(d.ID, name)

		dropletAddrs[name] = d.PublicIPv4
		dropletIDs[name] = strconv.Itoa(d.ID)
		dropletAddrExprs[name] = attrTokens(providerPrefix+TypeDroplet, name, "ipv4_address")
		dropletIDExprs[name] = attrTokens(providerPrefix+TypeDroplet, name, "id")
	}
	compute.Outputs = []Output{
		{Name: "droplet_addresses", Expr: objectTokens(dropletAddrExprs)},
		{Name: "droplet_ids_by_name", Expr: objectTokens(dropletIDExprs)},
		{Name: "ssh_keys", Expr: objectTokens(keyIDExprs), Sensitive: true},
		{Name: "ssh_key_fingerprints", Expr: objectTokens(keyFPExprs), Sensitive: true},
	}

	// Database stage.
	dbUniq := names.NewUniquer()
	dbIDs := map[string]string{}
	dbHosts := map[string]string{}
	dbIDExprs := map[string]hclwrite.Tokens{}
	dbHostExprs := map[string]hclwrite.Tokens{}
	for _, db := range src.Databases {
		name := dbUniq.Claim(db.Name, db.ID)
		unit := databaseUnit(db, name)
		database.Units = append(database.Units, unit)

		dbIDs[name] = db.ID
		dbHosts[name] = db.Host
		dbIDExprs[name] = attrTokens(providerPrefix+TypeDatabase, name, "id")
		dbHostExprs[name] = attrTokens(providerPrefix+TypeDatabase, name, "host")
	}
	database.Outputs = []Output{
		{Name: "database_ids", Expr: objectTokens(dbIDExprs)},
		{Name: "database_hosts", Expr: objectTokens(dbHostExprs), Sensitive: true},
	}

	// Network stage: consumes the compute id map through an input
	// variable, declared here so the dependency is part of the module's
	// interface.
	network.Variables = []Variable{{Name: dropletIDsVar, Type: "map(string)"}}

	fwUniq := names.NewUniquer()
	fwIDExprs := map[string]hclwrite.Tokens{}
	for _, fw := range src.Firewalls {
		name := fwUniq.Claim(fw.Name, fw.ID)
		unit := firewallUnit(fw, name)
		network.Units = append(network.Units, unit)
		fwIDExprs[name] = attrTokens(providerPrefix+TypeFirewall, name, "id")
	}

	fipAddrs := map[string]string{}
	fipAddrExprs := map[string]hclwrite.Tokens{}
	for _, ip := range src.FloatingIPs {
		reservation, assignment, unresolved := floatingIPUnits(ip, linker)
		network.Units = append(network.Units, reservation)
		if assignment != nil {
			network.Units = append(network.Units, assignment)
		}
		if unresolved {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Warning,
				"Floating IP attachment not resolvable",
				fmt.Sprintf("Floating IP %s is assigned to droplet %d, which was not present in the fetched inventory; the assignment was not emitted.", ip.IP, ip.DropletID),
			))
		}
		name := floatingIPName(ip.IP)
		fipAddrs[name] = ip.IP
		fipAddrExprs[name] = attrTokens(providerPrefix+TypeFloatingIP, name, "ip_address")
	}
	network.Outputs = []Output{
		{Name: "firewall_ids", Expr: objectTokens(fwIDExprs)},
		{Name: "floating_ip_addresses", Expr: objectTokens(fipAddrExprs)},
	}

	// Storage stage.
	volUniq := names.NewUniquer()
	volIDExprs := map[string]hclwrite.Tokens{}
	for _, v := range src.Volumes {
		if ExcludedVolume(v.Name) {
			continue
		}
		name := volUniq.Claim(v.Name, v.ID)
		storage.Units = append(storage.Units, volumeUnit(v, name))
		storage.Units = append(storage.Units, volumeAttachmentUnits(v, name)...)
		volIDExprs[name] = attrTokens(providerPrefix+TypeVolume, name, "id")
	}

	snapUniq := names.NewUniquer()
	for _, s := range src.Snapshots {
		name := snapUniq.Claim(s.Name, s.ID)
		storage.Units = append(storage.Units, snapshotUnit(s, name))
	}
	storage.Outputs = []Output{
		{Name: "volume_ids", Expr: objectTokens(volIDExprs)},
	}

	cfg := &Config{
		Modules: []*Module{compute, database, network, storage},
		Exported: []ExportedValue{
			{Name: "droplet_addresses", Value: mapOrEmpty(dropletAddrs)},
			{Name: "droplet_ids_by_name", Value: mapOrEmpty(dropletIDs)},
			{Name: "database_ids", Value: mapOrEmpty(dbIDs)},
			{Name: "database_hosts", Value: mapOrEmpty(dbHosts), Sensitive: true},
			{Name: "floating_ip_addresses", Value: mapOrEmpty(fipAddrs)},
			{Name: "ssh_keys", Value: mapOrEmpty(keyIDs), Sensitive: true},
			{Name: "ssh_key_fingerprints", Value: mapOrEmpty(keyFingerprints), Sensitive: true},
		},
	}
	return cfg, diags
}
