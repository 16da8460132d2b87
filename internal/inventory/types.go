// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

// Package inventory discovers the resources that currently exist in a
// DigitalOcean account. It exposes a provider-neutral record model so that
// the configuration emitter never handles SDK types directly; records are
// produced fresh on every run and are never mutated after fetch.
package inventory

// Droplet is one discovered compute instance.
type Droplet struct {
	ID     int
	Name   string
	Region string
	Size   string
	Image  string

	// Feature flags as reported by the provider. A false value means the
	// feature is absent from the droplet's feature list, which the emitter
	// treats as "leave unset", not "explicitly disabled".
	Backups    bool
	Monitoring bool
	IPv6       bool

	VPCUUID string
	Tags    []string

	// PublicIPv4 feeds the exported address map; it is never emitted into
	// configuration, since addresses are provider-assigned.
	PublicIPv4 string
}

// Database is one discovered managed database cluster.
type Database struct {
	ID        string
	Name      string
	Engine    string
	Version   string
	Region    string
	Size      string
	NodeCount int

	// Connection details, exported as sensitive outputs only.
	Host string
	Port int
	URI  string
}

// FirewallRule is one inbound or outbound rule of a firewall. PortRange is
// the raw provider value; an empty string means the provider omitted it
// (icmp rules, or "all ports" in older records).
type FirewallRule struct {
	Protocol  string
	PortRange string

	// Addresses and Tags are the rule's source lists for inbound rules and
	// destination lists for outbound rules.
	Addresses []string
	Tags      []string
}

// Firewall is one discovered cloud firewall with its full rule set. Rules
// only arrive nested in the firewall record, which is why discovery always
// uses the structured API rather than columnar listings.
type Firewall struct {
	ID         string
	Name       string
	Inbound    []FirewallRule
	Outbound   []FirewallRule
	DropletIDs []int
	Tags       []string
}

// FloatingIP is one discovered reserved address. The IP itself is the
// provider identifier. DropletID is zero when the address is unassigned.
type FloatingIP struct {
	IP        string
	Region    string
	DropletID int
}

// Volume is one discovered block storage volume, including its current
// attachment list.
type Volume struct {
	ID         string
	Name       string
	Region     string
	SizeGB     int64
	DropletIDs []int
}

// Snapshot is one discovered volume snapshot. Snapshots of droplets are
// filtered out during fetch; only volume snapshots reach the emitter.
type Snapshot struct {
	ID       string
	Name     string
	VolumeID string
	Regions  []string
}

// SSHKey is one discovered account SSH key.
type SSHKey struct {
	ID          int
	Name        string
	Fingerprint string
}
