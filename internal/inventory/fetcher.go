// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package inventory

import "context"

// Fetcher lists the current resources of each kind. An empty slice with a
// nil error is a valid outcome meaning "no resources of this kind"; a
// non-nil error is systemic and aborts the whole run.
//
// Every method issues blocking calls against the provider and honors
// cancellation through ctx.
type Fetcher interface {
	Droplets(ctx context.Context) ([]Droplet, error)
	Databases(ctx context.Context) ([]Database, error)
	Firewalls(ctx context.Context) ([]Firewall, error)
	FloatingIPs(ctx context.Context) ([]FloatingIP, error)
	Volumes(ctx context.Context) ([]Volume, error)
	VolumeSnapshots(ctx context.Context) ([]Snapshot, error)
	SSHKeys(ctx context.Context) ([]SSHKey, error)
}
