// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/digitalocean/godo"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/rafagsiqueira/landfall/version"
)

// perPage is the listing page size for every kind. 200 is the provider's
// documented maximum.
const perPage = 200

// DigitalOcean is a Fetcher backed by the godo API client.
type DigitalOcean struct {
	client *godo.Client
}

var _ Fetcher = (*DigitalOcean)(nil)

// ClientOption adjusts the underlying godo client, mainly so tests can
// point it at a local test server.
type ClientOption = godo.ClientOpt

// WithBaseURL redirects all API calls to the given URL.
func WithBaseURL(u string) ClientOption {
	return godo.SetBaseURL(u)
}

// NewDigitalOcean builds a Fetcher authenticated with the given API token.
// The HTTP client retries transient failures with backoff; anything that
// still fails after retries is reported to the caller as a systemic error.
func NewDigitalOcean(token string, opts ...ClientOption) (*DigitalOcean, error) {
	retry := retryablehttp.NewClient()
	retry.HTTPClient = cleanhttp.DefaultPooledClient()
	retry.RetryMax = 4
	retry.Logger = nil

	hc := retry.StandardClient()
	hc.Transport = &tokenTransport{token: token, base: hc.Transport}

	opts = append([]ClientOption{godo.SetUserAgent("landfall/" + version.String())}, opts...)
	client, err := godo.New(hc, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring DigitalOcean client: %w", err)
	}
	return &DigitalOcean{client: client}, nil
}

// tokenTransport injects the bearer token into every request.
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(authed)
}

// nextPage advances godo list pagination. It returns 0 when the response
// was the last page.
func nextPage(resp *godo.Response) (int, error) {
	if resp == nil || resp.Links == nil || resp.Links.IsLastPage() {
		return 0, nil
	}
	page, err := resp.Links.CurrentPage()
	if err != nil {
		return 0, err
	}
	return page + 1, nil
}

func (d *DigitalOcean) Droplets(ctx context.Context) ([]Droplet, error) {
	var records []Droplet
	opt := &godo.ListOptions{PerPage: perPage}
	for {
		droplets, resp, err := d.client.Droplets.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing droplets: %w", err)
		}
		for _, dr := range droplets {
			rec := Droplet{
				ID:      dr.ID,
				Name:    dr.Name,
				Size:    dr.SizeSlug,
				VPCUUID: dr.VPCUUID,
				Tags:    dr.Tags,
			}
			if dr.Region != nil {
				rec.Region = dr.Region.Slug
			}
			if dr.Image != nil {
				// Older custom images have no slug; fall back to the id so
				// the emitted config still pins the exact image.
				rec.Image = dr.Image.Slug
				if rec.Image == "" {
					rec.Image = fmt.Sprintf("%d", dr.Image.ID)
				}
			}
			if ip, err := dr.PublicIPv4(); err == nil {
				rec.PublicIPv4 = ip
			}
			for _, f := range dr.Features {
				switch f {
				case "backups":
					rec.Backups = true
				case "monitoring":
					rec.Monitoring = true
				case "ipv6":
					rec.IPv6 = true
				}
			}
			records = append(records, rec)
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing droplets: %w", err)
		}
		if page == 0 {
			break
		}
		opt.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d droplets", len(records))
	return records, nil
}

func (d *DigitalOcean) Databases(ctx context.Context) ([]Database, error) {
	var records []Database
	opt := &godo.ListOptions{PerPage: perPage}
	for {
		clusters, resp, err := d.client.Databases.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing database clusters: %w", err)
		}
		for _, c := range clusters {
			rec := Database{
				ID:        c.ID,
				Name:      c.Name,
				Engine:    c.EngineSlug,
				Version:   c.VersionSlug,
				Region:    c.RegionSlug,
				Size:      c.SizeSlug,
				NodeCount: c.NumNodes,
			}
			if c.Connection != nil {
				rec.Host = c.Connection.Host
				rec.Port = c.Connection.Port
				rec.URI = c.Connection.URI
			}
			records = append(records, rec)
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing database clusters: %w", err)
		}
		if page == 0 {
			break
		}
		opt.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d database clusters", len(records))
	return records, nil
}

func (d *DigitalOcean) Firewalls(ctx context.Context) ([]Firewall, error) {
	var records []Firewall
	opt := &godo.ListOptions{PerPage: perPage}
	for {
		firewalls, resp, err := d.client.Firewalls.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing firewalls: %w", err)
		}
		for _, fw := range firewalls {
			rec := Firewall{
				ID:         fw.ID,
				Name:       fw.Name,
				DropletIDs: fw.DropletIDs,
				Tags:       fw.Tags,
			}
			for _, r := range fw.InboundRules {
				rule := FirewallRule{Protocol: r.Protocol, PortRange: r.PortRange}
				if r.Sources != nil {
					rule.Addresses = r.Sources.Addresses
					rule.Tags = r.Sources.Tags
				}
				rec.Inbound = append(rec.Inbound, rule)
			}
			for _, r := range fw.OutboundRules {
				rule := FirewallRule{Protocol: r.Protocol, PortRange: r.PortRange}
				if r.Destinations != nil {
					rule.Addresses = r.Destinations.Addresses
					rule.Tags = r.Destinations.Tags
				}
				rec.Outbound = append(rec.Outbound, rule)
			}
			records = append(records, rec)
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing firewalls: %w", err)
		}
		if page == 0 {
			break
		}
		opt.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d firewalls", len(records))
	return records, nil
}

func (d *DigitalOcean) FloatingIPs(ctx context.Context) ([]FloatingIP, error) {
	var records []FloatingIP
	opt := &godo.ListOptions{PerPage: perPage}
	for {
		ips, resp, err := d.client.FloatingIPs.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing floating IPs: %w", err)
		}
		for _, ip := range ips {
			rec := FloatingIP{IP: ip.IP}
			if ip.Region != nil {
				rec.Region = ip.Region.Slug
			}
			if ip.Droplet != nil {
				rec.DropletID = ip.Droplet.ID
			}
			records = append(records, rec)
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing floating IPs: %w", err)
		}
		if page == 0 {
			break
		}
		opt.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d floating IPs", len(records))
	return records, nil
}

func (d *DigitalOcean) Volumes(ctx context.Context) ([]Volume, error) {
	var records []Volume
	opt := &godo.ListVolumeParams{ListOptions: &godo.ListOptions{PerPage: perPage}}
	for {
		volumes, resp, err := d.client.Storage.ListVolumes(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing volumes: %w", err)
		}
		for _, v := range volumes {
			rec := Volume{
				ID:         v.ID,
				Name:       v.Name,
				SizeGB:     v.SizeGigaBytes,
				DropletIDs: v.DropletIDs,
			}
			if v.Region != nil {
				rec.Region = v.Region.Slug
			}
			records = append(records, rec)
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing volumes: %w", err)
		}
		if page == 0 {
			break
		}
		opt.ListOptions.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d volumes", len(records))
	return records, nil
}

func (d *DigitalOcean) VolumeSnapshots(ctx context.Context) ([]Snapshot, error) {
	var records []Snapshot
	opt := &godo.ListOptions{PerPage: perPage}
	for {
		snapshots, resp, err := d.client.Snapshots.ListVolume(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing volume snapshots: %w", err)
		}
		for _, s := range snapshots {
			// The volume listing endpoint should only return volume
			// snapshots, but the type filter is load-bearing so check
			// anyway rather than importing a droplet snapshot by mistake.
			if s.ResourceType != "volume" {
				continue
			}
			records = append(records, Snapshot{
				ID:       s.ID,
				Name:     s.Name,
				VolumeID: s.ResourceID,
				Regions:  s.Regions,
			})
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing volume snapshots: %w", err)
		}
		if page == 0 {
			break
		}
		opt.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d volume snapshots", len(records))
	return records, nil
}

func (d *DigitalOcean) SSHKeys(ctx context.Context) ([]SSHKey, error) {
	var records []SSHKey
	opt := &godo.ListOptions{PerPage: perPage}
	for {
		keys, resp, err := d.client.Keys.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing SSH keys: %w", err)
		}
		for _, k := range keys {
			records = append(records, SSHKey{
				ID:          k.ID,
				Name:        k.Name,
				Fingerprint: k.Fingerprint,
			})
		}
		page, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("listing SSH keys: %w", err)
		}
		if page == 0 {
			break
		}
		opt.Page = page
	}
	log.Printf("[DEBUG] inventory: fetched %d SSH keys", len(records))
	return records, nil
}
