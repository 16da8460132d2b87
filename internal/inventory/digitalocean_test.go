// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestFetcher(t *testing.T, handler http.Handler) *DigitalOcean {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher, err := NewDigitalOcean("test-token", WithBaseURL(server.URL+"/"))
	if err != nil {
		t.Fatalf("NewDigitalOcean: %s", err)
	}
	return fetcher
}

func TestDigitalOceanDroplets(t *testing.T) {
	mux := http.NewServeMux()
	var baseURL string
	mux.HandleFunc("/v2/droplets", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("wrong Authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{
				"droplets": [
					{"id": 222, "name": "db-1", "region": {"slug": "nyc3"}, "size_slug": "s-2vcpu-4gb",
					 "image": {"id": 9, "slug": ""}, "features": []}
				],
				"links": {}
			}`)
			return
		}
		fmt.Fprintf(w, `{
			"droplets": [
				{"id": 111, "name": "web-1", "region": {"slug": "sgp1"}, "size_slug": "s-1vcpu-1gb",
				 "image": {"id": 5, "slug": "ubuntu-24-04-x64"},
				 "features": ["monitoring", "private_networking"],
				 "vpc_uuid": "vpc-123", "tags": ["web"]}
			],
			"links": {"pages": {"next": "%s/v2/droplets?page=2", "last": "%s/v2/droplets?page=2"}}
		}`, baseURL, baseURL)
	})

	server := httptest.NewServer(mux)
	defer server.Close()
	baseURL = server.URL

	fetcher, err := NewDigitalOcean("test-token", WithBaseURL(server.URL+"/"))
	if err != nil {
		t.Fatalf("NewDigitalOcean: %s", err)
	}

	got, err := fetcher.Droplets(context.Background())
	if err != nil {
		t.Fatalf("Droplets: %s", err)
	}

	want := []Droplet{
		{
			ID: 111, Name: "web-1", Region: "sgp1", Size: "s-1vcpu-1gb",
			Image: "ubuntu-24-04-x64", Monitoring: true,
			VPCUUID: "vpc-123", Tags: []string{"web"},
		},
		{
			// Image has no slug, so the numeric id is used instead.
			ID: 222, Name: "db-1", Region: "nyc3", Size: "s-2vcpu-4gb", Image: "9",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong droplets (-want +got):\n%s", diff)
	}
}

func TestDigitalOceanDropletsEmpty(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"droplets": [], "links": {}}`)
	}))

	got, err := fetcher.Droplets(context.Background())
	if err != nil {
		t.Fatalf("empty listing must not be an error, got: %s", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no droplets, got %d", len(got))
	}
}

func TestDigitalOceanDropletsFailFast(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 401 is not retried by the retry policy, so the failure surfaces
		// immediately.
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"id": "unauthorized", "message": "Unable to authenticate you"}`)
	}))

	if _, err := fetcher.Droplets(context.Background()); err == nil {
		t.Fatal("expected error from unauthorized listing, got nil")
	}
}

func TestDigitalOceanVolumeSnapshotsFiltersKind(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"snapshots": [
				{"id": "snap-1", "name": "vol-backup", "resource_id": "vol-9", "resource_type": "volume", "regions": ["sgp1"]},
				{"id": "snap-2", "name": "droplet-backup", "resource_id": "111", "resource_type": "droplet", "regions": ["sgp1"]}
			],
			"links": {}
		}`)
	}))

	got, err := fetcher.VolumeSnapshots(context.Background())
	if err != nil {
		t.Fatalf("VolumeSnapshots: %s", err)
	}
	want := []Snapshot{
		{ID: "snap-1", Name: "vol-backup", VolumeID: "vol-9", Regions: []string{"sgp1"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong snapshots (-want +got):\n%s", diff)
	}
}

func TestDigitalOceanFirewalls(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"firewalls": [
				{"id": "fw-1", "name": "edge",
				 "inbound_rules": [
					{"protocol": "tcp", "ports": "22", "sources": {"addresses": ["0.0.0.0/0", "::/0"]}},
					{"protocol": "icmp", "sources": {"tags": ["web"]}}
				 ],
				 "outbound_rules": [
					{"protocol": "tcp", "ports": "all", "destinations": {"addresses": ["0.0.0.0/0"]}}
				 ],
				 "droplet_ids": [111], "tags": []}
			],
			"links": {}
		}`)
	}))

	got, err := fetcher.Firewalls(context.Background())
	if err != nil {
		t.Fatalf("Firewalls: %s", err)
	}
	want := []Firewall{
		{
			ID: "fw-1", Name: "edge",
			Inbound: []FirewallRule{
				{Protocol: "tcp", PortRange: "22", Addresses: []string{"0.0.0.0/0", "::/0"}},
				{Protocol: "icmp", Tags: []string{"web"}},
			},
			Outbound: []FirewallRule{
				{Protocol: "tcp", PortRange: "all", Addresses: []string{"0.0.0.0/0"}},
			},
			DropletIDs: []int{111},
			Tags:       []string{},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong firewalls (-want +got):\n%s", diff)
	}
}
