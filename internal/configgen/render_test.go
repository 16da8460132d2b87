// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rafagsiqueira/landfall/internal/inventory"
)

func TestRender_layout(t *testing.T) {
	src := &Source{
		Droplets: []inventory.Droplet{
			{ID: 111, Name: "web-1", Region: "nyc3", Size: "s-1vcpu-1gb", Image: "ubuntu-24-04-x64"},
		},
		FloatingIPs: []inventory.FloatingIP{
			{IP: "198.51.100.5", Region: "nyc3", DropletID: 111},
		},
	}
	cfg, _ := Build(src)
	files := Render(cfg)

	for _, want := range []string{
		"versions.tf", "main.tf", "outputs.tf",
		filepath.Join("compute", "main.tf"),
		filepath.Join("compute", "outputs.tf"),
		filepath.Join("database", "main.tf"),
		filepath.Join("network", "main.tf"),
		filepath.Join("network", "variables.tf"),
		filepath.Join("storage", "main.tf"),
	} {
		if _, ok := files[want]; !ok {
			t.Errorf("missing rendered file %s", want)
		}
	}

	root := string(files["main.tf"])
	if !strings.Contains(root, `module "network"`) {
		t.Errorf("root module call for network missing:\n%s", root)
	}
	if !strings.Contains(root, "module.compute.droplet_ids_by_name") {
		t.Errorf("compute id map not wired into the network module:\n%s", root)
	}

	vars := string(files[filepath.Join("network", "variables.tf")])
	if !strings.Contains(vars, `variable "droplet_ids_by_name"`) || !strings.Contains(vars, "map(string)") {
		t.Errorf("network input variable not declared:\n%s", vars)
	}

	versions := string(files["versions.tf"])
	if !strings.Contains(versions, "digitalocean/digitalocean") {
		t.Errorf("provider requirement missing:\n%s", versions)
	}
}

func TestRender_sensitiveOutputs(t *testing.T) {
	src := &Source{
		Databases: []inventory.Database{
			{ID: "db-uuid", Name: "app-db", Engine: "pg", Host: "db.example.internal"},
		},
	}
	cfg, _ := Build(src)
	files := Render(cfg)

	dbOutputs := strings.Join(strings.Fields(string(files[filepath.Join("database", "outputs.tf")])), " ")
	if !strings.Contains(dbOutputs, `output "database_hosts"`) || !strings.Contains(dbOutputs, "sensitive = true") {
		t.Errorf("database_hosts output not marked sensitive:\n%s", dbOutputs)
	}
	if strings.Contains(dbOutputs, "db.example.internal") {
		t.Errorf("module output embeds a literal connection host:\n%s", dbOutputs)
	}

	rootOutputs := string(files["outputs.tf"])
	if !strings.Contains(rootOutputs, "module.database.database_hosts") {
		t.Errorf("root does not re-export the database host map:\n%s", rootOutputs)
	}
}

func TestWriteDir(t *testing.T) {
	cfg, _ := Build(&Source{
		Droplets: []inventory.Droplet{
			{ID: 111, Name: "web-1", Region: "nyc3", Size: "s-1vcpu-1gb", Image: "ubuntu-24-04-x64"},
		},
	})

	dir := t.TempDir()
	if err := WriteDir(cfg, dir); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	src, err := os.ReadFile(filepath.Join(dir, "compute", "main.tf"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(string(src), `resource "digitalocean_droplet" "web_1"`) {
		t.Errorf("droplet block missing from written file:\n%s", src)
	}
}

func TestRender_deterministic(t *testing.T) {
	src := &Source{
		Droplets: []inventory.Droplet{
			{ID: 2, Name: "b", Region: "nyc3"},
			{ID: 1, Name: "a", Region: "nyc3"},
		},
		SSHKeys: []inventory.SSHKey{
			{ID: 9, Name: "k", Fingerprint: "aa"},
		},
	}

	cfgA, _ := Build(src)
	cfgB, _ := Build(src)
	filesA := Render(cfgA)
	filesB := Render(cfgB)

	if len(filesA) != len(filesB) {
		t.Fatalf("different file sets: %d vs %d", len(filesA), len(filesB))
	}
	for rel, a := range filesA {
		if string(a) != string(filesB[rel]) {
			t.Errorf("file %s differs between identical builds", rel)
		}
	}
}
