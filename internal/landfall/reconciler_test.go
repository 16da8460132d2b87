// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package landfall

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/inventory"
	"github.com/rafagsiqueira/landfall/internal/states/statemgr"
)

// stubFetcher serves a fixed inventory, optionally failing one kind.
type stubFetcher struct {
	droplets    []inventory.Droplet
	databases   []inventory.Database
	firewalls   []inventory.Firewall
	floatingIPs []inventory.FloatingIP
	volumes     []inventory.Volume
	snapshots   []inventory.Snapshot
	sshKeys     []inventory.SSHKey

	dropletsErr error
}

var _ inventory.Fetcher = (*stubFetcher)(nil)

func (s *stubFetcher) Droplets(context.Context) ([]inventory.Droplet, error) {
	return s.droplets, s.dropletsErr
}
func (s *stubFetcher) Databases(context.Context) ([]inventory.Database, error) {
	return s.databases, nil
}
func (s *stubFetcher) Firewalls(context.Context) ([]inventory.Firewall, error) {
	return s.firewalls, nil
}
func (s *stubFetcher) FloatingIPs(context.Context) ([]inventory.FloatingIP, error) {
	return s.floatingIPs, nil
}
func (s *stubFetcher) Volumes(context.Context) ([]inventory.Volume, error) {
	return s.volumes, nil
}
func (s *stubFetcher) VolumeSnapshots(context.Context) ([]inventory.Snapshot, error) {
	return s.snapshots, nil
}
func (s *stubFetcher) SSHKeys(context.Context) ([]inventory.SSHKey, error) {
	return s.sshKeys, nil
}

func testFetcher() *stubFetcher {
	return &stubFetcher{
		droplets: []inventory.Droplet{
			{ID: 111, Name: "web-1", Region: "nyc3", Size: "s-1vcpu-1gb", Image: "ubuntu-24-04-x64", PublicIPv4: "203.0.113.10"},
		},
		floatingIPs: []inventory.FloatingIP{
			{IP: "198.51.100.5", Region: "nyc3", DropletID: 111},
		},
		volumes: []inventory.Volume{
			{ID: "vol-1", Name: "data", Region: "nyc3", SizeGB: 100},
		},
		sshKeys: []inventory.SSHKey{
			{ID: 42, Name: "deploy", Fingerprint: "aa:bb"},
		},
	}
}

func testReconciler(t *testing.T) (*Reconciler, string) {
	t.Helper()
	dir := t.TempDir()
	return &Reconciler{
		Fetcher: testFetcher(),
		States:  statemgr.NewFilesystem(filepath.Join(dir, "landfall.state.json")),
		OutDir:  filepath.Join(dir, "generated"),
	}, dir
}

func TestReconciler_firstRun(t *testing.T) {
	r, dir := testReconciler(t)

	result, diags := r.Run(context.Background())
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Err())
	}
	if diags.HasWarnings() {
		t.Fatalf("unexpected warnings: %s", diags.Err())
	}

	// droplet + fip reservation + fip assignment + volume bound; the ssh
	// key lookup is emitted but never imported.
	if got, want := result.TotalBound(), 4; got != want {
		t.Errorf("wrong number of bound units %d; want %d", got, want)
	}
	if got, want := result.TotalEmitted(), 5; got != want {
		t.Errorf("wrong number of emitted units %d; want %d", got, want)
	}

	state := r.States.State()
	if b := state.Binding(addrs.Address{Category: addrs.Compute, Type: "droplet", Name: "web_1"}); b == nil || b.ProviderID != "111" {
		t.Fatalf("droplet binding missing or wrong: %#v", b)
	}

	src, err := os.ReadFile(filepath.Join(r.OutDir, "network", "main.tf"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(string(src), `var.droplet_ids_by_name["web_1"]`) {
		t.Errorf("assignment not wired through the id map:\n%s", src)
	}

	if _, err := os.Stat(filepath.Join(dir, "landfall.state.json")); err != nil {
		t.Errorf("state file not persisted: %s", err)
	}
}

func TestReconciler_secondRunIsIdempotent(t *testing.T) {
	r, _ := testReconciler(t)

	if _, diags := r.Run(context.Background()); diags.HasErrors() {
		t.Fatalf("first run failed: %s", diags.Err())
	}
	firstConfig, err := os.ReadFile(filepath.Join(r.OutDir, "compute", "main.tf"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// Fresh manager over the same file, as a separate process would see it.
	r.States = statemgr.NewFilesystem(r.States.(*statemgr.Filesystem).Path())

	result, diags := r.Run(context.Background())
	if diags.HasErrors() || diags.HasWarnings() {
		t.Fatalf("second run not clean: %s", diags.Err())
	}
	if got := result.TotalBound(); got != 0 {
		t.Errorf("second run bound %d units; want 0", got)
	}

	stats := result.Categories[addrs.Compute]
	if got, want := stats.Skipped, 1; got != want {
		t.Errorf("wrong compute skip count %d; want %d", got, want)
	}

	secondConfig, err := os.ReadFile(filepath.Join(r.OutDir, "compute", "main.tf"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if string(firstConfig) != string(secondConfig) {
		t.Error("re-run rewrote the compute module differently")
	}
}

func TestReconciler_fetchFailureAborts(t *testing.T) {
	r, dir := testReconciler(t)
	r.Fetcher.(*stubFetcher).dropletsErr = errors.New("api: 503")

	result, diags := r.Run(context.Background())
	if result != nil {
		t.Error("got a result from an aborted run")
	}
	if !diags.HasErrors() {
		t.Fatal("expected error diagnostics")
	}

	// Nothing may be written when discovery fails.
	if _, err := os.Stat(r.OutDir); !os.IsNotExist(err) {
		t.Error("output directory was created despite the aborted run")
	}
	if _, err := os.Stat(filepath.Join(dir, "landfall.state.json")); !os.IsNotExist(err) {
		t.Error("state file was written despite the aborted run")
	}
}

func TestReconciler_dryRun(t *testing.T) {
	r, dir := testReconciler(t)
	r.DryRun = true

	result, diags := r.Run(context.Background())
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Err())
	}
	if got, want := result.TotalBound(), 4; got != want {
		t.Errorf("dry run should still report bindings, got %d; want %d", got, want)
	}

	if _, err := os.Stat(r.OutDir); !os.IsNotExist(err) {
		t.Error("dry run wrote the output directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "landfall.state.json")); !os.IsNotExist(err) {
		t.Error("dry run persisted state")
	}

	// The values a real run would export still have to be previewable,
	// even though no state was written to read them back from.
	ids, ok := result.Outputs["droplet_ids_by_name"]
	if !ok {
		t.Fatalf("droplet_ids_by_name missing from dry run outputs: %#v", result.Outputs)
	}
	if got, want := ids.Value.AsValueMap()["web_1"].AsString(), "111"; got != want {
		t.Errorf("wrong exported droplet id %q; want %q", got, want)
	}
}

// unlockFailMgr delegates to a real manager but refuses to release its
// lock.
type unlockFailMgr struct {
	statemgr.Full
}

func (m *unlockFailMgr) Unlock(id string) error {
	return errors.New("removing lock file: permission denied")
}

func TestReconciler_unlockFailureReported(t *testing.T) {
	r, _ := testReconciler(t)
	r.States = &unlockFailMgr{Full: r.States}

	result, diags := r.Run(context.Background())
	if result == nil {
		t.Fatal("run did not complete")
	}
	if !diags.HasErrors() {
		t.Fatal("unlock failure was not reported")
	}
	found := false
	for _, diag := range diags {
		if diag.Description().Summary == "Failed to unlock state" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing unlock diagnostic; got: %s", diags.Err())
	}
}

func TestReconciler_lockContention(t *testing.T) {
	r, _ := testReconciler(t)

	mgr := r.States
	id, err := mgr.Lock(statemgr.NewLockInfo("test"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer mgr.Unlock(id)

	// The reconciler gets its own manager over the same path, like a
	// concurrent process would.
	r.States = statemgr.NewFilesystem(r.States.(*statemgr.Filesystem).Path())

	_, diags := r.Run(context.Background())
	if !diags.HasErrors() {
		t.Fatal("expected lock contention to abort the run")
	}
}

func TestReconciler_importWarningsContinue(t *testing.T) {
	r, _ := testReconciler(t)
	// A floating IP pointing at a droplet that is not in the inventory
	// produces a warning but must not stop the rest of the run.
	r.Fetcher.(*stubFetcher).floatingIPs = []inventory.FloatingIP{
		{IP: "198.51.100.9", Region: "nyc3", DropletID: 999},
	}

	result, diags := r.Run(context.Background())
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Err())
	}
	if !diags.HasWarnings() {
		t.Fatal("expected a warning for the unresolved attachment")
	}
	// droplet + fip reservation + volume still bound.
	if got, want := result.TotalBound(), 3; got != want {
		t.Errorf("wrong number of bound units %d; want %d", got, want)
	}
}
