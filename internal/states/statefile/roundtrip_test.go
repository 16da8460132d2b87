// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package statefile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/states"
)

func TestRoundTrip(t *testing.T) {
	state := states.NewState()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(state.SetBinding(addrs.Address{Category: addrs.Compute, Type: "droplet", Name: "web_1"}, "111"))
	must(state.SetBinding(addrs.Address{Category: addrs.Network, Type: "floating_ip", Name: "ip_1"}, "203.0.113.10"))
	state.SetOutputValue("droplet_ids_by_name", cty.MapVal(map[string]cty.Value{
		"web_1": cty.StringVal("111"),
	}), false)
	state.SetOutputValue("database_hosts", cty.MapVal(map[string]cty.Value{
		"main_db": cty.StringVal("db.example.internal"),
	}), true)

	file := New(state, state.Lineage, 7)

	var buf bytes.Buffer
	if err := Write(file, &buf); err != nil {
		t.Fatalf("Write: %s", err)
	}

	read, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}

	if read.Serial != 7 {
		t.Errorf("serial = %d; want 7", read.Serial)
	}
	if read.Lineage != state.Lineage {
		t.Errorf("lineage = %q; want %q", read.Lineage, state.Lineage)
	}
	if read.LandfallVersion == nil {
		t.Error("landfall version was not recorded")
	}
	if !read.State.Equal(state) {
		t.Error("state after round trip differs from original")
	}
	if !read.State.Outputs["database_hosts"].Sensitive {
		t.Error("sensitive marker lost on database_hosts output")
	}
}

func TestWriteDeterministic(t *testing.T) {
	state := states.NewState()
	for _, name := range []string{"c_3", "a_1", "b_2"} {
		addr := addrs.Address{Category: addrs.Compute, Type: "droplet", Name: name}
		if err := state.SetBinding(addr, "id-"+name); err != nil {
			t.Fatal(err)
		}
	}
	file := New(state, state.Lineage, 1)

	var first, second bytes.Buffer
	if err := Write(file, &first); err != nil {
		t.Fatal(err)
	}
	if err := Write(file, &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("two writes of the same state differ")
	}

	// Sorted by address: a_1 before b_2 before c_3.
	s := first.String()
	if strings.Index(s, "a_1") > strings.Index(s, "b_2") || strings.Index(s, "b_2") > strings.Index(s, "c_3") {
		t.Errorf("bindings are not sorted by address:\n%s", s)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err != ErrNoState {
		t.Errorf("empty input: got %v; want ErrNoState", err)
	}
	if _, err := Read(strings.NewReader("not json")); err == nil {
		t.Error("garbage input did not error")
	}
	if _, err := Read(strings.NewReader(`{"version": 99, "lineage": "x", "bindings": []}`)); err == nil {
		t.Error("future version did not error")
	}
	if _, err := Read(strings.NewReader(`{"version": 1, "lineage": "x", "bindings": [{"address": "nope", "provider_id": "1"}]}`)); err == nil {
		t.Error("invalid address did not error")
	}
}
