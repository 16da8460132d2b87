// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package statefile

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	lfversion "github.com/rafagsiqueira/landfall/version"
)

// fileVersion is the current serialization format version.
const fileVersion = 1

type fileV1 struct {
	Version         uint64              `json:"version"`
	LandfallVersion string              `json:"landfall_version"`
	Serial          uint64              `json:"serial"`
	Lineage         string              `json:"lineage"`
	Bindings        []bindingV1         `json:"bindings"`
	Outputs         map[string]outputV1 `json:"outputs,omitempty"`
}

type bindingV1 struct {
	Address    string `json:"address"`
	ProviderID string `json:"provider_id"`
}

type outputV1 struct {
	ValueRaw     json.RawMessage `json:"value"`
	ValueTypeRaw json.RawMessage `json:"type"`
	Sensitive    bool            `json:"sensitive,omitempty"`
}

// Write writes the given state to the given writer in the current state
// serialization format.
func Write(f *File, w io.Writer) error {
	// Always record the current landfall version in the state.
	f.LandfallVersion = lfversion.SemVer

	out := fileV1{
		Version:         fileVersion,
		LandfallVersion: f.LandfallVersion.String(),
		Serial:          f.Serial,
		Lineage:         f.Lineage,
		Bindings:        []bindingV1{},
	}

	// Bindings are sorted by address so repeated writes of the same state
	// are byte-identical.
	for _, addr := range f.State.BoundAddresses() {
		out.Bindings = append(out.Bindings, bindingV1{
			Address:    addr,
			ProviderID: f.State.Bindings[addr].ProviderID,
		})
	}

	if len(f.State.Outputs) > 0 {
		out.Outputs = make(map[string]outputV1, len(f.State.Outputs))
		names := make([]string, 0, len(f.State.Outputs))
		for name := range f.State.Outputs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ov := f.State.Outputs[name]
			value, err := ctyjson.Marshal(ov.Value, ov.Value.Type())
			if err != nil {
				return fmt.Errorf("serializing output %q: %w", name, err)
			}
			valueType, err := ctyjson.MarshalType(ov.Value.Type())
			if err != nil {
				return fmt.Errorf("serializing type of output %q: %w", name, err)
			}
			out.Outputs[name] = outputV1{
				ValueRaw:     json.RawMessage(value),
				ValueTypeRaw: json.RawMessage(valueType),
				Sensitive:    ov.Sensitive,
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
