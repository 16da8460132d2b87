// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0

package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	version "github.com/hashicorp/go-version"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/rafagsiqueira/landfall/internal/addrs"
	"github.com/rafagsiqueira/landfall/internal/states"
)

// ErrNoState is returned by Read when the reader contains no data at all,
// which callers treat as "no state yet" rather than corruption.
var ErrNoState = errors.New("no state file")

// Read parses a state file from the given reader.
func Read(r io.Reader) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if len(src) == 0 {
		return nil, ErrNoState
	}

	var raw fileV1
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("state file is not valid JSON: %w", err)
	}
	if raw.Version != fileVersion {
		return nil, fmt.Errorf("unsupported state file version %d; this version of landfall only supports version %d", raw.Version, fileVersion)
	}

	state := states.NewState()
	state.Lineage = raw.Lineage
	state.Serial = raw.Serial

	for _, b := range raw.Bindings {
		addr, diags := addrs.Parse(b.Address)
		if diags.HasErrors() {
			return nil, fmt.Errorf("state file contains invalid address %q: %w", b.Address, diags.Err())
		}
		if err := state.SetBinding(addr, b.ProviderID); err != nil {
			return nil, fmt.Errorf("state file contains duplicate binding for %q", b.Address)
		}
	}

	for name, o := range raw.Outputs {
		ty, err := ctyjson.UnmarshalType([]byte(o.ValueTypeRaw))
		if err != nil {
			return nil, fmt.Errorf("state file output %q has invalid type: %w", name, err)
		}
		val, err := ctyjson.Unmarshal([]byte(o.ValueRaw), ty)
		if err != nil {
			return nil, fmt.Errorf("state file output %q has invalid value: %w", name, err)
		}
		state.SetOutputValue(name, val, o.Sensitive)
	}

	file := &File{
		Serial:  raw.Serial,
		Lineage: raw.Lineage,
		State:   state,
	}
	if raw.LandfallVersion != "" {
		v, err := version.NewVersion(raw.LandfallVersion)
		if err != nil {
			return nil, fmt.Errorf("state file was written by invalid landfall version %q", raw.LandfallVersion)
		}
		file.LandfallVersion = v
	}
	return file, nil
}
