// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package statefile deals with the file format of landfall's tracked state.
package statefile

import (
	version "github.com/hashicorp/go-version"

	"github.com/rafagsiqueira/landfall/internal/states"
)

// File is the in-memory representation of a state file, wrapping the state
// itself with the file-level metadata.
type File struct {
	// LandfallVersion is the version of the program that wrote the file.
	LandfallVersion *version.Version

	// Serial and Lineage identify this generation of the state. Serial
	// increments on every change; Lineage stays fixed for the life of the
	// file so unrelated states are never confused for one another.
	Serial  uint64
	Lineage string

	State *states.State
}

// New creates a File ready to be written, wrapping the given state.
func New(state *states.State, lineage string, serial uint64) *File {
	if state == nil {
		state = states.NewState()
	}
	return &File{
		Serial:  serial,
		Lineage: lineage,
		State:   state,
	}
}

// DeepCopy returns an independent copy of the file.
func (f *File) DeepCopy() *File {
	if f == nil {
		return nil
	}
	return &File{
		LandfallVersion: f.LandfallVersion,
		Serial:          f.Serial,
		Lineage:         f.Lineage,
		State:           f.State.DeepCopy(),
	}
}
