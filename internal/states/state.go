// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package states holds the in-memory model of landfall's tracked state:
// the set of bindings from configuration unit addresses to the provider
// identifiers of the live resources they were imported from, plus the
// exported output values of the last run.
package states

import (
	"errors"
	"fmt"
	"sort"

	uuid "github.com/hashicorp/go-uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
)

// ErrAlreadyBound is returned by SetBinding when the address already has a
// binding. Bindings are never overwritten; re-importing an address is a
// caller-side skip, not a rebind.
var ErrAlreadyBound = errors.New("address is already bound")

// State is the top-level tracked state. It is not safe for concurrent use;
// the reconciler is strictly sequential so no locking discipline exists
// beyond the process-level lock taken by the state manager.
type State struct {
	// Lineage is a unique id assigned when the state is created, preserved
	// for the life of the state file across serial increments.
	Lineage string

	// Serial increments on every persisted change.
	Serial uint64

	// Bindings maps canonical unit address strings to bindings.
	Bindings map[string]*Binding

	// Outputs are the exported aggregate values of the last run.
	Outputs map[string]*OutputValue
}

// Binding associates one configuration unit address with the provider id
// of the live resource it was imported from.
type Binding struct {
	ProviderID string
}

// OutputValue is one exported value. Sensitive values are redacted by any
// display surface unless explicitly requested.
type OutputValue struct {
	Value     cty.Value
	Sensitive bool
}

// NewState returns a new empty state with a fresh lineage.
func NewState() *State {
	lineage, err := uuid.GenerateUUID()
	if err != nil {
		// The only failure mode is the platform entropy source being
		// unavailable, which nothing downstream can recover from.
		panic(fmt.Errorf("cannot generate state lineage: %w", err))
	}
	return &State{
		Lineage:  lineage,
		Bindings: make(map[string]*Binding),
		Outputs:  make(map[string]*OutputValue),
	}
}

// HasBinding returns true if the given address is already bound.
func (s *State) HasBinding(addr addrs.Address) bool {
	_, ok := s.Bindings[addr.String()]
	return ok
}

// Binding returns the binding for the given address, or nil.
func (s *State) Binding(addr addrs.Address) *Binding {
	return s.Bindings[addr.String()]
}

// SetBinding records a new binding. It returns ErrAlreadyBound if the
// address is already bound, even to the same provider id; callers check
// HasBinding first and treat an existing binding as a skip.
func (s *State) SetBinding(addr addrs.Address, providerID string) error {
	key := addr.String()
	if _, ok := s.Bindings[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, key)
	}
	if providerID == "" {
		return fmt.Errorf("refusing to bind %s to an empty provider id", key)
	}
	s.Bindings[key] = &Binding{ProviderID: providerID}
	return nil
}

// SetOutputValue records an exported output, replacing any previous value
// under the same name.
func (s *State) SetOutputValue(name string, value cty.Value, sensitive bool) {
	s.Outputs[name] = &OutputValue{Value: value, Sensitive: sensitive}
}

// BoundAddresses returns all bound addresses in lexical order, for stable
// display and serialization.
func (s *State) BoundAddresses() []string {
	keys := make([]string, 0, len(s.Bindings))
	for k := range s.Bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DeepCopy returns an independent copy of the state. cty values are
// immutable so they are shared.
func (s *State) DeepCopy() *State {
	if s == nil {
		return nil
	}
	copied := &State{
		Lineage:  s.Lineage,
		Serial:   s.Serial,
		Bindings: make(map[string]*Binding, len(s.Bindings)),
		Outputs:  make(map[string]*OutputValue, len(s.Outputs)),
	}
	for k, b := range s.Bindings {
		copied.Bindings[k] = &Binding{ProviderID: b.ProviderID}
	}
	for k, o := range s.Outputs {
		copied.Outputs[k] = &OutputValue{Value: o.Value, Sensitive: o.Sensitive}
	}
	return copied
}

// Equal reports whether two states carry the same bindings and outputs.
// Lineage and serial are management metadata and are not compared.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Bindings) != len(other.Bindings) || len(s.Outputs) != len(other.Outputs) {
		return false
	}
	for k, b := range s.Bindings {
		ob, ok := other.Bindings[k]
		if !ok || ob.ProviderID != b.ProviderID {
			return false
		}
	}
	for k, o := range s.Outputs {
		oo, ok := other.Outputs[k]
		if !ok || oo.Sensitive != o.Sensitive || !oo.Value.RawEquals(o.Value) {
			return false
		}
	}
	return true
}
