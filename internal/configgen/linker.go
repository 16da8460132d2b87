// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

// Linker resolves cross-category references by sanitized name. It is
// populated while the producing category (compute) is emitted and consumed
// while the referencing category (network) is emitted; the builder's fixed
// category order guarantees the producer side is complete first.
type Linker struct {
	dropletNameByID map[int]string
}

// NewLinker returns an empty Linker.
func NewLinker() *Linker {
	return &Linker{dropletNameByID: make(map[int]string)}
}

// RecordDroplet registers a droplet's sanitized name under its provider id.
func (l *Linker) RecordDroplet(id int, name string) {
	l.dropletNameByID[id] = name
}

// DropletName returns the sanitized name registered for the given droplet
// id.
func (l *Linker) DropletName(id int) (string, bool) {
	name, ok := l.dropletNameByID[id]
	return name, ok
}
