// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package statemgr defines how landfall's tracked state is loaded,
// snapshotted, persisted, and guarded against concurrent runs.
package statemgr

import "github.com/rafagsiqueira/landfall/internal/states"

// Reader is the interface for managers that can return the current state
// snapshot.
type Reader interface {
	// State returns the latest snapshot. It never mutates shared storage;
	// callers get an independent copy they may modify freely.
	State() *states.State
}

// Writer is the interface for managers that can replace the in-memory
// snapshot. Writing does not persist; see Persister.
type Writer interface {
	WriteState(*states.State) error
}

// Refresher is the interface for managers that can reload the snapshot
// from durable storage.
type Refresher interface {
	// RefreshState loads the latest stored state. A missing store is not
	// an error; it results in a fresh empty state.
	RefreshState() error
}

// Persister is the interface for managers that can write the current
// snapshot to durable storage.
type Persister interface {
	PersistState() error
}

// Locker is the interface for managers that guard against concurrent use
// of the same state. Landfall's pipeline is single-threaded, so the lock
// exists purely to stop two processes from both observing "address not
// bound" and double-importing.
type Locker interface {
	// Lock acquires the lock, recording info as the operation holding it,
	// and returns an id that must be passed back to Unlock.
	Lock(info *LockInfo) (string, error)

	// Unlock releases the lock identified by id.
	Unlock(id string) error
}

// Full is the union of all state manager capabilities.
type Full interface {
	Reader
	Writer
	Refresher
	Persister
	Locker
}
