// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package statemgr

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"time"

	uuid "github.com/hashicorp/go-uuid"

	"github.com/rafagsiqueira/landfall/internal/states"
)

// LockInfo stores metadata about who holds the state lock, written into
// the lock file so a blocked operator can see what to do about it.
type LockInfo struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Who       string    `json:"who"`
	Version   string    `json:"version"`
	Created   time.Time `json:"created"`
}

// NewLockInfo creates a LockInfo for the given operation with a fresh id
// and the current user/host recorded.
func NewLockInfo(operation string) *LockInfo {
	id, err := uuid.GenerateUUID()
	if err != nil {
		// Entropy source failure; nothing sensible to do but crash.
		panic(fmt.Errorf("cannot generate lock id: %w", err))
	}

	host, _ := os.Hostname()
	who := "unknown"
	if u, err := user.Current(); err == nil {
		who = u.Username
	}
	if host != "" {
		who = who + "@" + host
	}

	return &LockInfo{
		ID:        id,
		Operation: operation,
		Who:       who,
		Created:   time.Now().UTC(),
	}
}

// Marshal returns the lock info as indented JSON for the lock file.
func (l *LockInfo) Marshal() []byte {
	out, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		panic(err) // only possible with a broken LockInfo type
	}
	return out
}

// LockError is returned when a lock cannot be acquired, carrying whatever
// information could be recovered about the current holder.
type LockError struct {
	Info *LockInfo
	Err  error
}

func (e *LockError) Error() string {
	if e.Info != nil {
		return fmt.Sprintf("state locked by %s (operation %q, created %s): %s",
			e.Info.Who, e.Info.Operation, e.Info.Created.Format(time.RFC3339), e.Err)
	}
	return e.Err.Error()
}

func (e *LockError) Unwrap() error { return e.Err }

// LockDisabled implements Full, delegating everything to an inner manager
// except the locking methods, which do nothing. Used for -lock=false.
type LockDisabled struct {
	Inner Full
}

var _ Full = (*LockDisabled)(nil)

func (s *LockDisabled) State() *states.State { return s.Inner.State() }

func (s *LockDisabled) WriteState(v *states.State) error { return s.Inner.WriteState(v) }

func (s *LockDisabled) RefreshState() error { return s.Inner.RefreshState() }

func (s *LockDisabled) PersistState() error { return s.Inner.PersistState() }

func (s *LockDisabled) Lock(info *LockInfo) (string, error) { return "", nil }

func (s *LockDisabled) Unlock(id string) error { return nil }
