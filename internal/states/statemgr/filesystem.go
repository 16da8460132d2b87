// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package statemgr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/rafagsiqueira/landfall/internal/states"
	"github.com/rafagsiqueira/landfall/internal/states/statefile"
)

// Filesystem is a full state manager that stores state in a local file,
// guarded by a sibling ".lock" file.
type Filesystem struct {
	path     string
	lockPath string

	// file is the state as last read from or written to disk, used to
	// decide whether a persist needs to increment the serial.
	file *statefile.File

	// state is the in-memory snapshot, possibly ahead of file.
	state *states.State

	// lockID is non-empty while we hold the lock.
	lockID string
}

var _ Full = (*Filesystem)(nil)

// NewFilesystem creates a manager for the state file at the given path.
// The file need not exist yet; RefreshState treats a missing file as an
// empty state.
func NewFilesystem(path string) *Filesystem {
	return &Filesystem{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the state file path.
func (s *Filesystem) Path() string { return s.path }

func (s *Filesystem) State() *states.State {
	return s.state.DeepCopy()
}

func (s *Filesystem) WriteState(state *states.State) error {
	if state == nil {
		return errors.New("cannot write nil state")
	}
	s.state = state.DeepCopy()
	return nil
}

func (s *Filesystem) RefreshState() error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[DEBUG] statemgr: no state file at %s, starting fresh", s.path)
			s.file = nil
			s.state = states.NewState()
			return nil
		}
		return fmt.Errorf("opening state file: %w", err)
	}
	defer f.Close()

	file, err := statefile.Read(f)
	if err != nil {
		if errors.Is(err, statefile.ErrNoState) {
			s.file = nil
			s.state = states.NewState()
			return nil
		}
		return fmt.Errorf("reading state from %s: %w", s.path, err)
	}

	s.file = file
	s.state = file.State.DeepCopy()
	return nil
}

func (s *Filesystem) PersistState() error {
	if s.state == nil {
		return errors.New("no state to persist; call RefreshState or WriteState first")
	}

	file := s.nextFile()
	if file == nil {
		log.Printf("[DEBUG] statemgr: state unchanged, not rewriting %s", s.path)
		return nil
	}

	// Write to a temp file in the same directory and rename over the
	// target, so a crash mid-write can't truncate the previous state.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".landfall-state-")
	if err != nil {
		return fmt.Errorf("creating temporary state file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := statefile.Write(file, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temporary state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing state file: %w", err)
	}

	s.file = file.DeepCopy()
	log.Printf("[INFO] statemgr: persisted state serial %d to %s", file.Serial, s.path)
	return nil
}

// nextFile builds the statefile.File to persist, or nil if the snapshot is
// identical to what is already on disk.
func (s *Filesystem) nextFile() *statefile.File {
	if s.file != nil {
		if s.file.State.Equal(s.state) {
			return nil
		}
		return statefile.New(s.state.DeepCopy(), s.file.Lineage, s.file.Serial+1)
	}
	return statefile.New(s.state.DeepCopy(), s.state.Lineage, s.state.Serial)
}

func (s *Filesystem) Lock(info *LockInfo) (string, error) {
	if s.lockID != "" {
		return "", fmt.Errorf("state %s already locked by this process", s.path)
	}

	f, err := os.OpenFile(s.lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", &LockError{
				Info: s.readLockInfo(),
				Err:  fmt.Errorf("state file %s is locked", s.path),
			}
		}
		return "", fmt.Errorf("creating lock file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(info.Marshal()); err != nil {
		os.Remove(s.lockPath)
		return "", fmt.Errorf("writing lock file: %w", err)
	}

	s.lockID = info.ID
	log.Printf("[DEBUG] statemgr: locked %s as %s", s.path, info.ID)
	return info.ID, nil
}

func (s *Filesystem) Unlock(id string) error {
	if s.lockID == "" {
		return errors.New("state is not locked")
	}
	if id != s.lockID {
		return fmt.Errorf("unlock id %q does not match held lock %q", id, s.lockID)
	}
	if err := os.Remove(s.lockPath); err != nil {
		return fmt.Errorf("removing lock file: %w", err)
	}
	s.lockID = ""
	return nil
}

// readLockInfo best-effort reads the current lock file so the lock error
// can say who holds it.
func (s *Filesystem) readLockInfo() *LockInfo {
	data, err := os.ReadFile(s.lockPath)
	if err != nil {
		return nil
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	return &info
}
