// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"os"
)

// defaultColumns is the assumed width of an output stream that isn't
// connected to a terminal at all.
const defaultColumns = 78

// OutputStream represents an output stream that might or might not be
// connected to a terminal.
//
// There are typically two instances of this: one representing stdout and one
// representing stderr.
type OutputStream struct {
	File *os.File

	// Interacting with a terminal is typically platform-specific, so we
	// populate these fields with hooks during stream initialization.
	isTerminal func(*os.File) bool
	getColumns func(*os.File) int
}

// Columns returns the number of character cell columns we expect to be
// available for writing on this stream.
//
// If the stream isn't connected to a terminal then this returns a default
// value suitable for output into a file.
func (s *OutputStream) Columns() int {
	if s.getColumns == nil {
		return defaultColumns
	}
	return s.getColumns(s.File)
}

// IsTerminal returns true if the stream is connected to an interactive
// terminal that can make use of escape sequences.
func (s *OutputStream) IsTerminal() bool {
	if s.isTerminal == nil {
		return false
	}
	return s.isTerminal(s.File)
}

// InputStream represents an input stream that might or might not be a
// terminal.
//
// There is typically only one instance of this, representing stdin.
type InputStream struct {
	File *os.File

	isTerminal func(*os.File) bool
}

// IsTerminal returns true if the stream is connected to an interactive
// terminal that a user is presumably watching and able to respond to.
func (s *InputStream) IsTerminal() bool {
	if s.isTerminal == nil {
		return false
	}
	return s.isTerminal(s.File)
}
