// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Modern terminals on all of our supported platforms understand VT escape
// sequences and report their size through the same syscalls, so a single
// implementation suffices; the hook indirection remains so tests can
// substitute their own behavior.

func configureOutputHandle(f *os.File) (*OutputStream, error) {
	return &OutputStream{
		File:       f,
		isTerminal: isTerminalFile,
		getColumns: columnsFor,
	}, nil
}

func configureInputHandle(f *os.File) (*InputStream, error) {
	return &InputStream{
		File:       f,
		isTerminal: isTerminalFile,
	}, nil
}

func isTerminalFile(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func columnsFor(f *os.File) int {
	if !isTerminalFile(f) {
		return defaultColumns
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		// Suspiciously terminal-like but unwilling to report a size, so
		// fall back to the non-terminal default.
		return defaultColumns
	}
	return width
}
