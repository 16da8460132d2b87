// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package arguments parses command line flags into validated argument
// structs, separately from the commands that act on them so the parsing
// rules can be tested in isolation.
package arguments

// View represents the global command-line arguments which configure the
// output view for any command.
type View struct {
	// NoColor disables ANSI color codes in all output.
	NoColor bool
}

// ParseView processes CLI arguments, returning a View value and a
// possibly-modified slice of arguments with the view flags removed. These
// flags are valid at any position on the command line, which is why they
// are stripped out before command-specific parsing.
func ParseView(args []string) (*View, []string) {
	common := &View{}

	// Keep the remaining arguments in the original order, minus the flags
	// consumed here.
	filtered := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "-no-color":
			common.NoColor = true
		default:
			filtered = append(filtered, arg)
		}
	}
	return common, filtered
}

// ViewType represents which view layer to use for a given command.
type ViewType rune

const (
	ViewNone  ViewType = 0
	ViewHuman ViewType = 'H'
	ViewJSON  ViewType = 'J'
)

func (vt ViewType) String() string {
	switch vt {
	case ViewNone:
		return "none"
	case ViewHuman:
		return "human"
	case ViewJSON:
		return "json"
	default:
		return "unknown"
	}
}
