// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

// Package names maps provider-assigned display names onto stable,
// HCL-legal identifiers used as resource labels and tracked-state keys.
package names

// Sanitize converts a display name into an identifier consisting only of
// characters from [a-z0-9_]. ASCII letters are case-folded; every byte
// outside [a-z0-9] becomes a single underscore, one per byte, with no run
// collapsing ("A  B" sanitizes to "a__b", not "a_b"). Multi-byte UTF-8
// sequences therefore become one underscore per byte, matching the raw
// substitution behavior of the shell tooling this replaces.
//
// The function is total and idempotent: it never fails, and applying it to
// its own output returns the output unchanged. Empty input yields "_" so
// callers always receive a usable label.
func Sanitize(name string) string {
	if name == "" {
		return "_"
	}
	b := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b[i] = c
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
