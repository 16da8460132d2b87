// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

// Package version holds the canonical version number of landfall, shared
// between the CLI and the state file writer so that every persisted state
// records which release produced it.
package version

import (
	"fmt"

	version "github.com/hashicorp/go-version"
)

// Version is the main version number that is being run at the moment,
// following semantic versioning.
var Version = "0.3.0"

// Prerelease is a pre-release marker for the version. If this is ""
// (empty string) then it means that it is a final release. Otherwise, this
// is a pre-release such as "dev" (in development), "beta", "rc1", etc.
var Prerelease = "dev"

// SemVer is an instance of version.Version representing the main version
// without any pre-release information.
var SemVer *version.Version

func init() {
	SemVer = version.Must(version.NewVersion(Version))
}

// String returns the complete version string, including prerelease.
func String() string {
	if Prerelease != "" {
		return fmt.Sprintf("%s-%s", Version, Prerelease)
	}
	return Version
}
