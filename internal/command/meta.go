// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package command contains the CLI commands, each pairing argument parsing
// from command/arguments with rendering from command/views around the core
// pipeline in internal/landfall.
package command

import (
	"context"
	"os"

	"github.com/rafagsiqueira/landfall/internal/command/views"
	"github.com/rafagsiqueira/landfall/internal/terminal"
)

// Environment variables consulted for the API token, in order of
// preference.
const (
	EnvToken    = "DIGITALOCEAN_TOKEN"
	EnvTokenAlt = "DO_TOKEN"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	// Streams tracks the raw Stdout, Stderr, and Stdin handles along with
	// some basic metadata about them, such as whether each is connected to
	// a terminal.
	Streams *terminal.Streams

	// View is the base layer for command output.
	View *views.View

	// ShutdownCh is closed when the process receives an interrupt, asking
	// the running command to stop.
	ShutdownCh <-chan struct{}
}

// CommandContext returns a context that is canceled when the process is
// asked to shut down.
func (m *Meta) CommandContext() context.Context {
	if m.ShutdownCh == nil {
		return context.Background()
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-m.ShutdownCh
		cancel()
	}()
	return ctx
}

// apiToken returns the configured API token, or "" when none is set.
func (m *Meta) apiToken() string {
	if token := os.Getenv(EnvToken); token != "" {
		return token
	}
	return os.Getenv(EnvTokenAlt)
}
