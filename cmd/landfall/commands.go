// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"runtime"

	"github.com/mitchellh/cli"

	"github.com/rafagsiqueira/landfall/internal/command"
	"github.com/rafagsiqueira/landfall/internal/command/views"
	"github.com/rafagsiqueira/landfall/internal/terminal"
)

func initCommands(streams *terminal.Streams, shutdownCh <-chan struct{}) map[string]cli.CommandFactory {
	meta := command.Meta{
		Streams:    streams,
		View:       views.NewView(streams),
		ShutdownCh: shutdownCh,
	}

	return map[string]cli.CommandFactory{
		"sync": func() (cli.Command, error) {
			return &command.SyncCommand{
				Meta: meta,
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &command.VersionCommand{
				Meta:     meta,
				Platform: runtime.GOOS + "_" + runtime.GOARCH,
			}, nil
		},
	}
}
