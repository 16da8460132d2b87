// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Landfall adopts existing DigitalOcean infrastructure: it discovers the
// resources that already exist in an account, generates configuration for
// them, and imports them into a local tracked state.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/mitchellh/cli"

	"github.com/rafagsiqueira/landfall/internal/logging"
	"github.com/rafagsiqueira/landfall/internal/terminal"
	"github.com/rafagsiqueira/landfall/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	logging.Init()
	log.Printf("[INFO] Landfall version: %s", version.String())
	log.Printf("[INFO] Go runtime version: %s", runtime.Version())
	log.Printf("[INFO] CLI args: %#v", os.Args)

	streams, err := terminal.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure the terminal: %s\n", err)
		return 1
	}

	shutdownCh := makeShutdownCh()

	c := cli.NewCLI("landfall", version.String())
	c.Args = os.Args[1:]
	c.Commands = initCommands(streams, shutdownCh)
	c.HelpFunc = cli.BasicHelpFunc("landfall")

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err)
		return 1
	}
	return exitCode
}

// makeShutdownCh creates an interrupt listener and returns a channel that
// is closed on the first interrupt. Further interrupts are left to the
// platform default so a second ^C kills the process.
func makeShutdownCh() <-chan struct{} {
	resultCh := make(chan struct{})

	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, interruptSignals...)
	go func() {
		<-signalCh
		signal.Stop(signalCh)
		close(resultCh)
	}()

	return resultCh
}
