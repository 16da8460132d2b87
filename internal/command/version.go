// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"encoding/json"
	"strings"

	"github.com/rafagsiqueira/landfall/version"
)

// VersionCommand is a Command implementation that prints the version.
type VersionCommand struct {
	Meta

	Platform string
}

func (c *VersionCommand) Run(args []string) int {
	var jsonOutput bool
	for _, arg := range args {
		switch arg {
		case "-json":
			jsonOutput = true
		default:
			c.Streams.Eprintf("Invalid argument %q. The version command accepts only -json.\n", arg)
			return 1
		}
	}

	if jsonOutput {
		output := map[string]interface{}{
			"version":  version.String(),
			"platform": c.Platform,
		}
		src, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			c.Streams.Eprintf("Failed to marshal version output: %s\n", err)
			return 1
		}
		c.Streams.Println(string(src))
		return 0
	}

	c.Streams.Printf("Landfall v%s\n", version.String())
	if c.Platform != "" {
		c.Streams.Printf("on %s\n", c.Platform)
	}
	return 0
}

func (c *VersionCommand) Help() string {
	helpText := `
Usage: landfall version [-json]

  Displays the version of landfall.

Options:

  -json       Output the version information as a JSON object.
`
	return strings.TrimSpace(helpText)
}

func (c *VersionCommand) Synopsis() string {
	return "Show the current Landfall version"
}
