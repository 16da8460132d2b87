// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package logging configures the process-wide logger. Landfall follows its
// sibling tools here: verbose logging is off by default and enabled by
// setting LANDFALL_LOG to a level name, in which case both the hclog
// structured logger and anything written through the standard library
// "log" package (the "[INFO] ..." style used throughout the codebase) are
// routed to stderr at that level.
package logging

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	envLog = "LANDFALL_LOG"
)

// ValidLevels are the accepted values for LANDFALL_LOG, from most to least
// verbose.
var ValidLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"}

var logger hclog.Logger

// Init sets up the process logger based on the environment and returns it.
// It must be called before any other function in this package, and before
// anything writes through the standard "log" package.
func Init() hclog.Logger {
	logger = newHCLogger("landfall")
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(logger.StandardWriter(&hclog.StandardLoggerOptions{
		InferLevels: true,
	}))
	return logger
}

// HCLogger returns the process logger, initializing it first if needed.
func HCLogger() hclog.Logger {
	if logger == nil {
		return Init()
	}
	return logger
}

func newHCLogger(name string) hclog.Logger {
	logOutput := io.Writer(os.Stderr)

	return hclog.New(&hclog.LoggerOptions{
		Name:              name,
		Level:             globalLogLevel(),
		Output:            logOutput,
		IndependentLevels: true,
	})
}

func globalLogLevel() hclog.Level {
	envLevel := strings.ToUpper(os.Getenv(envLog))
	if envLevel == "" {
		return hclog.Off
	}
	if envLevel == "JSON" {
		return hclog.Trace
	}
	if isValidLogLevel(envLevel) {
		return hclog.LevelFromString(envLevel)
	}
	// An unrecognized level degrades to the most verbose behavior rather
	// than silently discarding logs the operator asked for.
	return hclog.Trace
}

func isValidLogLevel(level string) bool {
	for _, l := range ValidLevels {
		if level == l {
			return true
		}
	}
	return false
}
