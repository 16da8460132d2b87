// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// StreamsForTesting returns a Streams value connected to in-memory buffers
// instead of real terminal handles, for use in unit tests of code that
// writes through a Streams.
//
// The second return value is a callback to run once all writing is
// complete, which returns the captured output.
func StreamsForTesting(t *testing.T) (*Streams, func(*testing.T) *TestOutput) {
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %s", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stderr pipe: %s", err)
	}

	outp := &TestOutput{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var buf strings.Builder
		io.Copy(&buf, stdoutR)
		outp.stdout = buf.String()
	}()
	go func() {
		defer wg.Done()
		var buf strings.Builder
		io.Copy(&buf, stderrR)
		outp.stderr = buf.String()
	}()

	streams := &Streams{
		Stdout: &OutputStream{File: stdoutW},
		Stderr: &OutputStream{File: stderrW},
		Stdin:  &InputStream{File: os.Stdin},
	}

	done := func(t *testing.T) *TestOutput {
		stdoutW.Close()
		stderrW.Close()
		wg.Wait()
		return outp
	}
	return streams, done
}

// TestOutput is the output captured by StreamsForTesting.
type TestOutput struct {
	stdout string
	stderr string
}

// Stdout returns everything written to the stdout stream.
func (o *TestOutput) Stdout() string { return o.stdout }

// Stderr returns everything written to the stderr stream.
func (o *TestOutput) Stderr() string { return o.stderr }

// All returns stdout and stderr concatenated.
func (o *TestOutput) All() string { return o.stdout + o.stderr }
