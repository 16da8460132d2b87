// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package tfdiags is a utility package for representing errors and warnings
// in a manner that allows us to produce good messages for the user, while
// still propagating them through function signatures like regular errors.
//
// Landfall has no configuration source ranges to attach, so every diagnostic
// here is "sourceless" in the sense the name implies in the wider Terraform
// ecosystem; we keep the package name so the call sites read the same way
// they do in our sibling tools.
package tfdiags

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// Severity describes how serious a particular diagnostic is.
type Severity rune

const (
	// Error is a diagnostic severity that causes the relevant operation to
	// be considered failed.
	Error Severity = 'E'

	// Warning is a diagnostic severity that allows the relevant operation
	// to continue but that should be surfaced to the user.
	Warning Severity = 'W'
)

// Diagnostic is a single warning or error.
type Diagnostic interface {
	Severity() Severity
	Description() Description
}

// Description is the user-facing content of a diagnostic.
type Description struct {
	Summary string
	Detail  string
}

// Diagnostics is a collection of Diagnostic values. The zero value (nil) is
// an empty, valid collection.
type Diagnostics []Diagnostic

// Append adds new diagnostics to the receiver and returns the combined set.
// Each argument may be a Diagnostic, a Diagnostics, or an error; nil values
// of any of these are silently ignored. Any other type panics, since that
// always indicates a bug in the caller.
func (diags Diagnostics) Append(new ...interface{}) Diagnostics {
	for _, item := range new {
		if item == nil {
			continue
		}
		switch ti := item.(type) {
		case Diagnostic:
			diags = append(diags, ti)
		case Diagnostics:
			diags = append(diags, ti...)
		case error:
			diags = append(diags, nativeError{ti})
		default:
			panic(fmt.Errorf("can't construct diagnostic(s) from %T", item))
		}
	}
	return diags
}

// HasErrors returns true if any of the diagnostics in the collection have a
// severity of Error.
func (diags Diagnostics) HasErrors() bool {
	for _, diag := range diags {
		if diag.Severity() == Error {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any of the diagnostics in the collection have
// a severity of Warning.
func (diags Diagnostics) HasWarnings() bool {
	for _, diag := range diags {
		if diag.Severity() == Warning {
			return true
		}
	}
	return false
}

// Err flattens the error-severity diagnostics in the collection into a
// single error, or returns nil if there are none. Warnings are discarded,
// so this is lossy: prefer returning the Diagnostics themselves wherever
// the signature allows.
func (diags Diagnostics) Err() error {
	if !diags.HasErrors() {
		return nil
	}
	var err *multierror.Error
	for _, diag := range diags {
		if diag.Severity() != Error {
			continue
		}
		desc := diag.Description()
		if desc.Detail != "" {
			err = multierror.Append(err, fmt.Errorf("%s: %s", desc.Summary, desc.Detail))
		} else {
			err = multierror.Append(err, fmt.Errorf("%s", desc.Summary))
		}
	}
	return err.ErrorOrNil()
}

// Sourceless creates and returns a diagnostic with no source location
// information.
func Sourceless(severity Severity, summary, detail string) Diagnostic {
	return sourceless{
		severity: severity,
		summary:  summary,
		detail:   detail,
	}
}

type sourceless struct {
	severity Severity
	summary  string
	detail   string
}

func (d sourceless) Severity() Severity { return d.severity }

func (d sourceless) Description() Description {
	return Description{
		Summary: d.summary,
		Detail:  d.detail,
	}
}

// nativeError wraps a plain Go error as an error-severity diagnostic.
type nativeError struct {
	err error
}

func (e nativeError) Severity() Severity { return Error }

func (e nativeError) Description() Description {
	return Description{
		Summary: e.err.Error(),
	}
}
