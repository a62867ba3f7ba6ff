// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package driver defines the assistant boundary: the harness hands a
// prompt and a fixture to a Driver and receives the files the assistant
// modified or created. The assistant itself is an opaque collaborator;
// implementations here are transports, not assistants.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// Exchange is one entry in the raw transcript of a driver round trip.
type Exchange struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the driver's success payload.
type Result struct {
	// ModifiedFiles maps fixture paths to their new content.
	ModifiedFiles map[string]string
	// CreatedFiles maps new paths to their content.
	CreatedFiles map[string]string
	// LLMCalls counts assistant round trips made for this scenario.
	LLMCalls int
	// Transcript holds the ordered raw exchanges, for auditability.
	Transcript []Exchange
}

// Driver generates project files for a prompt against an initial fixture.
//
// Description:
//
//	Generate must honor ctx cancellation; the harness applies the
//	scenario's timeout as a deadline on the context. Implementations
//	return their transport errors unwrapped; the harness classifies them
//	into AssistantError or TimeoutError at the scenario boundary.
type Driver interface {
	// Name identifies the driver (e.g. "openai", "replay").
	Name() string

	// Generate runs one assistant round trip. The fixture must not be
	// mutated; changed content is returned in the Result.
	Generate(ctx context.Context, prompt string, initial *fixture.Fixture) (*Result, error)
}

// -----------------------------------------------------------------------------
// Error taxonomy
// -----------------------------------------------------------------------------

// AssistantError indicates the driver failed to produce a result for a
// reason other than the deadline.
type AssistantError struct {
	Message string
	Err     error
}

func (e *AssistantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assistant error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("assistant error: %s", e.Message)
}

func (e *AssistantError) Unwrap() error { return e.Err }

// TimeoutError indicates the scenario deadline elapsed before the driver
// produced a result.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("assistant timed out after %s", e.Timeout)
}

// -----------------------------------------------------------------------------
// Func adapter
// -----------------------------------------------------------------------------

// Func adapts a function to the Driver interface, mirroring http.HandlerFunc.
// Used mainly by tests and embedders with bespoke assistants.
type Func func(ctx context.Context, prompt string, initial *fixture.Fixture) (*Result, error)

// Name implements Driver.
func (Func) Name() string { return "func" }

// Generate implements Driver.
func (f Func) Generate(ctx context.Context, prompt string, initial *fixture.Fixture) (*Result, error) {
	return f(ctx, prompt, initial)
}
