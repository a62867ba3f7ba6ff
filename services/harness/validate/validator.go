// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
	"github.com/driftwoodlabs/webbench/services/harness/scenario"
)

// Validator runs the four deterministic checks against a final file set.
// Checks never short-circuit: all four always run (unless the caller
// skips the functional probe), so failure attribution stays precise.
//
// Thread Safety: Safe for concurrent use.
type Validator struct {
	sandbox Sandbox
	logger  *slog.Logger
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithSandbox sets the functional-check sandbox. Default StaticSandbox.
func WithSandbox(sandbox Sandbox) ValidatorOption {
	return func(v *Validator) {
		if sandbox != nil {
			v.sandbox = sandbox
		}
	}
}

// WithValidatorLogger sets the logger.
func WithValidatorLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator creates a Validator. Without options it uses the
// StaticSandbox, so validation never depends on an installed browser.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		sandbox: StaticSandbox{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CheckOption tunes a single Validate call.
type CheckOption func(*checkConfig)

type checkConfig struct {
	skipFunctional bool
	skipReason     string
}

// WithoutFunctional skips the functional probe and records reason as the
// check's failure instead. The harness uses this when the driver failed:
// there is nothing meaningful to load, and the scenario must surface
// functionalityWorks=false.
func WithoutFunctional(reason string) CheckOption {
	return func(c *checkConfig) {
		c.skipFunctional = true
		c.skipReason = reason
	}
}

// Validate runs all checks over the final file set and returns the four
// independent verdicts. A panicking check is captured as that check's
// failure; the remaining checks still run. Deterministic: two calls on
// the same snapshot yield identical results.
func (v *Validator) Validate(ctx context.Context, sc scenario.Scenario, final *fixture.Fixture, opts ...CheckOption) Result {
	cfg := &checkConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var result Result

	result.SyntaxErrors = runCheck("syntax", v.logger, func() []string {
		return checkSyntax(ctx, final)
	})
	result.SyntaxValid = len(result.SyntaxErrors) == 0

	result.MissingElements = runCheck("elements", v.logger, func() []string {
		return checkElements(sc.ExpectedElements, final)
	})
	result.DOMElementsPresent = len(result.MissingElements) == 0

	result.MissingPatterns = runCheck("patterns", v.logger, func() []string {
		return checkPatterns(sc.ExpectedPatterns, final)
	})
	result.PatternsFound = len(result.MissingPatterns) == 0

	if cfg.skipFunctional {
		result.FunctionalityErrors = []string{cfg.skipReason}
	} else {
		result.FunctionalityErrors = runCheck("functional", v.logger, func() []string {
			return v.sandbox.Probe(ctx, EntryPage(final), final, sc.ExpectedElements)
		})
	}
	result.FunctionalityWorks = len(result.FunctionalityErrors) == 0

	return result
}

// runCheck executes one check, converting a panic into a failure entry
// for that check only.
func runCheck(name string, logger *slog.Logger, check func() []string) (failures []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("validation check crashed",
				slog.String("check", name),
				slog.Any("panic", r),
			)
			failures = append(failures, fmt.Sprintf("%s check crashed: %v", name, r))
		}
	}()
	return check()
}
