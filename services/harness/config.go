// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package harness

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config controls one suite run.
type Config struct {
	// Provider identifies the assistant provider under test.
	Provider string `validate:"required"`

	// Model identifies the assistant model under test.
	Model string

	// DefaultTimeout bounds a scenario's driver round trip when the
	// scenario declares none.
	DefaultTimeout time.Duration `validate:"gt=0"`

	// JudgeTimeout bounds one qualitative evaluation round trip.
	JudgeTimeout time.Duration `validate:"gt=0"`

	// Concurrency is the maximum number of scenarios in flight.
	Concurrency int `validate:"gte=1"`

	// KeepTranscripts retains raw driver exchanges in results.
	KeepTranscripts bool

	// KeepGeneratedContent retains the final file snapshot in results.
	KeepGeneratedContent bool
}

// DefaultConfig returns a sequential-run configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:             "openai",
		DefaultTimeout:       2 * time.Minute,
		JudgeTimeout:         time.Minute,
		Concurrency:          1,
		KeepGeneratedContent: true,
	}
}

var configValidator = validator.New()

// Validate checks the configuration's struct constraints.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid harness config: %w", err)
	}
	return nil
}

// Option configures a Runner at construction.
type Option func(*Runner)

// WithConfig replaces the whole configuration.
func WithConfig(cfg *Config) Option {
	return func(r *Runner) {
		if cfg != nil {
			r.config = cfg
		}
	}
}

// WithConcurrency sets the scenario concurrency limit.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.config.Concurrency = n
		}
	}
}

// WithDefaultTimeout sets the fallback per-scenario deadline.
func WithDefaultTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.config.DefaultTimeout = d
		}
	}
}

// WithProvider records the provider/model identifiers stamped on results.
func WithProvider(provider, model string) Option {
	return func(r *Runner) {
		if provider != "" {
			r.config.Provider = provider
		}
		r.config.Model = model
	}
}

// WithTranscripts toggles transcript retention.
func WithTranscripts(keep bool) Option {
	return func(r *Runner) {
		r.config.KeepTranscripts = keep
	}
}
