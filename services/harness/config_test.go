// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package harness

import (
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"missing provider", func(c *Config) { c.Provider = "" }},
		{"zero default timeout", func(c *Config) { c.DefaultTimeout = 0 }},
		{"negative judge timeout", func(c *Config) { c.JudgeTimeout = -time.Second }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() succeeded, want error")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	r := &Runner{config: DefaultConfig()}

	WithConcurrency(4)(r)
	WithDefaultTimeout(90 * time.Second)(r)
	WithProvider("anthropic", "claude")(r)
	WithTranscripts(true)(r)

	if r.config.Concurrency != 4 {
		t.Errorf("Concurrency = %d", r.config.Concurrency)
	}
	if r.config.DefaultTimeout != 90*time.Second {
		t.Errorf("DefaultTimeout = %v", r.config.DefaultTimeout)
	}
	if r.config.Provider != "anthropic" || r.config.Model != "claude" {
		t.Errorf("provider/model = %s/%s", r.config.Provider, r.config.Model)
	}
	if !r.config.KeepTranscripts {
		t.Error("KeepTranscripts = false")
	}

	// Guarded setters ignore nonsense values.
	WithConcurrency(0)(r)
	WithDefaultTimeout(-time.Second)(r)
	WithProvider("", "m2")(r)
	if r.config.Concurrency != 4 || r.config.DefaultTimeout != 90*time.Second {
		t.Errorf("guarded setters overwrote valid config: %+v", r.config)
	}
	if r.config.Provider != "anthropic" {
		t.Errorf("empty provider overwrote previous: %q", r.config.Provider)
	}
	if r.config.Model != "m2" {
		t.Errorf("Model = %q, want m2", r.config.Model)
	}
}
