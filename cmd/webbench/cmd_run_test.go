// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestTelemetryOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	opts := telemetryOptions(reg, logger)
	if len(opts) != 1 {
		t.Fatalf("telemetryOptions() = %d options, want 1", len(opts))
	}
	if strings.Contains(buf.String(), "telemetry disabled") {
		t.Errorf("unexpected warning on clean registration: %q", buf.String())
	}
}

func TestTelemetryOptions_RegistrationFailureIsLogged(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// First registration claims the collector names; the second collides.
	if opts := telemetryOptions(reg, logger); len(opts) != 1 {
		t.Fatalf("first telemetryOptions() = %d options, want 1", len(opts))
	}
	opts := telemetryOptions(reg, logger)
	if len(opts) != 0 {
		t.Errorf("second telemetryOptions() = %d options, want 0", len(opts))
	}
	if !strings.Contains(buf.String(), "telemetry disabled") {
		t.Errorf("registration failure not logged: %q", buf.String())
	}
}
