// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// ReplayDriver serves pre-recorded assistant responses keyed by prompt.
// It makes suite runs deterministic: regression runs replay a recorded
// session instead of calling a live assistant.
//
// Thread Safety: Safe for concurrent use.
type ReplayDriver struct {
	mu        sync.RWMutex
	responses map[string]*Result
}

// NewReplayDriver builds a replay driver from recorded responses keyed
// by the exact prompt text.
func NewReplayDriver(responses map[string]*Result) *ReplayDriver {
	copied := make(map[string]*Result, len(responses))
	for k, v := range responses {
		copied[k] = v
	}
	return &ReplayDriver{responses: copied}
}

// Record adds or replaces the response for a prompt.
func (d *ReplayDriver) Record(prompt string, result *Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses[prompt] = result
}

// Name implements Driver.
func (d *ReplayDriver) Name() string { return "replay" }

// Generate implements Driver. Unknown prompts fail the same way a live
// assistant failing to answer would.
func (d *ReplayDriver) Generate(ctx context.Context, prompt string, _ *fixture.Fixture) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	result, ok := d.responses[prompt]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no recorded response for prompt")
	}
	return result, nil
}
