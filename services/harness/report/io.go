// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write serializes the suite result as indented JSON, creating parent
// directories as needed. The file is the externally persisted artifact;
// downstream tooling consumes it read-only.
func Write(path string, suite *TestSuiteResult) error {
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding suite result: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// Load reads a previously written suite result.
func Load(path string) (*TestSuiteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var suite TestSuiteResult
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", path, err)
	}
	return &suite, nil
}
