// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a scenario catalog.
type catalogFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// ParseCatalog decodes a YAML catalog into a frozen registry.
//
// Description:
//
//	The catalog is a document with a top-level `scenarios` list. Each
//	entry uses the Scenario field names (id, name, category, prompt,
//	setupFiles, expectedElements, expectedPatterns, timeoutMs). Patterns
//	may be bare strings or {pattern, ignoreCase} mappings.
func ParseCatalog(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: catalog defines no scenarios", ErrInvalidScenario)
	}
	return NewRegistry(file.Scenarios)
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}
