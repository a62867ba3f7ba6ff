// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/driftwoodlabs/webbench/pkg/logging"
	"github.com/driftwoodlabs/webbench/services/harness/scenario"
)

// newLogger builds the process logger from the persistent flags.
func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(logLevel),
		LogDir:  logDir,
		Service: "webbench",
	})
}

// loadRegistry resolves the scenario set from the --catalog and
// --category flags. No catalog means the built-in scenarios.
func loadRegistry() (*scenario.Registry, error) {
	var (
		reg *scenario.Registry
		err error
	)
	if catalogPath != "" {
		reg, err = scenario.LoadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
	} else {
		reg = scenario.Builtin()
	}

	if categoryFilter == "" {
		return reg, nil
	}
	cat := scenario.Category(categoryFilter)
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown category %q", categoryFilter)
	}
	subset := reg.ByCategory(cat)
	if len(subset) == 0 {
		return nil, fmt.Errorf("no scenarios in category %q", categoryFilter)
	}
	return scenario.NewRegistry(subset)
}
