// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runScenarios(cmd *cobra.Command, _ []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading scenarios: %w", err)
	}

	cmd.Printf("%-24s %-12s %s\n", "ID", "CATEGORY", "NAME")
	for _, sc := range registry.ListAll() {
		cmd.Printf("%-24s %-12s %s\n", sc.ID, sc.Category, sc.Name)
	}
	cmd.Printf("\n%d scenarios\n", registry.Len())
	return nil
}
