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

	"github.com/driftwoodlabs/webbench/services/harness/report"
)

func runReport(cmd *cobra.Command, args []string) error {
	suite, err := report.Load(args[0])
	if err != nil {
		return err
	}
	printSummary(cmd, suite)

	failed := 0
	for _, r := range suite.Results {
		if r.Success {
			continue
		}
		failed++
		cmd.Printf("\nFAILED %s (%s)\n", r.ScenarioID, r.Category)
		for _, msg := range r.Errors {
			cmd.Printf("  - %s\n", msg)
		}
		if r.LLMEvaluation != nil {
			cmd.Printf("  judge: score %.2f, %s\n", r.LLMEvaluation.Score, r.LLMEvaluation.Reasoning)
		}
	}
	if failed == 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		cmd.Println("All scenarios passed.")
	}
	return nil
}
