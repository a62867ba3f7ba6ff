// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	catalogPath    string
	categoryFilter string
	provider       string
	model          string
	concurrency    int
	timeoutStr     string
	outputPath     string
	enableJudge    bool
	noBrowser      bool
	keepTranscript bool
	logLevel       string
	logDir         string

	rootCmd = &cobra.Command{
		Use:   "webbench",
		Short: "An evaluation harness for LLM-driven web code generation",
		Long: `webbench runs a catalog of web-development scenarios against an
LLM coding assistant, validates the generated HTML/CSS/JS with
deterministic checks plus an optional LLM judge, and writes a
JSON report of the run.`,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the scenario suite against an assistant and write a report",
		RunE:  runSuite, // Defined in cmd_run.go
	}

	scenariosCmd = &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios that would run",
		RunE:  runScenarios, // Defined in cmd_scenarios.go
	}

	reportCmd = &cobra.Command{
		Use:   "report [file]",
		Short: "Summarize a previously written report file",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport, // Defined in cmd_report.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a YAML scenario catalog (default: built-in scenarios)")
	rootCmd.PersistentFlags().StringVar(&categoryFilter, "category", "", "Only include scenarios in this category (ui, style, javascript, complex)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for JSON log files (default: stderr only)")

	runCmd.Flags().StringVar(&provider, "provider", "openai", "Assistant provider under test")
	runCmd.Flags().StringVar(&model, "model", "", "Assistant model under test (default: OPENAI_MODEL)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 1, "Maximum scenarios in flight")
	runCmd.Flags().StringVar(&timeoutStr, "timeout", "2m", "Default per-scenario timeout (e.g. 90s, 2m)")
	runCmd.Flags().StringVar(&outputPath, "output", "webbench-report.json", "Report file path")
	runCmd.Flags().BoolVar(&enableJudge, "judge", false, "Enable the qualitative LLM judge")
	runCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Force the static sandbox even when a browser is available")
	runCmd.Flags().BoolVar(&keepTranscript, "transcripts", false, "Retain raw assistant transcripts in the report")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(reportCmd)
}
