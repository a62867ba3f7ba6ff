// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report holds the per-scenario and suite-level result records
// and the pure aggregation over them. The JSON field names here are the
// externally persisted contract; consumers diff reports across runs, so
// names and nesting must stay stable.
package report

import (
	"time"

	"github.com/driftwoodlabs/webbench/services/harness/driver"
	"github.com/driftwoodlabs/webbench/services/harness/judge"
	"github.com/driftwoodlabs/webbench/services/harness/validate"
)

// TestResult is the full record of one scenario execution. Created once,
// immutable thereafter, consumed only by the aggregator and report
// consumers.
type TestResult struct {
	ScenarioID string `json:"scenarioId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Prompt     string `json:"prompt"`

	// Success is derived: all four validation verdicts true and no
	// driver or timeout error during driving.
	Success bool `json:"success"`

	ModifiedFiles []string `json:"modifiedFiles"`
	CreatedFiles  []string `json:"createdFiles"`

	// Errors collects, in order, the driver failure (if any) followed by
	// every validation failure with its check label prefix.
	Errors []string `json:"errors"`

	// ExecutionTime is wall-clock duration in milliseconds.
	ExecutionTime int64 `json:"executionTime"`

	// LLMCalls counts assistant round trips.
	LLMCalls int `json:"llmCalls"`

	Validation validate.Result `json:"validation"`
	Timestamp  time.Time       `json:"timestamp"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	Transcript []driver.Exchange `json:"transcript,omitempty"`

	// GeneratedContent snapshots the final file set verbatim.
	GeneratedContent map[string]string `json:"generatedContent,omitempty"`

	// LLMEvaluation is the advisory qualitative verdict, when available.
	LLMEvaluation *judge.Evaluation `json:"llmEvaluation,omitempty"`
}

// CategoryStats counts one category's subset of results.
type CategoryStats struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// FailureCluster groups error strings by failure type.
type FailureCluster struct {
	Type     string   `json:"type"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// Summary is the derived suite-level statistics block.
type Summary struct {
	Total          int                      `json:"total"`
	Passed         int                      `json:"passed"`
	Failed         int                      `json:"failed"`
	SuccessRate    float64                  `json:"successRate"`
	AverageTime    float64                  `json:"averageTime"`
	ByCategory     map[string]CategoryStats `json:"byCategory"`
	CommonFailures []FailureCluster         `json:"commonFailures"`
}

// TestSuiteResult is one run's full record: the ordered scenario results
// plus the derived summary. Invariants: Summary.Total == len(Results)
// and Summary.Passed + Summary.Failed == Summary.Total.
type TestSuiteResult struct {
	RunID     string       `json:"runId"`
	Timestamp time.Time    `json:"timestamp"`
	Provider  string       `json:"provider"`
	Model     string       `json:"model"`
	Results   []TestResult `json:"results"`
	Summary   Summary      `json:"summary"`
}
