// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"sort"
	"strings"
	"time"
)

// maxFailureExamples bounds the example excerpts kept per failure type.
const maxFailureExamples = 3

// knownFailureTypes are the normalized keys error strings cluster under.
// The per-check labels come from validate.Result.Failures; "driver" and
// "timeout" come from the runner.
var knownFailureTypes = map[string]bool{
	"syntax":     true,
	"elements":   true,
	"patterns":   true,
	"functional": true,
	"driver":     true,
	"timeout":    true,
}

// Aggregate folds scenario results into the suite summary. It is a pure
// function: no synchronization, no mutation of the input, tolerant of an
// empty or partially populated list.
func Aggregate(results []TestResult) Summary {
	summary := Summary{
		Total:      len(results),
		ByCategory: make(map[string]CategoryStats),
	}

	var totalTime int64
	counts := make(map[string]int)
	examples := make(map[string][]string)

	for _, r := range results {
		if r.Success {
			summary.Passed++
		} else {
			summary.Failed++
		}
		totalTime += r.ExecutionTime

		stats := summary.ByCategory[r.Category]
		stats.Total++
		if r.Success {
			stats.Passed++
		} else {
			stats.Failed++
		}
		summary.ByCategory[r.Category] = stats

		for _, msg := range dedupe(r.Errors) {
			key := failureType(msg)
			counts[key]++
			if len(examples[key]) < maxFailureExamples {
				examples[key] = append(examples[key], msg)
			}
		}
	}

	if summary.Total > 0 {
		summary.SuccessRate = float64(summary.Passed) / float64(summary.Total)
		summary.AverageTime = float64(totalTime) / float64(summary.Total)
	}

	summary.CommonFailures = make([]FailureCluster, 0, len(counts))
	for key, count := range counts {
		summary.CommonFailures = append(summary.CommonFailures, FailureCluster{
			Type:     key,
			Count:    count,
			Examples: examples[key],
		})
	}
	sort.Slice(summary.CommonFailures, func(i, j int) bool {
		a, b := summary.CommonFailures[i], summary.CommonFailures[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})

	return summary
}

// NewSuiteResult assembles the suite record with its derived summary.
func NewSuiteResult(runID, provider, model string, results []TestResult) *TestSuiteResult {
	return &TestSuiteResult{
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		Provider:  provider,
		Model:     model,
		Results:   results,
		Summary:   Aggregate(results),
	}
}

// failureType extracts the normalized failure key from an error string's
// label prefix. Unlabeled strings cluster under "other".
func failureType(msg string) string {
	if i := strings.Index(msg, ":"); i > 0 {
		key := strings.TrimSpace(msg[:i])
		if knownFailureTypes[key] {
			return key
		}
	}
	return "other"
}

// dedupe removes duplicate error strings, preserving first-seen order.
func dedupe(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
