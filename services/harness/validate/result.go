// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validate runs the deterministic checks against a scenario's
// final file set: syntax validity, element presence, pattern presence,
// and functional behavior. Each check is an independent pure function
// over the same immutable snapshot; none short-circuits the others.
package validate

// Result carries the four independent verdicts. A failure list is
// populated only when its paired boolean is false.
type Result struct {
	SyntaxValid  bool     `json:"syntaxValid"`
	SyntaxErrors []string `json:"syntaxErrors,omitempty"`

	DOMElementsPresent bool     `json:"domElementsPresent"`
	MissingElements    []string `json:"missingElements,omitempty"`

	PatternsFound   bool     `json:"patternsFound"`
	MissingPatterns []string `json:"missingPatterns,omitempty"`

	FunctionalityWorks  bool     `json:"functionalityWorks"`
	FunctionalityErrors []string `json:"functionalityErrors,omitempty"`
}

// Passed reports whether all four checks succeeded.
func (r Result) Passed() bool {
	return r.SyntaxValid && r.DOMElementsPresent && r.PatternsFound && r.FunctionalityWorks
}

// Failures flattens all failure lists with a per-check label prefix, in
// check order. The labels double as the failure-type keys the aggregator
// clusters on.
func (r Result) Failures() []string {
	var out []string
	for _, msg := range r.SyntaxErrors {
		out = append(out, "syntax: "+msg)
	}
	for _, msg := range r.MissingElements {
		out = append(out, "elements: "+msg)
	}
	for _, msg := range r.MissingPatterns {
		out = append(out, "patterns: "+msg)
	}
	for _, msg := range r.FunctionalityErrors {
		out = append(out, "functional: "+msg)
	}
	return out
}
