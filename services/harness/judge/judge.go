// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package judge defines the qualitative evaluator boundary. A judge's
// verdict is advisory: it is attached to a scenario result but never
// influences the deterministic pass/fail decision.
package judge

import (
	"context"
	"errors"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
	"github.com/driftwoodlabs/webbench/services/harness/validate"
)

// ErrUnavailable indicates the qualitative evaluator failed or is
// disabled. The harness treats this as "no evaluation available", never
// as a scenario failure.
var ErrUnavailable = errors.New("qualitative evaluator unavailable")

// Aspects are the four named qualitative dimensions of a verdict.
type Aspects struct {
	FunctionalityImplemented bool `json:"functionalityImplemented"`
	CodeQuality              bool `json:"codeQuality"`
	RequirementsMet          bool `json:"requirementsMet"`
	UserExperienceGood       bool `json:"userExperienceGood"`
}

// Evaluation is the structured qualitative verdict. Score is clamped to
// [0,1] by implementations.
type Evaluation struct {
	Success   bool    `json:"success"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	Aspects   Aspects `json:"aspects"`
}

// Judge submits generated files for qualitative scoring.
//
// Description:
//
//	Evaluate receives the original prompt, the final file set, and the
//	deterministic verdicts so the judge can weigh them. Any failure
//	returns an error wrapping ErrUnavailable.
type Judge interface {
	// Name identifies the judge implementation.
	Name() string

	// Evaluate scores the final files against the prompt.
	Evaluate(ctx context.Context, prompt string, files *fixture.Fixture, deterministic validate.Result) (*Evaluation, error)
}

// clampScore forces a score into [0,1].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
