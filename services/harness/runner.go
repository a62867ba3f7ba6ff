// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package harness orchestrates suite runs: for each registered scenario
// it seeds a fixture, drives the assistant under a deadline, validates
// the result, optionally asks the qualitative judge, and folds everything
// into a suite report. Scenario executions are independent; a failing
// scenario never aborts the suite.
package harness

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/driftwoodlabs/webbench/services/harness/driver"
	"github.com/driftwoodlabs/webbench/services/harness/fixture"
	"github.com/driftwoodlabs/webbench/services/harness/judge"
	"github.com/driftwoodlabs/webbench/services/harness/report"
	"github.com/driftwoodlabs/webbench/services/harness/scenario"
	"github.com/driftwoodlabs/webbench/services/harness/validate"
)

const tracerName = "webbench.harness"

// Runner executes a scenario registry against one assistant driver.
//
// Thread Safety: Safe for concurrent use; all mutable state lives in
// per-scenario locals.
type Runner struct {
	registry  *scenario.Registry
	driver    driver.Driver
	validator *validate.Validator
	judge     judge.Judge
	config    *Config
	logger    *slog.Logger
	metrics   *Telemetry
}

// WithValidator replaces the validator (e.g. to inject a sandbox).
func WithValidator(v *validate.Validator) Option {
	return func(r *Runner) {
		if v != nil {
			r.validator = v
		}
	}
}

// WithJudge enables qualitative evaluation. A nil judge disables it.
func WithJudge(j judge.Judge) Option {
	return func(r *Runner) {
		r.judge = j
	}
}

// WithRunnerLogger sets the logger.
func WithRunnerLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTelemetry attaches a metrics sink.
func WithTelemetry(t *Telemetry) Option {
	return func(r *Runner) {
		r.metrics = t
	}
}

// NewRunner creates a suite runner.
//
// Inputs:
//   - registry: The frozen scenario catalog. Must not be nil.
//   - drv: The assistant driver boundary. Must not be nil.
//   - opts: Optional configuration.
//
// Outputs:
//   - *Runner: The runner. Never nil on success.
//   - error: Non-nil on nil inputs or invalid configuration.
func NewRunner(registry *scenario.Registry, drv driver.Driver, opts ...Option) (*Runner, error) {
	if registry == nil {
		return nil, errors.New("registry must not be nil")
	}
	if drv == nil {
		return nil, errors.New("driver must not be nil")
	}
	r := &Runner{
		registry:  registry,
		driver:    drv,
		validator: validate.NewValidator(),
		config:    DefaultConfig(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.config.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RunSuite executes every registered scenario and returns the suite
// record with its derived summary.
//
// Description:
//
//	Scenarios run under the configured concurrency limit. Results are
//	written back into registry order regardless of completion order, so
//	reports are deterministic. Per-scenario failures are recorded, never
//	propagated; the returned error is non-nil only when the caller's
//	context ends the run early.
func (r *Runner) RunSuite(ctx context.Context) (*report.TestSuiteResult, error) {
	runID := uuid.NewString()

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "harness.Runner.RunSuite",
		trace.WithAttributes(
			attribute.String("harness.run_id", runID),
			attribute.String("harness.provider", r.config.Provider),
			attribute.String("harness.model", r.config.Model),
			attribute.Int("harness.scenarios", r.registry.Len()),
		),
	)
	defer span.End()

	scenarios := r.registry.ListAll()
	results := make([]report.TestResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runScenario(gctx, sc)
			if t := r.metrics; t != nil {
				t.ObserveResult(results[i])
			}
			return nil
		})
	}
	err := g.Wait()

	suite := report.NewSuiteResult(runID, r.config.Provider, r.config.Model, results)
	span.SetAttributes(
		attribute.Int("harness.passed", suite.Summary.Passed),
		attribute.Int("harness.failed", suite.Summary.Failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "suite interrupted")
		return suite, err
	}
	span.SetStatus(codes.Ok, "suite completed")
	r.logger.Info("suite completed",
		slog.String("run_id", runID),
		slog.Int("total", suite.Summary.Total),
		slog.Int("passed", suite.Summary.Passed),
		slog.Int("failed", suite.Summary.Failed),
	)
	return suite, nil
}

// runScenario executes exactly one scenario: fixture setup, the bounded
// driver round trip, validation, and the optional qualitative verdict.
// All failures land in the returned result.
func (r *Runner) runScenario(ctx context.Context, sc scenario.Scenario) report.TestResult {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "harness.Runner.runScenario",
		trace.WithAttributes(
			attribute.String("scenario.id", sc.ID),
			attribute.String("scenario.category", string(sc.Category)),
		),
	)
	defer span.End()

	fix := fixture.New(sc.SetupFiles)
	timeout := sc.Timeout
	if timeout <= 0 {
		timeout = r.config.DefaultTimeout
	}

	start := time.Now()
	driveCtx, cancel := context.WithTimeout(ctx, timeout)
	driveRes, driveErr := r.driver.Generate(driveCtx, sc.Prompt, fix)
	cancel()
	elapsed := time.Since(start)

	var (
		final      *fixture.Fixture
		validation validate.Result
		errs       []string
	)

	switch {
	case driveErr != nil:
		// A cancelled call merges nothing: the final set is the fixture.
		final = fix
		classified := classifyDriverError(driveErr, timeout)
		span.RecordError(classified)
		span.SetStatus(codes.Error, "driver failed")

		var label, reason string
		if isTimeout(classified) {
			label = "timeout: " + classified.Error()
			reason = "assistant timed out before producing a result"
		} else {
			label = "driver: " + classified.Error()
			reason = "assistant driver produced no result"
		}
		errs = append(errs, label)
		validation = r.validator.Validate(ctx, sc, final, validate.WithoutFunctional(reason))
		driveRes = &driver.Result{}

	default:
		final = fix.Merge(driveRes.ModifiedFiles, driveRes.CreatedFiles)
		validation = r.validator.Validate(ctx, sc, final)
	}
	errs = append(errs, validation.Failures()...)

	success := driveErr == nil && validation.Passed()

	result := report.TestResult{
		ScenarioID:    sc.ID,
		Name:          sc.Name,
		Category:      string(sc.Category),
		Prompt:        sc.Prompt,
		Success:       success,
		ModifiedFiles: sortedKeys(driveRes.ModifiedFiles),
		CreatedFiles:  sortedKeys(driveRes.CreatedFiles),
		Errors:        errs,
		ExecutionTime: elapsed.Milliseconds(),
		LLMCalls:      driveRes.LLMCalls,
		Validation:    validation,
		Timestamp:     time.Now().UTC(),
		Provider:      r.config.Provider,
		Model:         r.config.Model,
	}
	if r.config.KeepTranscripts {
		result.Transcript = driveRes.Transcript
	}
	if r.config.KeepGeneratedContent {
		result.GeneratedContent = final.Files()
	}

	if r.judge != nil && driveErr == nil {
		result.LLMEvaluation = r.evaluate(ctx, sc, final, validation)
	}

	span.SetAttributes(
		attribute.Bool("scenario.success", success),
		attribute.Int64("scenario.duration_ms", result.ExecutionTime),
	)
	r.logger.Info("scenario completed",
		slog.String("scenario_id", sc.ID),
		slog.Bool("success", success),
		slog.Int64("duration_ms", result.ExecutionTime),
		slog.Int("errors", len(errs)),
	)
	return result
}

// evaluate asks the qualitative judge. Unavailability is logged and
// counted, never escalated: the verdict is advisory by contract.
func (r *Runner) evaluate(ctx context.Context, sc scenario.Scenario, final *fixture.Fixture, deterministic validate.Result) *judge.Evaluation {
	jctx, cancel := context.WithTimeout(ctx, r.config.JudgeTimeout)
	defer cancel()

	ev, err := r.judge.Evaluate(jctx, sc.Prompt, final, deterministic)
	if err != nil {
		r.logger.Warn("qualitative evaluation unavailable",
			slog.String("scenario_id", sc.ID),
			slog.String("error", err.Error()),
		)
		if t := r.metrics; t != nil {
			t.ObserveJudgeFailure()
		}
		return nil
	}
	return ev
}

// classifyDriverError maps a raw driver failure into the harness error
// taxonomy: deadline expiry becomes TimeoutError, everything else an
// AssistantError.
func classifyDriverError(err error, timeout time.Duration) error {
	var (
		aerr *driver.AssistantError
		terr *driver.TimeoutError
	)
	if errors.As(err, &aerr) || errors.As(err, &terr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &driver.TimeoutError{Timeout: timeout}
	}
	return &driver.AssistantError{Message: "driver failed", Err: err}
}

func isTimeout(err error) bool {
	var terr *driver.TimeoutError
	return errors.As(err, &terr)
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
