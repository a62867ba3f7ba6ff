// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/driftwoodlabs/webbench/services/harness"
	"github.com/driftwoodlabs/webbench/services/harness/driver"
	"github.com/driftwoodlabs/webbench/services/harness/judge"
	"github.com/driftwoodlabs/webbench/services/harness/report"
	"github.com/driftwoodlabs/webbench/services/harness/validate"
)

func runSuite(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	defer logger.Close()
	slogger := logger.Slog()

	registry, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("loading scenarios: %w", err)
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return fmt.Errorf("invalid --timeout: %w", err)
	}

	drv, err := driver.NewOpenAIDriver(
		driver.WithModel(model),
		driver.WithLogger(slogger),
	)
	if err != nil {
		return fmt.Errorf("creating assistant driver: %w", err)
	}

	// Prefer a real browser probe; fall back to the static sandbox when
	// no Chrome binary is available.
	var validatorOpts []validate.ValidatorOption
	if chrome := validate.FindChrome(); chrome != "" && !noBrowser {
		sandbox, err := validate.NewChromeSandbox(chrome, validate.WithChromeLogger(slogger))
		if err != nil {
			return fmt.Errorf("creating browser sandbox: %w", err)
		}
		logger.Info("using browser sandbox", "chrome", chrome)
		validatorOpts = append(validatorOpts, validate.WithSandbox(sandbox))
	} else {
		logger.Info("using static sandbox")
	}
	validatorOpts = append(validatorOpts, validate.WithValidatorLogger(slogger))

	opts := []harness.Option{
		harness.WithProvider(provider, drv.Model()),
		harness.WithConcurrency(concurrency),
		harness.WithDefaultTimeout(timeout),
		harness.WithTranscripts(keepTranscript),
		harness.WithValidator(validate.NewValidator(validatorOpts...)),
		harness.WithRunnerLogger(slogger),
	}
	if enableJudge {
		j, err := judge.NewOpenAIJudge(slogger)
		if err != nil {
			return fmt.Errorf("creating judge: %w", err)
		}
		opts = append(opts, harness.WithJudge(j))
	}
	opts = append(opts, telemetryOptions(prometheus.DefaultRegisterer, slogger)...)

	runner, err := harness.NewRunner(registry, drv, opts...)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	suite, err := runner.RunSuite(cmd.Context())
	if suite != nil {
		if werr := report.Write(outputPath, suite); werr != nil {
			logger.Error("writing report failed", "path", outputPath, "error", werr)
		} else {
			logger.Info("report written", "path", outputPath)
		}
		printSummary(cmd, suite)
	}
	return err
}

// telemetryOptions registers the harness collectors. Registration
// failure degrades to an unmetered run, with a warning so the operator
// knows the metrics are missing.
func telemetryOptions(reg prometheus.Registerer, logger *slog.Logger) []harness.Option {
	metrics, err := harness.NewTelemetry(reg)
	if err != nil {
		logger.Warn("telemetry disabled", slog.String("error", err.Error()))
		return nil
	}
	return []harness.Option{harness.WithTelemetry(metrics)}
}

// printSummary writes the human-readable run digest to stdout.
func printSummary(cmd *cobra.Command, suite *report.TestSuiteResult) {
	s := suite.Summary
	cmd.Printf("\nRun %s (%s/%s)\n", suite.RunID, suite.Provider, suite.Model)
	cmd.Printf("  %d scenarios: %d passed, %d failed (%.0f%%)\n",
		s.Total, s.Passed, s.Failed, s.SuccessRate*100)
	cmd.Printf("  average time: %.0f ms\n", s.AverageTime)
	for category, stats := range s.ByCategory {
		cmd.Printf("  %-12s %d/%d passed\n", category, stats.Passed, stats.Total)
	}
	if len(s.CommonFailures) > 0 {
		cmd.Println("  top failures:")
		for _, cluster := range s.CommonFailures {
			cmd.Printf("    %-12s %d\n", cluster.Type, cluster.Count)
		}
	}
}
