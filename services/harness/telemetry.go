// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package harness

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/driftwoodlabs/webbench/services/harness/report"
)

// Telemetry exports suite metrics to Prometheus.
//
// Thread Safety: Safe for concurrent use; the underlying collectors are.
type Telemetry struct {
	scenarios *prometheus.CounterVec
	duration  prometheus.Histogram
	judged    *prometheus.CounterVec
}

// NewTelemetry registers the harness collectors on reg. A nil reg uses
// the default registerer.
func NewTelemetry(reg prometheus.Registerer) (*Telemetry, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	t := &Telemetry{
		scenarios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webbench",
			Name:      "scenarios_total",
			Help:      "Scenario executions by category and outcome.",
		}, []string{"category", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "webbench",
			Name:      "scenario_duration_seconds",
			Help:      "Wall-clock scenario execution time.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		judged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webbench",
			Name:      "judge_verdicts_total",
			Help:      "Qualitative evaluations by availability.",
		}, []string{"status"}),
	}
	for _, c := range []prometheus.Collector{t.scenarios, t.duration, t.judged} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering harness metrics: %w", err)
		}
	}
	return t, nil
}

// ObserveResult records one completed scenario.
func (t *Telemetry) ObserveResult(r report.TestResult) {
	if t == nil {
		return
	}
	status := "failed"
	if r.Success {
		status = "passed"
	}
	t.scenarios.WithLabelValues(r.Category, status).Inc()
	t.duration.Observe(float64(r.ExecutionTime) / 1000.0)
	if r.LLMEvaluation != nil {
		t.judged.WithLabelValues("available").Inc()
	}
}

// ObserveJudgeFailure records an unavailable qualitative evaluation.
func (t *Telemetry) ObserveJudgeFailure() {
	if t == nil {
		return
	}
	t.judged.WithLabelValues("unavailable").Inc()
}
