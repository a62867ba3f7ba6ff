// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
	"github.com/driftwoodlabs/webbench/services/harness/validate"
)

const judgeSystemPrompt = `You are a strict reviewer of generated web code. Given an instruction,
the resulting project files, and the harness's deterministic check results, judge the work.
Respond with a single JSON object, nothing else:

{
  "success": bool,
  "score": number between 0 and 1,
  "reasoning": "short explanation",
  "aspects": {
    "functionalityImplemented": bool,
    "codeQuality": bool,
    "requirementsMet": bool,
    "userExperienceGood": bool
  }
}`

// OpenAIJudge scores generated files with an OpenAI-compatible model.
type OpenAIJudge struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIJudge builds a judge from OPENAI_API_KEY and, when set,
// OPENAI_JUDGE_MODEL (falling back to OPENAI_MODEL, then gpt-4o-mini).
func NewOpenAIJudge(logger *slog.Logger) (*OpenAIJudge, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrUnavailable)
	}
	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	model := os.Getenv("OPENAI_JUDGE_MODEL")
	if model == "" {
		model = os.Getenv("OPENAI_MODEL")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIJudge{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}, nil
}

// Name implements Judge.
func (j *OpenAIJudge) Name() string { return "openai" }

// Evaluate implements Judge.
func (j *OpenAIJudge) Evaluate(ctx context.Context, prompt string, files *fixture.Fixture, deterministic validate.Result) (*Evaluation, error) {
	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: j.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: judgeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildJudgeMessage(prompt, files, deterministic)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: judge returned no choices", ErrUnavailable)
	}
	ev, err := ParseEvaluation(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	j.logger.Debug("qualitative verdict received",
		slog.Bool("success", ev.Success),
		slog.Float64("score", ev.Score),
	)
	return ev, nil
}

// ParseEvaluation decodes a judge response. Tolerates fenced JSON; the
// score is clamped to [0,1].
func ParseEvaluation(raw string) (*Evaluation, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var ev Evaluation
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &ev); err != nil {
		return nil, fmt.Errorf("%w: malformed verdict: %v", ErrUnavailable, err)
	}
	ev.Score = clampScore(ev.Score)
	return &ev, nil
}

// buildJudgeMessage renders the judge's input: instruction, deterministic
// verdicts, then the final files.
func buildJudgeMessage(prompt string, files *fixture.Fixture, deterministic validate.Result) string {
	var b strings.Builder
	b.WriteString("Instruction:\n")
	b.WriteString(prompt)

	b.WriteString("\n\nDeterministic checks:\n")
	fmt.Fprintf(&b, "- syntax valid: %v\n", deterministic.SyntaxValid)
	fmt.Fprintf(&b, "- expected elements present: %v\n", deterministic.DOMElementsPresent)
	fmt.Fprintf(&b, "- expected patterns found: %v\n", deterministic.PatternsFound)
	fmt.Fprintf(&b, "- functionality works: %v\n", deterministic.FunctionalityWorks)

	b.WriteString("\nFinal project files:\n")
	for _, path := range files.Paths() {
		content, _ := files.Get(path)
		fmt.Fprintf(&b, "\n```file:%s\n%s\n```\n", path, content)
	}
	return b.String()
}
