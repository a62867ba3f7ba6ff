// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

const assistantSystemPrompt = `You are a web development assistant. You receive a project's files and an instruction.
Return every file you change or add as a fenced block:

` + "```" + `file:<path>
<complete file content>
` + "```" + `

Rules:
- Emit complete file contents, never fragments or ellipses.
- Only emit files you changed or added.
- Use relative paths exactly as given in the project listing.
- A unified diff inside a ` + "```" + `diff block is also accepted.
- No commentary outside the fenced blocks.`

// OpenAIDriver drives an OpenAI-compatible assistant through the chat
// completions API.
type OpenAIDriver struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// OpenAIOption configures an OpenAIDriver.
type OpenAIOption func(*OpenAIDriver)

// WithModel overrides the model name.
func WithModel(model string) OpenAIOption {
	return func(d *OpenAIDriver) {
		if model != "" {
			d.model = model
		}
	}
}

// WithRateLimit caps assistant calls at n per second.
func WithRateLimit(n float64) OpenAIOption {
	return func(d *OpenAIDriver) {
		if n > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithLogger sets the driver's logger.
func WithLogger(logger *slog.Logger) OpenAIOption {
	return func(d *OpenAIDriver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewOpenAIDriver builds a driver from OPENAI_API_KEY and OPENAI_MODEL.
// An optional OPENAI_BASE_URL points the client at a compatible gateway.
func NewOpenAIDriver(opts ...OpenAIOption) (*OpenAIDriver, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("OPENAI_MODEL not set, defaulting to gpt-4o-mini")
	}

	d := &OpenAIDriver{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Name implements Driver.
func (d *OpenAIDriver) Name() string { return "openai" }

// Model returns the model under test.
func (d *OpenAIDriver) Model() string { return d.model }

// Generate implements Driver: one chat completion round trip, decoded
// into the modified/created file maps.
func (d *OpenAIDriver) Generate(ctx context.Context, prompt string, initial *fixture.Fixture) (*Result, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	user := buildUserMessage(prompt, initial)
	d.logger.Debug("sending generation request",
		slog.String("model", d.model),
		slog.Int("fixture_files", initial.Len()),
	)

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("assistant returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	modified, created, err := DecodeResponse(raw, initial)
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &Result{
		ModifiedFiles: modified,
		CreatedFiles:  created,
		LLMCalls:      1,
		Transcript: []Exchange{
			{Role: "user", Content: user},
			{Role: "assistant", Content: raw},
		},
	}, nil
}

// buildUserMessage renders the instruction plus the project listing.
func buildUserMessage(prompt string, initial *fixture.Fixture) string {
	var b strings.Builder
	b.WriteString("Instruction:\n")
	b.WriteString(prompt)
	b.WriteString("\n\nProject files:\n")
	if initial.Len() == 0 {
		b.WriteString("(empty project)\n")
	}
	for _, path := range initial.Paths() {
		content, _ := initial.Get(path)
		fmt.Fprintf(&b, "\n```file:%s\n%s\n```\n", path, content)
	}
	return b.String()
}
