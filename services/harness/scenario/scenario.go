// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package scenario defines the test scenario model and the read-only
// registry the harness runs against. Scenarios are fixed at construction;
// nothing in this package mutates after New returns.
package scenario

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidScenario indicates a scenario failed structural validation.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrDuplicateID indicates two scenarios share the same id.
	ErrDuplicateID = errors.New("duplicate scenario id")

	// ErrNotFound indicates no scenario exists for the requested id.
	ErrNotFound = errors.New("scenario not found")
)

// -----------------------------------------------------------------------------
// Category
// -----------------------------------------------------------------------------

// Category classifies what a scenario exercises.
type Category string

const (
	// CategoryUI covers structural markup changes (new elements, layout).
	CategoryUI Category = "ui"
	// CategoryStyle covers stylesheet-oriented changes.
	CategoryStyle Category = "style"
	// CategoryJavaScript covers behavior implemented in script.
	CategoryJavaScript Category = "javascript"
	// CategoryComplex covers scenarios spanning markup, style and script.
	CategoryComplex Category = "complex"
)

// Categories returns all known categories in declaration order.
func Categories() []Category {
	return []Category{CategoryUI, CategoryStyle, CategoryJavaScript, CategoryComplex}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryUI, CategoryStyle, CategoryJavaScript, CategoryComplex:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Pattern
// -----------------------------------------------------------------------------

// Pattern is a textual matcher a scenario expects to find in the final
// file set. Source is a regular expression; IgnoreCase controls the
// matcher's case rule, declared per pattern.
type Pattern struct {
	Source     string `yaml:"pattern" json:"pattern"`
	IgnoreCase bool   `yaml:"ignoreCase" json:"ignoreCase,omitempty"`
}

// Compile builds the regular expression for the pattern.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	src := p.Source
	if p.IgnoreCase {
		src = "(?i)" + src
	}
	return regexp.Compile(src)
}

// UnmarshalYAML accepts either a bare string (case-sensitive pattern) or
// a mapping with pattern/ignoreCase keys.
func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Source = value.Value
		p.IgnoreCase = false
		return nil
	}
	type raw Pattern
	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}
	*p = Pattern(r)
	return nil
}

// -----------------------------------------------------------------------------
// Scenario
// -----------------------------------------------------------------------------

// Scenario pairs a natural-language prompt with the observable outcomes
// expected from the assistant's output.
//
// Description:
//
//	SetupFiles seed the virtual project the assistant starts from and may
//	be empty. ExpectedElements are CSS selectors that must match at least
//	one node in the final markup. ExpectedPatterns must each match the
//	logical concatenation of all final file contents. Timeout bounds the
//	assistant round trip; zero means the harness default applies.
//
// Thread Safety: Scenarios are immutable after registry construction.
type Scenario struct {
	ID               string            `yaml:"id" json:"id"`
	Name             string            `yaml:"name" json:"name"`
	Category         Category          `yaml:"category" json:"category"`
	Prompt           string            `yaml:"prompt" json:"prompt"`
	SetupFiles       map[string]string `yaml:"setupFiles" json:"setupFiles,omitempty"`
	ExpectedElements []string          `yaml:"expectedElements" json:"expectedElements,omitempty"`
	ExpectedPatterns []Pattern         `yaml:"expectedPatterns" json:"expectedPatterns,omitempty"`
	Timeout          time.Duration     `yaml:"-" json:"-"`

	// TimeoutMs mirrors Timeout for catalog files, in milliseconds.
	TimeoutMs int `yaml:"timeoutMs" json:"timeoutMs,omitempty"`
}

// Validate checks structural requirements: non-empty id, name and prompt,
// a known category, and compilable expected patterns.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidScenario)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: %s: missing name", ErrInvalidScenario, s.ID)
	}
	if s.Prompt == "" {
		return fmt.Errorf("%w: %s: missing prompt", ErrInvalidScenario, s.ID)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("%w: %s: unknown category %q", ErrInvalidScenario, s.ID, s.Category)
	}
	for _, p := range s.ExpectedPatterns {
		if _, err := p.Compile(); err != nil {
			return fmt.Errorf("%w: %s: pattern %q: %v", ErrInvalidScenario, s.ID, p.Source, err)
		}
	}
	if s.TimeoutMs < 0 {
		return fmt.Errorf("%w: %s: negative timeout", ErrInvalidScenario, s.ID)
	}
	return nil
}

// normalize resolves TimeoutMs into Timeout.
func (s *Scenario) normalize() {
	if s.Timeout == 0 && s.TimeoutMs > 0 {
		s.Timeout = time.Duration(s.TimeoutMs) * time.Millisecond
	}
}
