// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scenario

import (
	"errors"
	"testing"
	"time"
)

func validScenario(id string, cat Category) Scenario {
	return Scenario{
		ID:       id,
		Name:     "Scenario " + id,
		Category: cat,
		Prompt:   "Do the thing for " + id,
	}
}

func TestNewRegistry_IndexesAndPreservesOrder(t *testing.T) {
	scenarios := []Scenario{
		validScenario("a", CategoryUI),
		validScenario("b", CategoryStyle),
		validScenario("c", CategoryUI),
	}
	reg, err := NewRegistry(scenarios)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
	all := reg.ListAll()
	for i, want := range []string{"a", "b", "c"} {
		if all[i].ID != want {
			t.Errorf("ListAll()[%d].ID = %q, want %q", i, all[i].ID, want)
		}
	}

	ui := reg.ByCategory(CategoryUI)
	if len(ui) != 2 || ui[0].ID != "a" || ui[1].ID != "c" {
		t.Errorf("ByCategory(ui) = %+v, want [a c]", ui)
	}
	if got := reg.ByCategory(CategoryComplex); len(got) != 0 {
		t.Errorf("ByCategory(complex) = %+v, want empty", got)
	}

	if sc, ok := reg.ByID("b"); !ok || sc.Category != CategoryStyle {
		t.Errorf("ByID(b) = %+v, %v", sc, ok)
	}
	if _, ok := reg.ByID("missing"); ok {
		t.Error("ByID(missing) found a scenario")
	}
}

func TestNewRegistry_RejectsDuplicateID(t *testing.T) {
	_, err := NewRegistry([]Scenario{
		validScenario("dup", CategoryUI),
		validScenario("dup", CategoryStyle),
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("NewRegistry() error = %v, want ErrDuplicateID", err)
	}
}

func TestNewRegistry_RejectsInvalidScenario(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Scenario)
	}{
		{"missing id", func(s *Scenario) { s.ID = "" }},
		{"missing name", func(s *Scenario) { s.Name = "" }},
		{"missing prompt", func(s *Scenario) { s.Prompt = "" }},
		{"unknown category", func(s *Scenario) { s.Category = "webassembly" }},
		{"bad pattern", func(s *Scenario) {
			s.ExpectedPatterns = []Pattern{{Source: "(unclosed"}}
		}},
		{"negative timeout", func(s *Scenario) { s.TimeoutMs = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validScenario("x", CategoryUI)
			tt.mod(&sc)
			if _, err := NewRegistry([]Scenario{sc}); !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("NewRegistry() error = %v, want ErrInvalidScenario", err)
			}
		})
	}
}

func TestNewRegistry_NormalizesTimeout(t *testing.T) {
	sc := validScenario("t", CategoryJavaScript)
	sc.TimeoutMs = 45000
	reg, err := NewRegistry([]Scenario{sc})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	got, _ := reg.ByID("t")
	if got.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", got.Timeout)
	}
}

func TestNewRegistry_CopiesInput(t *testing.T) {
	sc := validScenario("copy", CategoryUI)
	sc.SetupFiles = map[string]string{"index.html": "<html></html>"}
	reg, err := NewRegistry([]Scenario{sc})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	sc.SetupFiles["index.html"] = "mutated"
	got, _ := reg.ByID("copy")
	if got.SetupFiles["index.html"] != "<html></html>" {
		t.Error("registry shares SetupFiles map with caller")
	}
}

func TestPattern_Compile(t *testing.T) {
	p := Pattern{Source: "linear-gradient", IgnoreCase: true}
	re, err := p.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !re.MatchString("background: LINEAR-GRADIENT(to right, red, blue)") {
		t.Error("ignoreCase pattern did not match upper-case text")
	}

	exact := Pattern{Source: "#FF8C42"}
	re, err = exact.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if re.MatchString("#ff8c42") {
		t.Error("case-sensitive pattern matched lower-case text")
	}
}
