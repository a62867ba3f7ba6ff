// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scenario

import "fmt"

// Registry is an immutable catalog of scenarios with derived indices by
// id and by category. Registration order is preserved and stable.
//
// Thread Safety: Safe for concurrent use; the registry never mutates
// after NewRegistry returns.
type Registry struct {
	ordered    []Scenario
	byID       map[string]int
	byCategory map[Category][]int
}

// NewRegistry builds a registry from the given scenarios.
//
// Description:
//
//	Scenarios are validated, copied, and indexed. Duplicate ids and
//	invalid scenarios are rejected. The input slice is not retained.
//
// Outputs:
//   - *Registry: The frozen registry. Never nil on success.
//   - error: ErrInvalidScenario or ErrDuplicateID on bad input.
func NewRegistry(scenarios []Scenario) (*Registry, error) {
	r := &Registry{
		ordered:    make([]Scenario, 0, len(scenarios)),
		byID:       make(map[string]int, len(scenarios)),
		byCategory: make(map[Category][]int),
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[s.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		s.normalize()
		s.SetupFiles = copyFiles(s.SetupFiles)
		s.ExpectedElements = append([]string(nil), s.ExpectedElements...)
		s.ExpectedPatterns = append([]Pattern(nil), s.ExpectedPatterns...)

		idx := len(r.ordered)
		r.ordered = append(r.ordered, s)
		r.byID[s.ID] = idx
		r.byCategory[s.Category] = append(r.byCategory[s.Category], idx)
	}
	return r, nil
}

// Len returns the number of registered scenarios.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// ListAll returns all scenarios in registration order.
func (r *Registry) ListAll() []Scenario {
	out := make([]Scenario, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByCategory returns the scenarios whose category equals c, in
// registration order. Unknown categories yield an empty slice.
func (r *Registry) ByCategory(c Category) []Scenario {
	idxs := r.byCategory[c]
	out := make([]Scenario, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, r.ordered[i])
	}
	return out
}

// ByID looks up a scenario by id.
//
// Outputs:
//   - Scenario: The scenario, zero-valued when not found.
//   - bool: Whether the id was registered.
func (r *Registry) ByID(id string) (Scenario, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Scenario{}, false
	}
	return r.ordered[i], true
}

func copyFiles(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
