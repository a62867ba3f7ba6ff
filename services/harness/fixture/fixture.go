// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package fixture provides the in-memory virtual file set a scenario
// execution operates on. A Fixture is owned by exactly one execution and
// treated as immutable: merging assistant output produces a new value.
package fixture

import (
	"sort"
	"strings"
)

// Fixture is a path to content mapping with a deterministic path order.
// The order is the original files sorted by path, followed by files the
// assistant created, again sorted. Pattern matching and reporting rely
// on this order being stable.
type Fixture struct {
	files map[string]string
	order []string
}

// New builds a fixture from a path to content map. The map is copied;
// a nil map yields an empty fixture.
func New(files map[string]string) *Fixture {
	f := &Fixture{files: make(map[string]string, len(files))}
	for path, content := range files {
		f.files[path] = content
		f.order = append(f.order, path)
	}
	sort.Strings(f.order)
	return f
}

// Len returns the number of files.
func (f *Fixture) Len() int {
	return len(f.files)
}

// Get returns a file's content and whether the path exists.
func (f *Fixture) Get(path string) (string, bool) {
	content, ok := f.files[path]
	return content, ok
}

// Has reports whether path exists in the fixture.
func (f *Fixture) Has(path string) bool {
	_, ok := f.files[path]
	return ok
}

// Paths returns the file paths in fixture order.
func (f *Fixture) Paths() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Files returns a copy of the path to content map.
func (f *Fixture) Files() map[string]string {
	out := make(map[string]string, len(f.files))
	for k, v := range f.files {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the fixture.
func (f *Fixture) Clone() *Fixture {
	c := &Fixture{
		files: make(map[string]string, len(f.files)),
		order: make([]string, len(f.order)),
	}
	for k, v := range f.files {
		c.files[k] = v
	}
	copy(c.order, f.order)
	return c
}

// Merge produces the final file set: the receiver's files overlaid with
// the assistant's modified and created files. The receiver is unchanged.
// Modified paths keep their position in the order; unseen paths are
// appended sorted.
func (f *Fixture) Merge(modified, created map[string]string) *Fixture {
	merged := f.Clone()
	var added []string
	apply := func(files map[string]string) {
		for path, content := range files {
			if _, exists := merged.files[path]; !exists {
				added = append(added, path)
			}
			merged.files[path] = content
		}
	}
	apply(modified)
	apply(created)
	sort.Strings(added)
	merged.order = append(merged.order, added...)
	return merged
}

// Concat joins all file contents in fixture order, separated by newlines.
// This is the logical concatenation pattern matching runs against.
func (f *Fixture) Concat() string {
	parts := make([]string, 0, len(f.order))
	for _, path := range f.order {
		parts = append(parts, f.files[path])
	}
	return strings.Join(parts, "\n")
}
