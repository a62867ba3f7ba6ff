// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

func TestNewChromeSandbox_RequiresExecutable(t *testing.T) {
	if _, err := NewChromeSandbox(""); err == nil {
		t.Error("NewChromeSandbox(\"\") succeeded, want error")
	}
}

func TestSnapshot_ConcurrentAppends(t *testing.T) {
	// The event listener appends while probes take their verdict; the
	// copy must read the slice header under the same lock the writer
	// holds, or the race detector flags it and late appends tear.
	var mu sync.Mutex
	var errs []string

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			mu.Lock()
			errs = append(errs, fmt.Sprintf("uncaught exception: e%d", i))
			mu.Unlock()
		}
	}()

	for i := 0; i < 100; i++ {
		out := snapshot(&mu, &errs)
		for j, msg := range out {
			if want := fmt.Sprintf("uncaught exception: e%d", j); msg != want {
				t.Fatalf("snapshot entry %d = %q, want %q (torn copy)", j, msg, want)
			}
		}
	}
	close(stop)
	wg.Wait()
}

func TestSnapshot_IndependentCopy(t *testing.T) {
	var mu sync.Mutex
	errs := []string{"console error: boom"}

	out := snapshot(&mu, &errs)
	mu.Lock()
	errs = append(errs, "uncaught exception: later")
	errs[0] = "mutated"
	mu.Unlock()

	if !reflect.DeepEqual(out, []string{"console error: boom"}) {
		t.Errorf("snapshot = %v, want copy unaffected by later writes", out)
	}
}

func TestInteractiveSelectors(t *testing.T) {
	in := []string{
		".hamburger",
		"#counter-btn",
		"button.submit",
		"a.nav-link",
		".theme-toggle",
		"[onclick]",
		"form",
		"input[type=email]",
		".hamburger:hover",
	}
	got := interactiveSelectors(in)
	want := []string{
		".hamburger",
		"#counter-btn",
		"button.submit",
		"a.nav-link",
		".theme-toggle",
		"[onclick]",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interactiveSelectors() = %v, want %v", got, want)
	}
}

func TestToMapFS(t *testing.T) {
	files := fixture.New(map[string]string{
		"index.html": navbarWithHamburger,
		"app.js":     "let x;",
	})
	mfs := toMapFS(files)
	if len(mfs) != files.Len() {
		t.Fatalf("toMapFS() has %d entries, want %d", len(mfs), files.Len())
	}
	data, err := mfs.ReadFile("index.html")
	if err != nil {
		t.Fatalf("ReadFile(index.html) error: %v", err)
	}
	if string(data) != navbarWithHamburger {
		t.Errorf("ReadFile(index.html) = %q", data)
	}
}
