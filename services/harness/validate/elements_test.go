// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

const navbarWithHamburger = `<!DOCTYPE html>
<html><body>
<nav class="navbar">
  <button class="hamburger" aria-label="Menu"><span></span></button>
  <ul class="nav-links"><li><a href="#home">Home</a></li></ul>
</nav>
</body></html>`

func TestCheckElements_Present(t *testing.T) {
	final := fixture.New(map[string]string{"index.html": navbarWithHamburger})
	missing := checkElements([]string{".hamburger", "nav.navbar", "button[aria-label]"}, final)
	if len(missing) != 0 {
		t.Errorf("checkElements() = %v, want none missing", missing)
	}
}

func TestCheckElements_Missing(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": "<html><body><nav class=\"navbar\"></nav></body></html>",
	})
	missing := checkElements([]string{".hamburger", ".navbar", "#counter-btn"}, final)
	want := []string{".hamburger", "#counter-btn"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("checkElements() = %v, want %v", missing, want)
	}
}

func TestCheckElements_AnyDocumentSatisfies(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": "<html><body><p>nothing here</p></body></html>",
		"about.html": navbarWithHamburger,
	})
	if missing := checkElements([]string{".hamburger"}, final); len(missing) != 0 {
		t.Errorf("checkElements() = %v, selector in second document not found", missing)
	}
}

func TestCheckElements_InvalidSelector(t *testing.T) {
	final := fixture.New(map[string]string{"index.html": navbarWithHamburger})
	missing := checkElements([]string{"[[["}, final)
	if len(missing) != 1 || !strings.Contains(missing[0], "invalid selector") {
		t.Errorf("checkElements() = %v, want one invalid-selector entry", missing)
	}
}

func TestCheckElements_EmptyListVacuous(t *testing.T) {
	final := fixture.New(nil)
	if missing := checkElements(nil, final); missing != nil {
		t.Errorf("checkElements(nil) = %v, want nil", missing)
	}
}

func TestCheckElements_NoMarkupFiles(t *testing.T) {
	final := fixture.New(map[string]string{"app.js": "let x;"})
	missing := checkElements([]string{".hamburger"}, final)
	if !reflect.DeepEqual(missing, []string{".hamburger"}) {
		t.Errorf("checkElements() = %v, want the selector reported missing", missing)
	}
}
