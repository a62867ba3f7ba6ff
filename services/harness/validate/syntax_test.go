// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"context"
	"strings"
	"testing"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

func TestGrammarFor(t *testing.T) {
	for _, path := range []string{"index.html", "page.HTM", "styles.css", "app.js", "mod.mjs"} {
		if grammarFor(path) == nil {
			t.Errorf("grammarFor(%q) = nil, want a grammar", path)
		}
	}
	for _, path := range []string{"notes.txt", "data.json", "README.md", "noext"} {
		if grammarFor(path) != nil {
			t.Errorf("grammarFor(%q) != nil, want skip", path)
		}
	}
}

func TestCheckSyntax_CleanFiles(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": "<!DOCTYPE html>\n<html><head><title>t</title></head><body><p>hi</p></body></html>",
		"styles.css": "body { margin: 0; }\n.nav { display: flex; }",
		"app.js":     "function inc() { return 1 + 1; }\ninc();",
	})
	if errs := checkSyntax(context.Background(), final); len(errs) != 0 {
		t.Errorf("checkSyntax() = %v, want none", errs)
	}
}

func TestCheckSyntax_BrokenScript(t *testing.T) {
	final := fixture.New(map[string]string{
		"app.js": "function ) { let = ;",
	})
	errs := checkSyntax(context.Background(), final)
	if len(errs) == 0 {
		t.Fatal("checkSyntax() found no errors in broken script")
	}
	for _, e := range errs {
		if !strings.HasPrefix(e, "app.js:") {
			t.Errorf("error %q missing path:line:column prefix", e)
		}
	}
}

func TestCheckSyntax_SkipsUnknownAndEmpty(t *testing.T) {
	final := fixture.New(map[string]string{
		"notes.txt": "function ) { this is not code but also not checked",
		"empty.js":  "",
		"blank.css": "   \n\t\n",
	})
	if errs := checkSyntax(context.Background(), final); len(errs) != 0 {
		t.Errorf("checkSyntax() = %v, want none", errs)
	}
}

func TestCheckSyntax_BoundsErrorCount(t *testing.T) {
	// Many broken statements in one file must not exceed the per-file cap.
	var b strings.Builder
	for range [100]struct{}{} {
		b.WriteString("function ) {\n")
	}
	final := fixture.New(map[string]string{"app.js": b.String()})
	errs := checkSyntax(context.Background(), final)
	if len(errs) == 0 {
		t.Fatal("checkSyntax() found no errors")
	}
	if len(errs) > maxSyntaxErrorsPerFile {
		t.Errorf("checkSyntax() reported %d errors, cap is %d", len(errs), maxSyntaxErrorsPerFile)
	}
}
