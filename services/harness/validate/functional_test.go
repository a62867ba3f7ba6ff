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

func TestEntryPage(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			"prefers index.html",
			map[string]string{"about.html": "x", "index.html": "y"},
			"index.html",
		},
		{
			"falls back to first markup in order",
			map[string]string{"zebra.html": "x", "about.html": "y", "app.js": "z"},
			"about.html",
		},
		{
			"no markup",
			map[string]string{"app.js": "let x;"},
			"",
		},
		{
			"empty set",
			nil,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryPage(fixture.New(tt.files)); got != tt.want {
				t.Errorf("EntryPage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStaticSandbox_CleanPage(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": `<html><head>
<link rel="stylesheet" href="styles.css">
</head><body>
<img src="logo.png">
<script src="app.js"></script>
<script>document.querySelector('body');</script>
</body></html>`,
		"styles.css": "body {}",
		"logo.png":   "binary",
		"app.js":     "function main() { return true; }",
	})
	errs := StaticSandbox{}.Probe(context.Background(), "index.html", final, nil)
	if len(errs) != 0 {
		t.Errorf("Probe() = %v, want none", errs)
	}
}

func TestStaticSandbox_MissingReference(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": `<html><body><script src="missing.js"></script></body></html>`,
	})
	errs := StaticSandbox{}.Probe(context.Background(), "index.html", final, nil)
	if len(errs) != 1 || !strings.Contains(errs[0], "missing.js") {
		t.Errorf("Probe() = %v, want one missing-file entry", errs)
	}
}

func TestStaticSandbox_SkipsExternalReferences(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": `<html><head>
<link rel="stylesheet" href="https://cdn.example.com/site.css">
<link rel="stylesheet" href="//cdn.example.com/more.css">
</head><body>
<img src="data:image/png;base64,AAAA">
<a href="#top">top</a>
</body></html>`,
	})
	errs := StaticSandbox{}.Probe(context.Background(), "index.html", final, nil)
	if len(errs) != 0 {
		t.Errorf("Probe() = %v, external references must not be checked", errs)
	}
}

func TestStaticSandbox_BrokenInlineScript(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": `<html><body><script>function ) { nope</script></body></html>`,
	})
	errs := StaticSandbox{}.Probe(context.Background(), "index.html", final, nil)
	if len(errs) == 0 {
		t.Fatal("Probe() found no errors in broken inline script")
	}
	if !strings.Contains(errs[0], "inline script") {
		t.Errorf("Probe() = %v, want inline script entry", errs)
	}
}

func TestStaticSandbox_BrokenLinkedScript(t *testing.T) {
	final := fixture.New(map[string]string{
		"index.html": `<html><body><script src="app.js"></script></body></html>`,
		"app.js":     "function ) { nope",
	})
	errs := StaticSandbox{}.Probe(context.Background(), "index.html", final, nil)
	found := false
	for _, e := range errs {
		if strings.Contains(e, "app.js") {
			found = true
		}
	}
	if !found {
		t.Errorf("Probe() = %v, want an app.js entry", errs)
	}
}

func TestStaticSandbox_NoPage(t *testing.T) {
	final := fixture.New(map[string]string{"app.js": "function ) {"})
	if errs := (StaticSandbox{}).Probe(context.Background(), "", final, nil); errs != nil {
		t.Errorf("Probe(no page) = %v, want nil", errs)
	}
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		page   string
		ref    string
		want   string
		wantOK bool
	}{
		{"index.html", "app.js", "app.js", true},
		{"pages/about.html", "app.js", "pages/app.js", true},
		{"pages/about.html", "../app.js", "app.js", true},
		{"index.html", "/assets/site.css", "assets/site.css", true},
		{"index.html", "app.js?v=2", "app.js", true},
		{"index.html", "app.js#frag", "app.js", true},
		{"index.html", "https://cdn.example.com/x.js", "", false},
		{"index.html", "//cdn.example.com/x.js", "", false},
		{"index.html", "#top", "", false},
		{"index.html", "data:image/png;base64,AA", "", false},
		{"index.html", "mailto:x@example.com", "", false},
		{"index.html", "", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveRef(tt.page, tt.ref)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("resolveRef(%q, %q) = %q, %v; want %q, %v",
				tt.page, tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}
