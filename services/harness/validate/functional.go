// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// Sandbox probes the functional behavior of a final file set.
//
// Description:
//
//	Probe loads the entry page and returns descriptions of uncaught
//	runtime errors or failed smoke interactions. selectors carries the
//	scenario's expected elements so implementations can derive the
//	interactions to attempt. An empty return means the page behaved.
//
//	Implementations honor the minimum contract from the harness spec's
//	degraded mode: when richer probing is impossible, "loads without
//	uncaught errors" is enough.
type Sandbox interface {
	// Name identifies the sandbox (e.g. "chrome", "static").
	Name() string

	// Probe loads page from files and exercises it. page is a path into
	// files; callers pass "" when the set has no markup, and
	// implementations must then return nil.
	Probe(ctx context.Context, page string, files *fixture.Fixture, selectors []string) []string
}

// EntryPage picks the page the sandbox loads: index.html when present,
// otherwise the first markup file in fixture order, otherwise "".
func EntryPage(final *fixture.Fixture) string {
	if final.Has("index.html") {
		return "index.html"
	}
	for _, p := range final.Paths() {
		if isMarkup(p) {
			return p
		}
	}
	return ""
}

// -----------------------------------------------------------------------------
// Static sandbox
// -----------------------------------------------------------------------------

// StaticSandbox approximates "the page loads without uncaught errors"
// without a browser: every local reference must resolve inside the file
// set, and every inline or linked script must parse. It is the degraded
// mode used when no Chrome binary is available, and the default in tests.
type StaticSandbox struct{}

// Name implements Sandbox.
func (StaticSandbox) Name() string { return "static" }

// Probe implements Sandbox.
func (StaticSandbox) Probe(ctx context.Context, page string, files *fixture.Fixture, _ []string) []string {
	if page == "" {
		return nil
	}
	var errs []string
	for _, p := range files.Paths() {
		if !isMarkup(p) {
			continue
		}
		content, _ := files.Get(p)
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: cannot build document: %v", p, err))
			continue
		}
		errs = append(errs, checkReferences(p, doc, files)...)
		errs = append(errs, checkScripts(ctx, p, doc, files)...)
	}
	return errs
}

// checkReferences verifies that local script/stylesheet/image references
// point at files present in the final set.
func checkReferences(pagePath string, doc *goquery.Document, files *fixture.Fixture) []string {
	var errs []string
	report := func(kind, ref string) {
		resolved, ok := resolveRef(pagePath, ref)
		if !ok {
			return
		}
		if !files.Has(resolved) {
			errs = append(errs, fmt.Sprintf("%s: %s references missing file %q", pagePath, kind, ref))
		}
	}
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		report("script", src)
	})
	doc.Find("link[rel='stylesheet'][href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		report("stylesheet", href)
	})
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		report("image", src)
	})
	return errs
}

// checkScripts parses inline scripts; linked scripts are covered by the
// syntax check, but a parse failure here is a functional error too since
// the browser would throw on load.
func checkScripts(ctx context.Context, pagePath string, doc *goquery.Document, files *fixture.Fixture) []string {
	var errs []string
	doc.Find("script:not([src])").Each(func(i int, s *goquery.Selection) {
		code := s.Text()
		if strings.TrimSpace(code) == "" {
			return
		}
		if msg := parseScript(ctx, code); msg != "" {
			errs = append(errs, fmt.Sprintf("%s: inline script %d: %s", pagePath, i+1, msg))
		}
	})
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		resolved, ok := resolveRef(pagePath, src)
		if !ok {
			return
		}
		code, exists := files.Get(resolved)
		if !exists || strings.TrimSpace(code) == "" {
			return
		}
		if msg := parseScript(ctx, code); msg != "" {
			errs = append(errs, fmt.Sprintf("%s: script %s: %s", pagePath, resolved, msg))
		}
	})
	return errs
}

// parseScript returns a description of the first parse error, or "".
func parseScript(ctx context.Context, code string) string {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return fmt.Sprintf("parse failed: %v", err)
	}
	defer tree.Close()
	parseErrs := collectParseErrors(tree.RootNode(), []byte(code))
	if len(parseErrs) == 0 {
		return ""
	}
	first := parseErrs[0]
	return fmt.Sprintf("line %d: %s", first.line, first.message)
}

// resolveRef resolves a reference relative to the page. External and
// fragment references return ok=false and are not checked.
func resolveRef(pagePath, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" ||
		strings.Contains(ref, "://") ||
		strings.HasPrefix(ref, "//") ||
		strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "mailto:") {
		return "", false
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if ref == "" {
		return "", false
	}
	if strings.HasPrefix(ref, "/") {
		return strings.TrimPrefix(path.Clean(ref), "/"), true
	}
	return path.Join(path.Dir(pagePath), ref), true
}
