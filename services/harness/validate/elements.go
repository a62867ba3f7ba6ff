// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// isMarkup reports whether path holds HTML.
func isMarkup(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

// markupDocs parses every markup file in the final set. Files that fail
// to build a document are skipped here; the syntax check reports them.
func markupDocs(final *fixture.Fixture) []*goquery.Document {
	var docs []*goquery.Document
	for _, path := range final.Paths() {
		if !isMarkup(path) {
			continue
		}
		content, _ := final.Get(path)
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// checkElements searches the final markup for each expected selector.
// A selector passes when any document has at least one matching node.
// An empty selector list is vacuously satisfied.
func checkElements(selectors []string, final *fixture.Fixture) []string {
	if len(selectors) == 0 {
		return nil
	}
	docs := markupDocs(final)

	var missing []string
	for _, sel := range selectors {
		matcher, err := cascadia.Compile(sel)
		if err != nil {
			missing = append(missing, fmt.Sprintf("%s (invalid selector: %v)", sel, err))
			continue
		}
		found := false
		for _, doc := range docs {
			if doc.FindMatcher(matcher).Length() > 0 {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, sel)
		}
	}
	return missing
}
