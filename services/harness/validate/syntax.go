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
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// Per-file caps keep reports bounded on heavily malformed input.
const (
	maxSyntaxErrorsPerFile = 25
	maxParseDepth          = 512
)

// grammarFor maps a file extension to its tree-sitter grammar. Files of
// unknown type return nil and are skipped by the syntax check.
func grammarFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return html.GetLanguage()
	case ".css":
		return css.GetLanguage()
	case ".js", ".mjs":
		return javascript.GetLanguage()
	default:
		return nil
	}
}

// checkSyntax parses every file with a known grammar and collects
// descriptive messages for ERROR/MISSING nodes. Empty files parse clean.
func checkSyntax(ctx context.Context, final *fixture.Fixture) []string {
	var errs []string
	for _, path := range final.Paths() {
		lang := grammarFor(path)
		if lang == nil {
			continue
		}
		content, _ := final.Get(path)
		if strings.TrimSpace(content) == "" {
			continue
		}

		parser := sitter.NewParser()
		parser.SetLanguage(lang)
		tree, err := parser.ParseCtx(ctx, nil, []byte(content))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: parse failed: %v", path, err))
			continue
		}
		fileErrs := collectParseErrors(tree.RootNode(), []byte(content))
		tree.Close()
		for _, fe := range fileErrs {
			errs = append(errs, fmt.Sprintf("%s:%d:%d: %s", path, fe.line, fe.column, fe.message))
		}
	}
	return errs
}

type parseError struct {
	line    int
	column  int
	message string
}

// collectParseErrors walks the tree collecting ERROR and MISSING nodes
// with bounded depth and count.
func collectParseErrors(root *sitter.Node, content []byte) []parseError {
	var errs []parseError
	walkParseErrors(root, content, &errs, 0)
	return errs
}

func walkParseErrors(node *sitter.Node, content []byte, errs *[]parseError, depth int) {
	if depth > maxParseDepth || len(*errs) >= maxSyntaxErrorsPerFile {
		return
	}
	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()
		msg := "syntax error"
		if node.IsMissing() {
			msg = fmt.Sprintf("missing %s", node.Type())
		} else if ctx := errorContext(node, content); ctx != "" {
			msg = fmt.Sprintf("unexpected %q", ctx)
		}
		*errs = append(*errs, parseError{
			line:    int(point.Row) + 1,
			column:  int(point.Column),
			message: msg,
		})
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkParseErrors(node.Child(i), content, errs, depth+1)
	}
}

// errorContext extracts a short excerpt around an error node.
func errorContext(node *sitter.Node, content []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if end > uint32(len(content)) {
		end = uint32(len(content))
	}
	if end <= start {
		return ""
	}
	excerpt := string(content[start:end])
	if len(excerpt) > 40 {
		excerpt = excerpt[:40] + "..."
	}
	return excerpt
}
