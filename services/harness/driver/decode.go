// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package driver

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrNoFiles indicates the assistant response contained no usable
	// file blocks or diffs.
	ErrNoFiles = errors.New("response contains no file content")

	// ErrBadPath indicates a file block named a path outside the project.
	ErrBadPath = errors.New("path escapes project root")
)

// DecodeResponse extracts the file set changes from a raw assistant
// response.
//
// Description:
//
//	The response carries ```file:<path> and ```diff fenced blocks. File
//	blocks replace a path's content wholesale. Diff blocks are parsed
//	with go-diff and applied hunk by hunk against the fixture. Paths
//	are cleaned and must stay inside the project root. Each returned
//	path lands in modified when it exists in the fixture and in created
//	otherwise.
//
// Outputs:
//   - modified: path to full new content, for paths present in initial.
//   - created: path to content, for paths absent from initial.
//   - error: ErrNoFiles, ErrBadPath, or a diff parse/apply failure.
func DecodeResponse(raw string, initial *fixture.Fixture) (modified, created map[string]string, err error) {
	modified = make(map[string]string)
	created = make(map[string]string)

	for _, b := range extractBlocks(raw) {
		if b.header == "diff" {
			if err := applyDiffBlock(b.body, initial, modified, created); err != nil {
				return nil, nil, err
			}
			continue
		}
		p, err := cleanPath(strings.TrimPrefix(b.header, "file:"))
		if err != nil {
			return nil, nil, err
		}
		record(p, b.body, initial, modified, created)
	}

	if len(modified) == 0 && len(created) == 0 {
		return nil, nil, ErrNoFiles
	}
	return modified, created, nil
}

type fencedBlock struct {
	header string // "file:<path>" or "diff"
	body   string
}

// extractBlocks scans the response line by line for ```file:<path> and
// ```diff blocks. A tagged inner fence (e.g. a Markdown file carrying
// its own ```js block) opens a nested fence that the next bare ```
// closes, so inner code blocks do not truncate the outer file body.
// A bare inner fence pair cannot be distinguished from the closing
// fence and ends the block early. Unterminated blocks are dropped.
func extractBlocks(raw string) []fencedBlock {
	lines := strings.Split(raw, "\n")
	var blocks []fencedBlock
	for i := 0; i < len(lines); i++ {
		header, ok := blockHeader(lines[i])
		if !ok {
			continue
		}
		depth := 0
		closed := false
		var body []string
		j := i + 1
		for ; j < len(lines); j++ {
			trimmed := strings.TrimRight(lines[j], " \t")
			if info, isFence := strings.CutPrefix(trimmed, "```"); isFence {
				if info == "" {
					if depth == 0 {
						closed = true
						break
					}
					depth--
				} else {
					depth++
				}
			}
			body = append(body, lines[j])
		}
		if closed {
			blocks = append(blocks, fencedBlock{header: header, body: strings.Join(body, "\n")})
		}
		i = j
	}
	return blocks
}

// blockHeader recognizes the two accepted fence headers. Paths must be
// a single token: no spaces, no backticks.
func blockHeader(line string) (string, bool) {
	trimmed := strings.TrimRight(line, " \t")
	if p, ok := strings.CutPrefix(trimmed, "```file:"); ok {
		if p == "" || strings.ContainsAny(p, " \t`") {
			return "", false
		}
		return "file:" + p, true
	}
	if trimmed == "```diff" {
		return "diff", true
	}
	return "", false
}

func record(p, content string, initial *fixture.Fixture, modified, created map[string]string) {
	if initial.Has(p) {
		modified[p] = content
		return
	}
	created[p] = content
}

// cleanPath normalizes an assistant-supplied path and rejects absolute
// paths or traversal outside the project root.
func cleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "./")
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == "" ||
		strings.HasPrefix(cleaned, "/") || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadPath, p)
	}
	return cleaned, nil
}

// applyDiffBlock parses a unified diff and applies each file diff
// in memory against the fixture.
func applyDiffBlock(body string, initial *fixture.Fixture, modified, created map[string]string) error {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(body)).ReadAllFiles()
	if err != nil {
		return fmt.Errorf("parsing diff block: %w", err)
	}
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "/dev/null" {
			// Deletions are ignored: the final file set is a union.
			continue
		}
		p, err := cleanPath(stripDiffPrefix(name))
		if err != nil {
			return err
		}
		original, _ := initial.Get(p)
		patched := applyHunks(original, fd)
		record(p, patched, initial, modified, created)
	}
	return nil
}

// stripDiffPrefix removes the conventional a/ b/ prefixes from diff names.
func stripDiffPrefix(name string) string {
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}

// applyHunks applies a file diff's hunks to the original content.
// New files are reconstructed from added lines alone.
func applyHunks(original string, fd *diff.FileDiff) string {
	if fd.OrigName == "/dev/null" || original == "" {
		var lines []string
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
					lines = append(lines, strings.TrimPrefix(line, "+"))
				}
			}
		}
		return strings.Join(lines, "\n")
	}

	origLines := strings.Split(original, "\n")
	newLines := make([]string, 0, len(origLines))

	origIdx := 0
	for _, hunk := range fd.Hunks {
		hunkStart := int(hunk.OrigStartLine) - 1
		for origIdx < hunkStart && origIdx < len(origLines) {
			newLines = append(newLines, origLines[origIdx])
			origIdx++
		}
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
				newLines = append(newLines, strings.TrimPrefix(line, "+"))
			case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
				origIdx++
			case strings.HasPrefix(line, " ") || line == "":
				if origIdx < len(origLines) {
					newLines = append(newLines, origLines[origIdx])
					origIdx++
				}
			}
		}
	}
	for origIdx < len(origLines) {
		newLines = append(newLines, origLines[origIdx])
		origIdx++
	}
	return strings.Join(newLines, "\n")
}
