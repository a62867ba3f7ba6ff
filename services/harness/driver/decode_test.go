// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package driver

import (
	"errors"
	"testing"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

func TestDecodeResponse_FileBlocks(t *testing.T) {
	initial := fixture.New(map[string]string{
		"index.html": "<html></html>",
	})
	raw := "Here are the changes.\n\n" +
		"```file:index.html\n<html><body></body></html>\n```\n\n" +
		"```file:app.js\nlet count = 0;\n```\n"

	modified, created, err := DecodeResponse(raw, initial)
	if err != nil {
		t.Fatalf("DecodeResponse() error: %v", err)
	}
	if got := modified["index.html"]; got != "<html><body></body></html>" {
		t.Errorf("modified[index.html] = %q", got)
	}
	if got := created["app.js"]; got != "let count = 0;" {
		t.Errorf("created[app.js] = %q", got)
	}
	if len(modified) != 1 || len(created) != 1 {
		t.Errorf("modified=%d created=%d, want 1 and 1", len(modified), len(created))
	}
}

func TestDecodeResponse_InnerFencePreserved(t *testing.T) {
	initial := fixture.New(nil)
	body := "# Counter\n" +
		"\n" +
		"Usage:\n" +
		"\n" +
		"```js\n" +
		"increment();\n" +
		"```\n" +
		"\n" +
		"Done."
	raw := "```file:README.md\n" + body + "\n```\n"

	_, created, err := DecodeResponse(raw, initial)
	if err != nil {
		t.Fatalf("DecodeResponse() error: %v", err)
	}
	if got := created["README.md"]; got != body {
		t.Errorf("created[README.md] = %q, want full body %q", got, body)
	}
}

func TestDecodeResponse_UnterminatedBlock(t *testing.T) {
	initial := fixture.New(nil)
	raw := "```file:app.js\nlet count = 0;\n"
	if _, _, err := DecodeResponse(raw, initial); !errors.Is(err, ErrNoFiles) {
		t.Errorf("DecodeResponse() error = %v, want ErrNoFiles", err)
	}
}

func TestDecodeResponse_PathHandling(t *testing.T) {
	initial := fixture.New(map[string]string{"css/site.css": "body {}"})

	t.Run("relative prefix is normalized", func(t *testing.T) {
		modified, _, err := DecodeResponse("```file:./css/site.css\nbody { margin: 0; }\n```", initial)
		if err != nil {
			t.Fatalf("DecodeResponse() error: %v", err)
		}
		if _, ok := modified["css/site.css"]; !ok {
			t.Errorf("normalized path missing, got %v", modified)
		}
	})

	for _, bad := range []string{"/etc/passwd", "../outside.html", "a/../../b"} {
		t.Run(bad, func(t *testing.T) {
			_, _, err := DecodeResponse("```file:"+bad+"\nx\n```", initial)
			if !errors.Is(err, ErrBadPath) {
				t.Errorf("DecodeResponse() error = %v, want ErrBadPath", err)
			}
		})
	}
}

func TestDecodeResponse_NoFiles(t *testing.T) {
	initial := fixture.New(nil)
	for _, raw := range []string{
		"",
		"I could not complete the task.",
		"```go\nfunc main() {}\n```",
	} {
		if _, _, err := DecodeResponse(raw, initial); !errors.Is(err, ErrNoFiles) {
			t.Errorf("DecodeResponse(%q) error = %v, want ErrNoFiles", raw, err)
		}
	}
}

func TestDecodeResponse_DiffBlock(t *testing.T) {
	initial := fixture.New(map[string]string{
		"styles.css": "body {\n  color: blue;\n}",
	})
	raw := "```diff\n" +
		"--- a/styles.css\n" +
		"+++ b/styles.css\n" +
		"@@ -1,3 +1,3 @@\n" +
		" body {\n" +
		"-  color: blue;\n" +
		"+  color: red;\n" +
		" }\n" +
		"```\n"

	modified, created, err := DecodeResponse(raw, initial)
	if err != nil {
		t.Fatalf("DecodeResponse() error: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created = %v, want empty", created)
	}
	want := "body {\n  color: red;\n}"
	if got := modified["styles.css"]; got != want {
		t.Errorf("patched content = %q, want %q", got, want)
	}
}

func TestDecodeResponse_DiffCreatesFile(t *testing.T) {
	initial := fixture.New(map[string]string{"index.html": "<html></html>"})
	raw := "```diff\n" +
		"--- /dev/null\n" +
		"+++ b/app.js\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+let count = 0;\n" +
		"+console.log(count);\n" +
		"```\n"

	_, created, err := DecodeResponse(raw, initial)
	if err != nil {
		t.Fatalf("DecodeResponse() error: %v", err)
	}
	want := "let count = 0;\nconsole.log(count);"
	if got := created["app.js"]; got != want {
		t.Errorf("created[app.js] = %q, want %q", got, want)
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"index.html", "index.html", false},
		{"./index.html", "index.html", false},
		{" css/site.css ", "css/site.css", false},
		{"a/b/../c.js", "a/c.js", false},
		{"/abs.html", "", true},
		{"../up.html", "", true},
		{".", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := cleanPath(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrBadPath) {
				t.Errorf("cleanPath(%q) error = %v, want ErrBadPath", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("cleanPath(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}
