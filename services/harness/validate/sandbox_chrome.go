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
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"sync"
	"testing/fstest"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
)

// ChromeSandbox loads the final file set in headless Chrome, captures
// uncaught exceptions and console errors, and issues best-effort smoke
// clicks on interactive elements the scenario expects.
type ChromeSandbox struct {
	execPath string
	timeout  time.Duration
	settle   time.Duration
	logger   *slog.Logger
}

// ChromeOption configures a ChromeSandbox.
type ChromeOption func(*ChromeSandbox)

// WithChromeTimeout bounds one whole probe. Default 30s.
func WithChromeTimeout(d time.Duration) ChromeOption {
	return func(s *ChromeSandbox) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSettle sets how long the page runs after load before the verdict
// is taken. Default 1s.
func WithSettle(d time.Duration) ChromeOption {
	return func(s *ChromeSandbox) {
		if d > 0 {
			s.settle = d
		}
	}
}

// WithChromeLogger sets the sandbox logger.
func WithChromeLogger(logger *slog.Logger) ChromeOption {
	return func(s *ChromeSandbox) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// chromeCandidates are the executables probed, in order.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// FindChrome returns the path of an installed Chrome/Chromium binary,
// or "" when none is resolvable.
func FindChrome() string {
	for _, name := range chromeCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// NewChromeSandbox builds a sandbox around the given Chrome executable.
// Pass the result of FindChrome; an empty path is an error so callers
// fall back to the StaticSandbox explicitly.
func NewChromeSandbox(execPath string, opts ...ChromeOption) (*ChromeSandbox, error) {
	if execPath == "" {
		return nil, fmt.Errorf("no chrome executable")
	}
	s := &ChromeSandbox{
		execPath: execPath,
		timeout:  30 * time.Second,
		settle:   time.Second,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name implements Sandbox.
func (s *ChromeSandbox) Name() string { return "chrome" }

// Probe implements Sandbox.
func (s *ChromeSandbox) Probe(ctx context.Context, page string, files *fixture.Fixture, selectors []string) []string {
	if page == "" {
		return nil
	}

	server := httptest.NewServer(http.FileServer(http.FS(toMapFS(files))))
	defer server.Close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.ExecPath(s.execPath))...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var mu sync.Mutex
	var errs []string
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			mu.Lock()
			errs = append(errs, "uncaught exception: "+exceptionText(e))
			mu.Unlock()
		case *runtime.EventConsoleAPICalled:
			if e.Type != runtime.APITypeError {
				return
			}
			mu.Lock()
			errs = append(errs, "console error: "+consoleText(e))
			mu.Unlock()
		}
	})

	url := server.URL + "/" + page
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.settle),
	); err != nil {
		mu.Lock()
		errs = append(errs, fmt.Sprintf("page load failed: %v", err))
		mu.Unlock()
		return snapshot(&mu, &errs)
	}

	// Smoke interactions: click whatever interactive expected elements
	// exist. Click failures are not errors themselves; only the runtime
	// exceptions they provoke count.
	for _, sel := range interactiveSelectors(selectors) {
		clickCtx, cancelClick := context.WithTimeout(browserCtx, 2*time.Second)
		err := chromedp.Run(clickCtx,
			chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible),
		)
		cancelClick()
		if err != nil {
			s.logger.Debug("smoke click skipped",
				slog.String("selector", sel),
				slog.String("error", err.Error()),
			)
		}
	}
	_ = chromedp.Run(browserCtx, chromedp.Sleep(s.settle))

	return snapshot(&mu, &errs)
}

// snapshot copies the error list under the lock. The event listener
// keeps appending until the browser context is torn down, so the slice
// header must only be read while holding mu.
func snapshot(mu *sync.Mutex, errs *[]string) []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(*errs))
	copy(out, *errs)
	return out
}

// interactiveSelectors filters the expected selectors down to those
// plausibly clickable. Pseudo-class selectors are skipped.
func interactiveSelectors(selectors []string) []string {
	var out []string
	for _, sel := range selectors {
		if strings.Contains(sel, ":") {
			continue
		}
		lower := strings.ToLower(sel)
		switch {
		case strings.HasPrefix(lower, "button"),
			strings.HasPrefix(lower, "a"),
			strings.Contains(lower, "btn"),
			strings.Contains(lower, "button"),
			strings.Contains(lower, "toggle"),
			strings.Contains(lower, "hamburger"),
			strings.Contains(lower, "[onclick"):
			out = append(out, sel)
		}
	}
	return out
}

func exceptionText(e *runtime.EventExceptionThrown) string {
	d := e.ExceptionDetails
	if d == nil {
		return "unknown"
	}
	text := d.Text
	if d.Exception != nil && d.Exception.Description != "" {
		text = d.Exception.Description
	}
	return fmt.Sprintf("%s (line %d)", text, d.LineNumber)
}

func consoleText(e *runtime.EventConsoleAPICalled) string {
	var parts []string
	for _, arg := range e.Args {
		if len(arg.Value) > 0 {
			parts = append(parts, string(arg.Value))
		} else if arg.Description != "" {
			parts = append(parts, arg.Description)
		}
	}
	if len(parts) == 0 {
		return "console.error"
	}
	return strings.Join(parts, " ")
}

// toMapFS exposes the fixture as an fs.FS for the probe's file server.
func toMapFS(files *fixture.Fixture) fstest.MapFS {
	mfs := make(fstest.MapFS, files.Len())
	for _, p := range files.Paths() {
		content, _ := files.Get(p)
		mfs[p] = &fstest.MapFile{Data: []byte(content)}
	}
	return mfs
}
