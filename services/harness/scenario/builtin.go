// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scenario

const navbarSetup = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Landing</title>
  <link rel="stylesheet" href="styles.css">
</head>
<body>
  <nav class="navbar">
    <a class="brand" href="/">Acme</a>
    <ul class="nav-links">
      <li><a href="#features">Features</a></li>
      <li><a href="#pricing">Pricing</a></li>
      <li><a href="#contact">Contact</a></li>
    </ul>
  </nav>
  <main>
    <h1>Welcome</h1>
  </main>
  <script src="app.js"></script>
</body>
</html>
`

const navbarStyles = `.navbar {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 0 1rem;
}
.nav-links {
  display: flex;
  gap: 1rem;
  list-style: none;
}
`

// Builtin returns the default scenario catalog shipped with the harness.
// One scenario per category plus a heavier complex case; ids are stable
// so reports stay diffable across runs.
func Builtin() *Registry {
	r, err := NewRegistry([]Scenario{
		{
			ID:       "ui-hamburger-menu",
			Name:     "Responsive hamburger menu",
			Category: CategoryUI,
			Prompt: "Add a hamburger menu button to the navbar that toggles the " +
				"nav links on small screens. Use a .hamburger class for the button.",
			SetupFiles: map[string]string{
				"index.html": navbarSetup,
				"styles.css": navbarStyles,
				"app.js":     "",
			},
			ExpectedElements: []string{".hamburger"},
			ExpectedPatterns: []Pattern{
				{Source: `hamburger`, IgnoreCase: true},
				{Source: `addEventListener|onclick`},
			},
		},
		{
			ID:       "style-sunset-gradient",
			Name:     "Sunset gradient hero",
			Category: CategoryStyle,
			Prompt: "Give the page header a warm sunset look: a linear gradient " +
				"from #ff8c42 to #e65100.",
			SetupFiles: map[string]string{
				"index.html": navbarSetup,
				"styles.css": navbarStyles,
			},
			ExpectedPatterns: []Pattern{
				{Source: `linear-gradient`, IgnoreCase: true},
				{Source: `#ff8c42`, IgnoreCase: true},
				{Source: `#e65100`, IgnoreCase: true},
			},
		},
		{
			ID:       "js-click-counter",
			Name:     "Click counter",
			Category: CategoryJavaScript,
			Prompt: "Add a button with id counter-btn that increments a visible " +
				"counter each time it is clicked.",
			SetupFiles: map[string]string{
				"index.html": navbarSetup,
				"app.js":     "",
			},
			ExpectedElements: []string{"#counter-btn"},
			ExpectedPatterns: []Pattern{
				{Source: `addEventListener\s*\(\s*['"]click['"]`},
			},
		},
		{
			ID:       "complex-contact-form",
			Name:     "Validated contact form",
			Category: CategoryComplex,
			Prompt: "Build a contact form with name, email and message fields, " +
				"client-side validation that flags an invalid email, and a styled " +
				"error state using an .error class.",
			SetupFiles: map[string]string{
				"index.html": navbarSetup,
				"styles.css": navbarStyles,
				"app.js":     "",
			},
			ExpectedElements: []string{"form", "input[type=email]", "textarea"},
			ExpectedPatterns: []Pattern{
				{Source: `\.error`},
				{Source: `preventDefault`},
			},
		},
		{
			ID:       "complex-theme-toggle",
			Name:     "Dark mode toggle",
			Category: CategoryComplex,
			Prompt: "Add a dark mode toggle button that switches a data-theme " +
				"attribute on the html element and persists the choice in " +
				"localStorage.",
			SetupFiles: map[string]string{
				"index.html": navbarSetup,
				"styles.css": navbarStyles,
				"app.js":     "",
			},
			ExpectedPatterns: []Pattern{
				{Source: `data-theme`},
				{Source: `localStorage`},
			},
		},
	})
	if err != nil {
		// The builtin catalog is compile-time data; a failure here is a bug.
		panic(err)
	}
	return r
}
