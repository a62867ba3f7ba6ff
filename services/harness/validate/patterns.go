// Copyright (C) 2026 Driftwood Labs (oss@driftwoodlabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"fmt"

	"github.com/driftwoodlabs/webbench/services/harness/fixture"
	"github.com/driftwoodlabs/webbench/services/harness/scenario"
)

// checkPatterns matches each expected pattern against the logical
// concatenation of all final file contents, in fixture order. Unmatched
// patterns are reported by their literal source, in declaration order.
// An empty pattern list is vacuously satisfied.
func checkPatterns(patterns []scenario.Pattern, final *fixture.Fixture) []string {
	if len(patterns) == 0 {
		return nil
	}
	haystack := final.Concat()

	var missing []string
	for _, p := range patterns {
		re, err := p.Compile()
		if err != nil {
			// The registry validates patterns at load; this covers
			// scenarios constructed by hand.
			missing = append(missing, fmt.Sprintf("%s (invalid pattern: %v)", p.Source, err))
			continue
		}
		if !re.MatchString(haystack) {
			missing = append(missing, p.Source)
		}
	}
	return missing
}
