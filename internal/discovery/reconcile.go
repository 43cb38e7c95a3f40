package discovery

import "context"

// reconcileUnmatched implements component F: given a group that finished
// with unmatched patterns, it re-walks the group's base path with
// configuration disabled, using only the matcher for the first unmatched
// pattern, to distinguish "no files found" from "all files ignored".
//
// Per spec.md §4.F, remaining unmatched patterns are not reported — the
// contract is "first one wins" for error messages.
func reconcileUnmatched(ctx context.Context, e *unmatchedSearchPatternsError) error {
	firstRaw, firstNormalized := firstUnmatched(e)
	if firstRaw == "" {
		return nil
	}

	relative := relativePattern(e.basePath, firstNormalized)
	matcher, err := compileMatcher(relative)
	if err != nil {
		return err
	}

	cfg := groupWalkConfig{
		basePath: e.basePath,
		matchers: []*compiledMatcher{matcher},
		filter:   &configAwareFilter{}, // nil provider: configuration disabled for the second pass
	}

	files, err := walkGroup(ctx, cfg, make(map[string]struct{}))
	if err != nil {
		return err
	}

	if len(files) > 0 {
		return &AllFilesIgnoredError{Pattern: firstRaw}
	}
	return &NoFilesFoundError{Pattern: firstRaw, GlobEnabled: true}
}

// remainingUnmatchedRaw returns the raw pattern strings still unmatched in
// e, in the group's original pattern order — used when unmatched patterns
// are reported rather than turned into an error (spec.md §4.F, §7).
func remainingUnmatchedRaw(e *unmatchedSearchPatternsError) []string {
	var out []string
	for i, normalized := range e.normalizedPatterns {
		relative := relativePattern(e.basePath, normalized)
		if _, stillUnmatched := e.unmatched[relative]; stillUnmatched {
			out = append(out, e.rawPatterns[i])
		}
	}
	return out
}

// firstUnmatched returns the raw/normalized pair for the first unmatched
// pattern in the group's original pattern order.
func firstUnmatched(e *unmatchedSearchPatternsError) (raw, normalized string) {
	for i, normalized := range e.normalizedPatterns {
		relative := relativePattern(e.basePath, normalized)
		if _, stillUnmatched := e.unmatched[relative]; stillUnmatched {
			return e.rawPatterns[i], normalized
		}
	}
	return "", ""
}
