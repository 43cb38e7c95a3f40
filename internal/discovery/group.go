package discovery

import "path/filepath"

// groupResult is what component B produces from a set of classified
// patterns: literal files destined straight for the results accumulator,
// search groups keyed by base path, and the patterns that classified as
// missing.
type groupResult struct {
	literalFiles    []string
	groups          map[string]*searchGroup // keyed by absolute base path
	groupOrder      []string                // first-seen order, for deterministic iteration
	missingPatterns []string
}

// buildGroups implements component B: it buckets classified patterns into
// search groups by static prefix, seeding the map with an empty cwd group
// as the spec requires.
func buildGroups(classified []classifiedPattern, cwd string) *groupResult {
	result := &groupResult{
		groups: make(map[string]*searchGroup),
	}

	// Seed the map with an empty entry keyed by cwd so that globs whose
	// base is cwd land in the same group (spec.md §4.B).
	result.groups[cwd] = &searchGroup{basePath: cwd}
	result.groupOrder = append(result.groupOrder, cwd)

	ensureGroup := func(base string) *searchGroup {
		g, ok := result.groups[base]
		if !ok {
			g = &searchGroup{basePath: base}
			result.groups[base] = g
			result.groupOrder = append(result.groupOrder, base)
		}
		return g
	}

	for _, cp := range classified {
		switch cp.kind {
		case kindLiteralFile:
			result.literalFiles = append(result.literalFiles, cp.absPath)

		case kindLiteralDirectory:
			// D-1: the user explicitly chose this directory, so no
			// ancestor's configuration must block descent into it. We
			// encode that by keying a group directly on this directory
			// with relative pattern "**" and flagging it as a literal-dir
			// root so the walker exempts it from the D-3 ignore check.
			g := ensureGroup(cp.absPath)
			g.isLiteralDirRoot = true
			g.add(toSlash(filepath.Join(cp.absPath, "**")), cp.raw)

		case kindGlob:
			base := staticPrefix(cp.normalized)
			nativeBase := filepath.FromSlash(base)
			if !filepath.IsAbs(nativeBase) {
				nativeBase = filepath.Join(cwd, nativeBase)
			}
			nativeBase = filepath.Clean(nativeBase)
			g := ensureGroup(nativeBase)
			g.add(cp.normalized, cp.raw)

		case kindMissing:
			result.missingPatterns = append(result.missingPatterns, cp.raw)
		}
	}

	// Filter out groups whose pattern list is empty (the pre-seeded cwd
	// group may end up empty) per spec.md §4.G step 3.
	for base, g := range result.groups {
		if len(g.normalizedPatterns) == 0 {
			delete(result.groups, base)
		}
	}
	filteredOrder := result.groupOrder[:0]
	for _, base := range result.groupOrder {
		if _, ok := result.groups[base]; ok {
			filteredOrder = append(filteredOrder, base)
		}
	}
	result.groupOrder = filteredOrder

	return result
}
