package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// globMetaChars are the characters that, in a pattern-forming position,
// make a pattern a glob rather than a literal path (spec.md §4.A).
const globMetaChars = "*?[{!("

// classifyPattern implements component A: given a raw pattern and an
// absolute cwd, decide whether it names a literal file, a literal
// directory, a glob, or nothing that exists (missing).
func classifyPattern(raw string, cwd string, globInputPaths bool) classifiedPattern {
	resolved := raw
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(cwd, resolved)
	}
	resolved = filepath.Clean(resolved)

	if info, err := os.Stat(resolved); err == nil {
		if info.IsDir() {
			return classifiedPattern{kind: kindLiteralDirectory, raw: raw, absPath: resolved}
		}
		return classifiedPattern{kind: kindLiteralFile, raw: raw, absPath: resolved}
	}

	normalized := toSlash(raw)
	if globInputPaths && isGlobPattern(normalized) {
		absNormalized := normalized
		if !filepath.IsAbs(raw) {
			absNormalized = toSlash(filepath.Join(cwd, raw))
		}
		return classifiedPattern{kind: kindGlob, raw: raw, normalized: absNormalized}
	}

	return classifiedPattern{kind: kindMissing, raw: raw}
}

// isGlobPattern reports whether a normalized, forward-slash pattern
// contains an unescaped glob metacharacter in a pattern-forming position,
// per the shell-style glob conventions in spec.md §6 (** recursive, *
// segment wildcard, ? single char, [...] class, {a,b} alternation, leading
// ! segment negation).
func isGlobPattern(normalized string) bool {
	escaped := false
	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if strings.IndexByte(globMetaChars, c) != -1 {
			// A '!' only negates when it starts a path segment; elsewhere
			// it is a literal character with no glob meaning of its own,
			// but we still treat it conservatively as glob-forming since a
			// literal '!' in a path is vanishingly rare and stat() already
			// took precedence above for anything that actually exists.
			return true
		}
	}
	return false
}

// staticPrefix returns the longest leading path of a normalized,
// forward-slash, absolute pattern that is free of glob metacharacters
// (spec.md §4.B). The result has no trailing slash (except for the root).
func staticPrefix(normalized string) string {
	segments := strings.Split(normalized, "/")
	var base []string
	for _, seg := range segments {
		if strings.ContainsAny(seg, globMetaChars) {
			break
		}
		base = append(base, seg)
	}
	prefix := strings.Join(base, "/")
	if prefix == "" {
		prefix = "/"
	}
	return prefix
}
