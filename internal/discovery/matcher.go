package discovery

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// compiledMatcher is a reusable, precompiled representation of one
// relative glob pattern (component C). Patterns are compiled once per
// group and never re-parsed during the walk.
type compiledMatcher struct {
	relative string   // relative pattern, forward-slash, relative to the group's base
	segments []string // relative split on "/", used for prefix matching
}

// compileMatcher compiles a pattern expressed relative to a group's base
// path. Dot-file matching is enabled implicitly: doublestar, unlike a
// shell glob, does not special-case a leading '.', so explicit patterns
// already reach hidden files without extra configuration (spec.md §4.C).
func compileMatcher(relative string) (*compiledMatcher, error) {
	if !doublestar.ValidatePattern(relative) {
		return nil, fmt.Errorf("invalid glob pattern %q", relative)
	}
	return &compiledMatcher{
		relative: relative,
		segments: strings.Split(relative, "/"),
	}, nil
}

// matches reports a full match of a relative path against the compiled
// pattern.
func (m *compiledMatcher) matches(relPath string) bool {
	ok, err := doublestar.Match(m.relative, relPath)
	return err == nil && ok
}

// matchesPrefix reports whether relDir, a relative directory path, could
// be an ancestor of some path the pattern matches. This is used by the
// walker (component D) as a directory-descent filter.
//
// doublestar exposes no partial/prefix-match primitive, so this is a
// hand-rolled segment-wise walk: a "**" segment always yields a prefix
// match because it can absorb any number of further path segments.
// Otherwise the directory is pruned when one of its segments fails to
// match the pattern segment at the same depth, or when it has more
// segments than the pattern; segments beyond the directory's depth are
// never compared.
func (m *compiledMatcher) matchesPrefix(relDir string) bool {
	if relDir == "" || relDir == "." {
		return true
	}
	dirSegments := strings.Split(relDir, "/")
	for i, dirSeg := range dirSegments {
		if i >= len(m.segments) {
			return false
		}
		patSeg := m.segments[i]
		if patSeg == "**" {
			return true
		}
		ok, err := doublestar.Match(patSeg, dirSeg)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// CompiledPattern is an exported handle onto a single compiled glob
// pattern, built the same way the engine compiles user patterns. It lets
// other packages (notably a ConfigProvider implementation compiling
// ignore rules) reuse component C's matching semantics instead of
// hand-rolling their own.
type CompiledPattern struct {
	m *compiledMatcher
}

// CompilePattern compiles a relative glob pattern for reuse outside the
// engine.
func CompilePattern(relative string) (*CompiledPattern, error) {
	m, err := compileMatcher(relative)
	if err != nil {
		return nil, err
	}
	return &CompiledPattern{m: m}, nil
}

// Match reports a full match of relPath against the compiled pattern.
func (c *CompiledPattern) Match(relPath string) bool {
	return c.m.matches(relPath)
}

// compileGroupMatchers compiles every pattern in a group relative to its
// base path (component C's per-group entry point).
func compileGroupMatchers(g *searchGroup) ([]*compiledMatcher, error) {
	matchers := make([]*compiledMatcher, 0, len(g.normalizedPatterns))
	for _, normalized := range g.normalizedPatterns {
		relative := relativePattern(g.basePath, normalized)
		m, err := compileMatcher(relative)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", normalized, err)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// relativePattern expresses an absolute, forward-slash pattern relative to
// an absolute, forward-slash base path.
func relativePattern(base, absolutePattern string) string {
	base = toSlash(base)
	rel := strings.TrimPrefix(absolutePattern, base)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		rel = "**"
	}
	return rel
}
