// Package discovery implements a configuration-aware file discovery engine.
//
// Given a list of user-supplied path patterns and a working directory, it
// resolves a deduplicated set of absolute file paths, consulting a pluggable
// ConfigProvider to decide which files and directories are skipped.
package discovery

import "path/filepath"

// ConfigProvider is the external collaborator that owns configuration
// lookup and ignore decisions. Implementations must cache internally; the
// engine performs no caching of its own.
type ConfigProvider interface {
	// LoadConfigForDirectory primes any caches for the given absolute
	// directory path. Idempotent.
	LoadConfigForDirectory(absPath string) error

	// LoadConfigForFile primes any caches for the given absolute file path.
	// Idempotent.
	LoadConfigForFile(absPath string) error

	// IsDirectoryIgnored reports whether the directory at absPath should be
	// pruned from traversal. Must stay consistent with GetConfig.
	IsDirectoryIgnored(absPath string) (bool, error)

	// GetConfig returns the aggregated configuration applicable to the
	// file at absPath, or nil if no configuration applies.
	GetConfig(absPath string) (any, error)
}

// Options carries the discovery-relevant subset of the driver's option set.
type Options struct {
	// Cwd is the absolute working directory patterns are resolved against.
	Cwd string

	// GlobInputPaths enables glob interpretation of patterns that don't
	// resolve to a literal file or directory.
	GlobInputPaths bool

	// ErrorOnUnmatchedPattern turns an unproductive pattern into an error
	// instead of silently dropping it.
	ErrorOnUnmatchedPattern bool

	// ConfigProvider decides which files and directories have a
	// configuration and which are ignored.
	ConfigProvider ConfigProvider
}

// patternKind classifies a user-supplied pattern.
type patternKind int

const (
	kindLiteralFile patternKind = iota
	kindLiteralDirectory
	kindGlob
	kindMissing
)

// classifiedPattern is the result of running a raw pattern through the
// classifier (component A).
type classifiedPattern struct {
	kind patternKind
	raw  string

	// absPath is populated for kindLiteralFile and kindLiteralDirectory.
	absPath string

	// normalized is the forward-slash form used for kindGlob; absolute.
	normalized string
}

// searchGroup is a record keyed by an absolute base path, holding the
// patterns whose static prefix resolves to that base.
type searchGroup struct {
	basePath           string
	normalizedPatterns []string // absolute, forward-slash
	rawPatterns        []string // parallel to normalizedPatterns

	// isLiteralDirRoot is true when this group was seeded by a literal
	// directory argument (component B's kindLiteralDirectory branch). Only
	// such groups get the D-1 root-ignore override in the walker: the user
	// explicitly chose this directory, so its own is_directory_ignored
	// status must not block descent into it. Glob-derived groups whose
	// static prefix happens to equal some directory get no such exemption
	// — their base_path is a walk-scoping optimization, not a user choice.
	isLiteralDirRoot bool
}

func (g *searchGroup) add(normalized, raw string) {
	g.normalizedPatterns = append(g.normalizedPatterns, normalized)
	g.rawPatterns = append(g.rawPatterns, raw)
}

// toSlash normalizes a native path to forward-slash form without touching
// an already-absolute path's drive semantics.
func toSlash(p string) string {
	return filepath.ToSlash(p)
}
