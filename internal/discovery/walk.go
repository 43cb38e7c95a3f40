package discovery

import (
	"context"
	"os"
	"path/filepath"
)

// groupWalkConfig bundles the inputs a single group's walk needs.
type groupWalkConfig struct {
	basePath string
	matchers []*compiledMatcher
	filter   *configAwareFilter

	// isLiteralDirRoot mirrors searchGroup.isLiteralDirRoot: only
	// literal-directory-derived groups get the D-1 exemption at their own
	// root. Glob-derived groups fall through to the normal D-2/D-3 checks
	// even at depth 0.
	isLiteralDirRoot bool

	// reportPruned, if non-nil, is called with the absolute path of every
	// directory D-3 prunes (i.e. shouldEnterDirectory says no because the
	// configuration provider ignores it). It is never called for D-2
	// prefix-pruning, which reflects the patterns, not the configuration.
	// Single-goroutine-per-group, so appending to a plain slice from the
	// closure is safe without its own lock.
	reportPruned func(absPath string)
}

// walkGroup implements component D: a recursive traversal rooted at
// basePath that prunes directories the matchers can't reach or the
// config-aware filter ignores, and yields files that match a pattern and
// carry a configuration.
//
// unmatched starts populated with every matcher's relative pattern and is
// mutated only here, serially, as required by spec.md §5 ("Shared state").
// Once it empties the file filter switches to the any-match fast path
// described in spec.md §4.D F-2.
func walkGroup(ctx context.Context, cfg groupWalkConfig, unmatched map[string]struct{}) ([]string, error) {
	var files []string

	err := filepath.WalkDir(cfg.basePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relPath, relErr := filepath.Rel(cfg.basePath, path)
		if relErr != nil {
			return relErr
		}
		if relPath == "." {
			relPath = ""
		}
		relPath = toSlash(relPath)

		if d.IsDir() {
			descend, derr := shouldDescend(cfg, relPath, path)
			if derr != nil {
				return derr
			}
			if !descend {
				if relPath == "" && cfg.isLiteralDirRoot {
					// D-1 guarantees a literal-directory root is never
					// pruned; shouldDescend never returns false for it,
					// but guard regardless.
					return nil
				}
				return filepath.SkipDir
			}
			return nil
		}

		config, cerr := cfg.filter.configFor(path)
		if cerr != nil {
			return cerr
		}

		matchedAny := matchFile(cfg.matchers, relPath, config, unmatched)
		if matchedAny && (cfg.filter.provider == nil || config != nil) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// shouldDescend implements the directory filter (§4.D D-1..D-3).
func shouldDescend(cfg groupWalkConfig, relDir, absPath string) (bool, error) {
	if relDir == "" && cfg.isLiteralDirRoot {
		// D-1: a directory the user named explicitly is never pruned at
		// its own root. A glob-derived group's base_path is just a
		// walk-scoping optimization and gets no such exemption; it falls
		// through to the D-2/D-3 checks below like any other directory.
		return true, nil
	}

	canReach := false
	for _, m := range cfg.matchers {
		if m.matchesPrefix(relDir) {
			canReach = true
			break
		}
	}
	if !canReach {
		return false, nil
	}

	enter, err := cfg.filter.shouldEnterDirectory(absPath)
	if err != nil {
		return false, err
	}
	if !enter && cfg.reportPruned != nil {
		cfg.reportPruned(absPath)
	}
	return enter, nil
}

// matchFile implements the file filter's match determination (§4.D F-2).
// It reports whether relPath matched at least one pattern, and mutates
// unmatched in place while it is non-empty.
func matchFile(matchers []*compiledMatcher, relPath string, config any, unmatched map[string]struct{}) bool {
	matched := false

	if len(unmatched) > 0 {
		for _, m := range matchers {
			if m.matches(relPath) && config != nil {
				matched = true
				delete(unmatched, m.relative)
			}
		}
		return matched
	}

	for _, m := range matchers {
		if m.matches(relPath) {
			return true
		}
	}
	return false
}
