package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-sieve/internal/sieveutil"
)

var log = sieveutil.NewLogger("sieve.discovery")

// groupOutcome is the result of one group's walk.
type groupOutcome struct {
	basePath   string
	files      []string
	prunedDirs []string
	failure    *unmatchedSearchPatternsError // non-nil only if the group finished with unmatched patterns
	err        error                         // any system/provider error, propagated unchanged
}

// resolution is the internal result of running the full G pipeline once,
// shared by FindFiles and FindFilesWithStats so neither re-walks the
// filesystem to get what the other already computed.
type resolution struct {
	files             []string
	groupCount        int
	unmatchedPatterns []string
	prunedDirs        []string
}

// FindFiles is the discovery engine's entry point (component G). It
// resolves patterns to a deduplicated set of absolute file paths,
// consulting opts.ConfigProvider to decide what is skipped. ctx is checked
// once per directory/file visited by a group's filepath.WalkDir callback,
// before that entry's provider calls; a canceled ctx stops all outstanding
// walks and returns ctx.Err().
func FindFiles(ctx context.Context, patterns []string, opts Options) ([]string, error) {
	res, err := resolve(ctx, patterns, opts)
	if err != nil {
		return nil, err
	}
	return res.files, nil
}

func resolve(ctx context.Context, patterns []string, opts Options) (*resolution, error) {
	if !filepath.IsAbs(opts.Cwd) {
		return nil, fmt.Errorf("cwd must be absolute, got %q", opts.Cwd)
	}
	cwd := filepath.Clean(opts.Cwd)

	log.WithFields(logrus.Fields{
		"pattern_count": len(patterns),
		"cwd":           cwd,
	}).Debug("resolving files from patterns")

	if len(patterns) == 0 {
		return &resolution{files: []string{}}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classified := make([]classifiedPattern, 0, len(patterns))
	for _, p := range patterns {
		classified = append(classified, classifyPattern(p, cwd, opts.GlobInputPaths))
	}

	grouped := buildGroups(classified, cwd)

	if opts.ErrorOnUnmatchedPattern && len(grouped.missingPatterns) > 0 {
		return nil, &NoFilesFoundError{Pattern: grouped.missingPatterns[0], GlobEnabled: opts.GlobInputPaths}
	}

	outcomes := runGroupWalks(ctx, grouped, opts.ConfigProvider, grouped.groupOrder)

	var unmatchedPatterns []string
	var prunedDirs []string

	// The first failing group, in launch order, determines the user-facing
	// error (spec.md §4.G step 6, §7).
	for _, base := range grouped.groupOrder {
		outcome := outcomes[base]
		if outcome == nil {
			continue
		}
		if outcome.err != nil {
			return nil, outcome.err
		}
		prunedDirs = append(prunedDirs, outcome.prunedDirs...)
		if outcome.failure != nil {
			if opts.ErrorOnUnmatchedPattern {
				return nil, reconcileUnmatched(ctx, outcome.failure)
			}
			// Not an error: the group's matched files still count, and the
			// leftover patterns are reported as silently dropped.
			unmatchedPatterns = append(unmatchedPatterns, remainingUnmatchedRaw(outcome.failure)...)
		}
	}

	results := append([]string{}, grouped.literalFiles...)
	for _, base := range grouped.groupOrder {
		if outcome := outcomes[base]; outcome != nil {
			results = append(results, outcome.files...)
		}
	}

	deduped := dedupe(results)
	log.WithFields(logrus.Fields{
		"pattern_count": len(patterns),
		"file_count":    len(deduped),
	}).Debug("resolved files from patterns")

	return &resolution{
		files:             deduped,
		groupCount:        len(grouped.groupOrder),
		unmatchedPatterns: unmatchedPatterns,
		prunedDirs:        dedupe(prunedDirs),
	}, nil
}

// runGroupWalks launches one walk per search group in parallel, matching
// the teacher's fan-out idiom (a WaitGroup with one goroutine per unit of
// work, each storing its outcome in a shared map under a mutex) rather
// than a shared worker pool.
func runGroupWalks(ctx context.Context, grouped *groupResult, provider ConfigProvider, order []string) map[string]*groupOutcome {
	outcomes := make(map[string]*groupOutcome, len(order))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, base := range order {
		g := grouped.groups[base]
		wg.Add(1)
		go func(base string, g *searchGroup) {
			defer wg.Done()
			outcome := runSingleGroup(ctx, base, g, provider)
			mu.Lock()
			outcomes[base] = outcome
			mu.Unlock()
		}(base, g)
	}

	wg.Wait()
	return outcomes
}

// runSingleGroup compiles one group's matchers and walks it to completion,
// reporting either the matched files or an unmatched-patterns failure.
func runSingleGroup(ctx context.Context, base string, g *searchGroup, provider ConfigProvider) *groupOutcome {
	matchers, err := compileGroupMatchers(g)
	if err != nil {
		return &groupOutcome{basePath: base, err: err}
	}

	unmatched := make(map[string]struct{}, len(matchers))
	for _, m := range matchers {
		unmatched[m.relative] = struct{}{}
	}

	var pruned []string
	cfg := groupWalkConfig{
		basePath:         base,
		matchers:         matchers,
		filter:           &configAwareFilter{provider: provider, checkDirIgnored: true},
		isLiteralDirRoot: g.isLiteralDirRoot,
		reportPruned:     func(absPath string) { pruned = append(pruned, absPath) },
	}

	files, err := walkGroup(ctx, cfg, unmatched)
	if err != nil {
		return &groupOutcome{basePath: base, err: err}
	}

	if len(unmatched) > 0 {
		return &groupOutcome{
			basePath:   base,
			files:      files,
			prunedDirs: pruned,
			failure: &unmatchedSearchPatternsError{
				basePath:           base,
				unmatched:          unmatched,
				normalizedPatterns: g.normalizedPatterns,
				rawPatterns:        g.rawPatterns,
			},
		}
	}

	return &groupOutcome{basePath: base, files: files, prunedDirs: pruned}
}

// dedupe removes duplicates while preserving first-occurrence order
// (spec.md §3 invariant 3, §8 "Return value contains no duplicates").
func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
