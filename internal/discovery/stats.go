package discovery

import "context"

// Stats is a small result envelope the CLI and TUI use for reporting;
// FindFiles itself returns exactly ([]string, error) as specified.
type Stats struct {
	Files []string

	GroupCount int

	// UnmatchedPatterns are the raw patterns that matched nothing (only
	// populated when opts.ErrorOnUnmatchedPattern is false; otherwise the
	// first such pattern becomes an error before any could be collected
	// here).
	UnmatchedPatterns []string

	// PrunedDirectories are the absolute paths of directories D-3 pruned
	// because the configuration provider ignored them. Pattern-prefix
	// pruning (D-2) is not reported here: it reflects the patterns given,
	// not the configuration.
	PrunedDirectories []string
}

// FindFilesWithStats runs the same resolution FindFiles does, additionally
// reporting how many search groups were launched, which patterns matched
// nothing, and which directories the configuration provider pruned.
func FindFilesWithStats(ctx context.Context, patterns []string, opts Options) (*Stats, error) {
	res, err := resolve(ctx, patterns, opts)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Files:             res.files,
		GroupCount:        res.groupCount,
		UnmatchedPatterns: res.unmatchedPatterns,
		PrunedDirectories: res.prunedDirs,
	}, nil
}
