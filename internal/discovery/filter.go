package discovery

// configAwareFilter implements component E: a thin adapter between the
// walker (component D) and the ConfigProvider. It is modeled as a
// capability interface with two operations, should_enter_directory and
// should_yield_file's config lookup, the way spec.md's design notes
// describe replacing the source's closures-over-the-walker idiom in a
// systems language.
//
// The filter does no caching of its own; spec.md §4.E requires the
// provider itself to cache, and the core relies on that.
type configAwareFilter struct {
	provider        ConfigProvider
	checkDirIgnored bool // false for the reconciler's second pass (§4.F)
}

// shouldEnterDirectory answers D-3: is this directory ignored by the
// configuration provider. D-1 (root override) and D-2 (prefix pruning)
// are handled by the walker itself before this is consulted.
func (f *configAwareFilter) shouldEnterDirectory(absPath string) (bool, error) {
	if f.provider == nil || !f.checkDirIgnored {
		return true, nil
	}
	ignored, err := f.provider.IsDirectoryIgnored(absPath)
	if err != nil {
		return false, err
	}
	return !ignored, nil
}

// configFor answers F-1: the aggregated configuration for a file, or nil
// if the filter has no provider (the reconciler's config-disabled pass).
func (f *configAwareFilter) configFor(absPath string) (any, error) {
	if f.provider == nil {
		return nil, nil
	}
	return f.provider.GetConfig(absPath)
}
