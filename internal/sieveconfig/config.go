// Package sieveconfig is a reference implementation of discovery.ConfigProvider.
//
// It looks for a .sieverc.yml file in a directory and its ancestors, the
// same upward-search idiom the teacher uses for grove.yml/rules lookup. A
// directory has a configuration iff a .sieverc.yml exists at or above it
// that wasn't itself excluded by a parent's ignore rules.
package sieveconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-sieve/internal/discovery"
)

// ConfigFileName is the configuration file this provider looks for.
const ConfigFileName = ".sieverc.yml"

// Rule is one ignore entry in a .sieverc.yml file.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Negate  bool   `yaml:"negate,omitempty"`
}

// fileConfig is the on-disk shape of a .sieverc.yml.
type fileConfig struct {
	Ignore []string          `yaml:"ignore"`
	Values map[string]string `yaml:"values"`
}

// Config is the aggregated configuration returned to callers via GetConfig.
// It is the concrete type behind the `any` the discovery package deals in.
type Config struct {
	// Dir is the directory the owning .sieverc.yml was found in.
	Dir string

	// Path is the .sieverc.yml file itself.
	Path string

	// Rules are the ignore rules declared by this file, as written.
	Rules []Rule

	// Values carries arbitrary string settings a driver might consume.
	Values map[string]string
}

type dirEntry struct {
	dir     string
	present bool
	config  *Config
	ignore  []*discovery.CompiledPattern
}

// Provider implements discovery.ConfigProvider over .sieverc.yml files.
// It caches every directory it has inspected, satisfying the
// provider-must-cache contract the engine relies on.
type Provider struct {
	mu          sync.RWMutex
	dirCache    map[string]*dirEntry
	ignoreCache map[string]bool

	// root bounds the upward ancestor search. Empty means climb to the
	// filesystem root, as before; otherwise the chain never climbs past
	// this directory, even if it has further real ancestors.
	root string
}

// New returns a ready-to-use Provider whose ancestor search climbs all the
// way to the filesystem root.
func New() *Provider {
	return &Provider{
		dirCache:    make(map[string]*dirEntry),
		ignoreCache: make(map[string]bool),
	}
}

// NewWithRoot returns a Provider whose ancestor search never climbs past
// root, the way a CLI's --config override anchors the search at the
// directory containing the overriding .sieverc.yml instead of the real
// filesystem root.
func NewWithRoot(root string) *Provider {
	p := New()
	if root != "" {
		p.root = filepath.Clean(root)
	}
	return p
}

// LoadConfigForDirectory primes the cache for absPath and its ancestors.
func (p *Provider) LoadConfigForDirectory(absPath string) error {
	_, err := p.ancestorChain(absPath)
	return err
}

// LoadConfigForFile primes the cache for the file's containing directory.
func (p *Provider) LoadConfigForFile(absPath string) error {
	return p.LoadConfigForDirectory(filepath.Dir(absPath))
}

// IsDirectoryIgnored reports whether any ancestor's ignore rules match
// absPath relative to that ancestor's directory.
func (p *Provider) IsDirectoryIgnored(absPath string) (bool, error) {
	absPath = filepath.Clean(absPath)

	p.mu.RLock()
	if ignored, ok := p.ignoreCache[absPath]; ok {
		p.mu.RUnlock()
		return ignored, nil
	}
	p.mu.RUnlock()

	// The root anchor has no ancestors inside the provider's bound.
	var chain []*dirEntry
	if p.root == "" || absPath != p.root {
		var err error
		chain, err = p.ancestorChain(filepath.Dir(absPath))
		if err != nil {
			return false, err
		}
	}

	ignored := false
	for _, entry := range chain {
		rel, err := relSlash(entry.dir, absPath)
		if err != nil {
			return false, err
		}
		if matchesIgnore(entry.ignore, rel) {
			ignored = true
			break
		}
	}

	p.mu.Lock()
	p.ignoreCache[absPath] = ignored
	p.mu.Unlock()

	return ignored, nil
}

// GetConfig returns the nearest non-excluded .sieverc.yml's Config, or nil
// if none applies.
func (p *Provider) GetConfig(absPath string) (any, error) {
	dir := filepath.Dir(filepath.Clean(absPath))

	chain, err := p.ancestorChain(dir)
	if err != nil {
		return nil, err
	}

	for i, entry := range chain {
		if !entry.present {
			continue
		}
		excluded, err := p.excludedByAncestors(chain[i+1:], entry.dir)
		if err != nil {
			return nil, err
		}
		if excluded {
			continue
		}
		return entry.config, nil
	}
	return nil, nil
}

// excludedByAncestors reports whether dir is ignored by any entry further
// up the chain than dir's own config.
func (p *Provider) excludedByAncestors(above []*dirEntry, dir string) (bool, error) {
	for _, entry := range above {
		rel, err := relSlash(entry.dir, dir)
		if err != nil {
			return false, err
		}
		if matchesIgnore(entry.ignore, rel) {
			return true, nil
		}
	}
	return false, nil
}

// ancestorChain returns dir and every ancestor up to the filesystem root,
// or up to p.root when it is set and reached on the way, nearest first,
// each with its own .sieverc.yml loaded (if any). Every
// directory visited is memoized so repeated lookups never re-stat or
// re-parse.
func (p *Provider) ancestorChain(dir string) ([]*dirEntry, error) {
	dir = filepath.Clean(dir)

	var chain []*dirEntry
	cur := dir
	for {
		entry, err := p.loadDir(cur)
		if err != nil {
			return nil, err
		}
		chain = append(chain, entry)

		if p.root != "" && cur == p.root {
			break
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return chain, nil
}

// loadDir returns the cached entry for dir, loading and parsing its
// .sieverc.yml (if present) on first access.
func (p *Provider) loadDir(dir string) (*dirEntry, error) {
	p.mu.RLock()
	entry, ok := p.dirCache[dir]
	p.mu.RUnlock()
	if ok {
		return entry, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.dirCache[dir]; ok {
		return entry, nil
	}

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			entry := &dirEntry{dir: dir}
			p.dirCache[dir] = entry
			return entry, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(raw.Ignore))
	matchers := make([]*discovery.CompiledPattern, 0, len(raw.Ignore))
	for _, pattern := range raw.Ignore {
		rules = append(rules, Rule{Pattern: pattern})
		m, err := discovery.CompilePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q in %s: %w", pattern, path, err)
		}
		matchers = append(matchers, m)
	}

	entry = &dirEntry{
		dir:     dir,
		present: true,
		ignore:  matchers,
		config: &Config{
			Dir:    dir,
			Path:   path,
			Rules:  rules,
			Values: raw.Values,
		},
	}
	p.dirCache[dir] = entry
	return entry, nil
}

func matchesIgnore(matchers []*discovery.CompiledPattern, rel string) bool {
	for _, m := range matchers {
		if m.Match(rel) {
			return true
		}
	}
	return false
}

// relSlash expresses target relative to base as a forward-slash path. If
// target is not under base (an ancestor computed against a path it isn't
// actually an ancestor of, which should not happen given how the chain is
// built), the raw relative computation from filepath.Rel is used as-is.
func relSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

var _ discovery.ConfigProvider = (*Provider)(nil)
