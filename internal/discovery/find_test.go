package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a minimal ConfigProvider used to drive the scenarios in
// spec.md §8 without a real configuration file format.
type fakeProvider struct {
	ignoredDirs  map[string]bool
	absentConfig map[string]bool // files with no applicable configuration
}

func (p *fakeProvider) LoadConfigForDirectory(absPath string) error { return nil }
func (p *fakeProvider) LoadConfigForFile(absPath string) error     { return nil }

func (p *fakeProvider) IsDirectoryIgnored(absPath string) (bool, error) {
	return p.ignoredDirs[filepath.ToSlash(absPath)], nil
}

func (p *fakeProvider) GetConfig(absPath string) (any, error) {
	if p.absentConfig[filepath.ToSlash(absPath)] {
		return nil, nil
	}
	return "config", nil
}

// buildScenarioTree lays out the tree from spec.md §8 under a temp root and
// returns the root plus a provider wired to its stated configuration.
func buildScenarioTree(t *testing.T) (root string, provider *fakeProvider) {
	t.Helper()
	root = t.TempDir()

	mustWrite := func(rel string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("contents"), 0o644))
	}

	mustWrite("a/x.js")
	mustWrite("a/y.txt")
	mustWrite("b/z.js")
	mustWrite("c/d/w.js")
	mustWrite("c/d/.hidden.js")

	provider = &fakeProvider{
		ignoredDirs:  map[string]bool{filepath.ToSlash(filepath.Join(root, "b")): true},
		absentConfig: map[string]bool{filepath.ToSlash(filepath.Join(root, "a/y.txt")): true},
	}
	return root, provider
}

func TestFindFiles_LiteralFile(t *testing.T) {
	root, provider := buildScenarioTree(t)

	got, err := FindFiles(context.Background(), []string{"a/x.js"}, Options{Cwd: root, ConfigProvider: provider})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a/x.js")}, got)
}

func TestFindFiles_GlobExcludesIgnoredDirectory(t *testing.T) {
	root, provider := buildScenarioTree(t)

	got, err := FindFiles(context.Background(), []string{"**/*.js"}, Options{
		Cwd:            root,
		GlobInputPaths: true,
		ConfigProvider: provider,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a/x.js"),
		filepath.Join(root, "c/d/w.js"),
		filepath.Join(root, "c/d/.hidden.js"),
	}, got)
}

func TestFindFiles_LiteralDirectoryOverridesIgnore(t *testing.T) {
	root, provider := buildScenarioTree(t)

	got, err := FindFiles(context.Background(), []string{"b"}, Options{Cwd: root, ConfigProvider: provider})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b/z.js")}, got)
}

func TestFindFiles_NoFilesFound(t *testing.T) {
	root, provider := buildScenarioTree(t)

	_, err := FindFiles(context.Background(), []string{"**/*.py"}, Options{
		Cwd:                     root,
		GlobInputPaths:          true,
		ErrorOnUnmatchedPattern: true,
		ConfigProvider:          provider,
	})

	var noFiles *NoFilesFoundError
	require.True(t, errors.As(err, &noFiles))
	assert.Equal(t, "**/*.py", noFiles.Pattern)
	assert.True(t, noFiles.GlobEnabled)
}

func TestFindFiles_AllFilesIgnored(t *testing.T) {
	root, provider := buildScenarioTree(t)

	_, err := FindFiles(context.Background(), []string{"b/**/*.js"}, Options{
		Cwd:                     root,
		GlobInputPaths:          true,
		ErrorOnUnmatchedPattern: true,
		ConfigProvider:          provider,
	})

	var allIgnored *AllFilesIgnoredError
	require.True(t, errors.As(err, &allIgnored))
	assert.Equal(t, "b/**/*.js", allIgnored.Pattern)
}

func TestFindFiles_LiteralFileWithAbsentConfigStillReturned(t *testing.T) {
	root, provider := buildScenarioTree(t)

	got, err := FindFiles(context.Background(), []string{"a/y.txt"}, Options{Cwd: root, ConfigProvider: provider})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a/y.txt")}, got)
}

func TestFindFiles_EmptyPatterns(t *testing.T) {
	root, provider := buildScenarioTree(t)

	got, err := FindFiles(context.Background(), nil, Options{Cwd: root, ConfigProvider: provider})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindFiles_DeduplicatesOverlappingPatterns(t *testing.T) {
	root, provider := buildScenarioTree(t)

	got, err := FindFiles(context.Background(), []string{"a/x.js", "a/*.js"}, Options{
		Cwd:            root,
		GlobInputPaths: true,
		ConfigProvider: provider,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a/x.js")}, got)
}

func TestFindFiles_RelativeCwdRejected(t *testing.T) {
	_, err := FindFiles(context.Background(), []string{"a"}, Options{Cwd: "relative/path"})
	assert.Error(t, err)
}

func TestFindFiles_CanceledContextStopsTheWalk(t *testing.T) {
	root, provider := buildScenarioTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindFiles(ctx, []string{"**/*.js"}, Options{
		Cwd:            root,
		GlobInputPaths: true,
		ConfigProvider: provider,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindFilesWithStats_ReportsUnmatchedPatternsWhenNotErroring(t *testing.T) {
	root, provider := buildScenarioTree(t)

	stat, err := FindFilesWithStats(context.Background(), []string{"b/**/*.js", "a/*.js"}, Options{
		Cwd:            root,
		GlobInputPaths: true,
		ConfigProvider: provider,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a/x.js")}, stat.Files)
	assert.Equal(t, []string{"b/**/*.js"}, stat.UnmatchedPatterns)
}

func TestFindFilesWithStats_ReportsPrunedDirectories(t *testing.T) {
	root, provider := buildScenarioTree(t)

	stat, err := FindFilesWithStats(context.Background(), []string{"**/*.js"}, Options{
		Cwd:            root,
		GlobInputPaths: true,
		ConfigProvider: provider,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b")}, stat.PrunedDirectories)
}
