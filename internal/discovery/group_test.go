package discovery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGroups_LiteralDirectoryMarksRoot(t *testing.T) {
	cwd := filepath.FromSlash("/r")
	classified := []classifiedPattern{
		{kind: kindLiteralDirectory, raw: "b", absPath: filepath.FromSlash("/r/b")},
	}

	result := buildGroups(classified, cwd)

	g, ok := result.groups[filepath.FromSlash("/r/b")]
	if assert.True(t, ok, "expected a group keyed on /r/b") {
		assert.True(t, g.isLiteralDirRoot)
		assert.Equal(t, []string{"/r/b/**"}, g.normalizedPatterns)
	}
}

func TestBuildGroups_GlobStaticPrefixNotLiteralRoot(t *testing.T) {
	cwd := filepath.FromSlash("/r")
	classified := []classifiedPattern{
		{kind: kindGlob, raw: "b/**/*.js", normalized: "/r/b/**/*.js"},
	}

	result := buildGroups(classified, cwd)

	g, ok := result.groups[filepath.FromSlash("/r/b")]
	if assert.True(t, ok, "expected a group keyed on the glob's static prefix /r/b") {
		assert.False(t, g.isLiteralDirRoot)
	}
}

func TestBuildGroups_GlobWithoutStaticPrefixJoinsCwdGroup(t *testing.T) {
	cwd := filepath.FromSlash("/r")
	classified := []classifiedPattern{
		{kind: kindGlob, raw: "**/*.js", normalized: "/r/**/*.js"},
	}

	result := buildGroups(classified, cwd)

	g, ok := result.groups[cwd]
	if assert.True(t, ok) {
		assert.False(t, g.isLiteralDirRoot)
		assert.Contains(t, g.normalizedPatterns, "/r/**/*.js")
	}
}

func TestBuildGroups_LiteralFilesAndMissingSeparated(t *testing.T) {
	cwd := filepath.FromSlash("/r")
	classified := []classifiedPattern{
		{kind: kindLiteralFile, raw: "a/x.js", absPath: filepath.FromSlash("/r/a/x.js")},
		{kind: kindMissing, raw: "nope.go"},
	}

	result := buildGroups(classified, cwd)

	assert.Equal(t, []string{filepath.FromSlash("/r/a/x.js")}, result.literalFiles)
	assert.Equal(t, []string{"nope.go"}, result.missingPatterns)

	// The pre-seeded, now-empty cwd group must be filtered out.
	_, ok := result.groups[cwd]
	assert.False(t, ok)
}
