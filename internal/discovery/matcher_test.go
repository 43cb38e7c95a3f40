package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledMatcher_Matches(t *testing.T) {
	m, err := compileMatcher("**/*.js")
	require.NoError(t, err)

	assert.True(t, m.matches("a/x.js"))
	assert.True(t, m.matches("c/d/w.js"))
	assert.True(t, m.matches("c/d/.hidden.js"))
	assert.False(t, m.matches("a/y.txt"))
}

func TestCompiledMatcher_MatchesPrefix(t *testing.T) {
	m, err := compileMatcher("b/**/*.js")
	require.NoError(t, err)

	tests := []struct {
		relDir string
		want   bool
	}{
		{"", true},
		{"b", true},
		{"b/c", true},
		{"b/c/d", true},
		{"a", false},
	}
	for _, tt := range tests {
		t.Run(tt.relDir, func(t *testing.T) {
			assert.Equal(t, tt.want, m.matchesPrefix(tt.relDir))
		})
	}
}

func TestCompiledMatcher_MatchesPrefix_NoWildcardBeyondDepth(t *testing.T) {
	m, err := compileMatcher("a/b/*.go")
	require.NoError(t, err)

	assert.True(t, m.matchesPrefix("a"))
	assert.True(t, m.matchesPrefix("a/b"))
	assert.False(t, m.matchesPrefix("a/c"))
	// "a/b/c" is deeper than the pattern has segments for below the
	// wildcard, so it is never a productive descent.
	assert.False(t, m.matchesPrefix("a/b/c"))
}

func TestRelativePattern(t *testing.T) {
	assert.Equal(t, "a/x.js", relativePattern("/r", "/r/a/x.js"))
	assert.Equal(t, "**", relativePattern("/r/b", "/r/b"))
}
