package sievetree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findChild(t *testing.T, node *FileNode, name string) *FileNode {
	t.Helper()
	for _, c := range node.Children {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "child not found", "no child named %q under %q", name, node.Path)
	return nil
}

func TestBuild_NestedMatchedFiles(t *testing.T) {
	root := filepath.FromSlash("/repo")
	files := []string{
		filepath.Join(root, "a", "x.js"),
		filepath.Join(root, "a", "b", "y.js"),
		filepath.Join(root, "z.js"),
	}

	tree := Build(root, files, nil)

	assert.Equal(t, root, tree.Path)
	assert.True(t, tree.IsDir)
	assert.Equal(t, StatusMatched, tree.Status)

	z := findChild(t, tree, "z.js")
	assert.False(t, z.IsDir)
	assert.Equal(t, StatusMatched, z.Status)

	a := findChild(t, tree, "a")
	assert.True(t, a.IsDir)
	assert.Equal(t, StatusMatched, a.Status)

	x := findChild(t, a, "x.js")
	assert.Equal(t, StatusMatched, x.Status)

	b := findChild(t, a, "b")
	assert.True(t, b.IsDir)
	assert.Equal(t, StatusMatched, b.Status)

	y := findChild(t, b, "y.js")
	assert.Equal(t, StatusMatched, y.Status)
}

func TestBuild_SortsDirectoriesBeforeFilesThenAlphabetically(t *testing.T) {
	root := filepath.FromSlash("/repo")
	files := []string{
		filepath.Join(root, "zzz.js"),
		filepath.Join(root, "aaa.js"),
		filepath.Join(root, "Banana", "f.js"),
		filepath.Join(root, "apple", "g.js"),
	}

	tree := Build(root, files, nil)

	require.Len(t, tree.Children, 4)
	names := make([]string, len(tree.Children))
	for i, c := range tree.Children {
		names[i] = c.Name
	}
	// directories first (case-insensitive alpha: apple, Banana), then files
	// (case-insensitive alpha: aaa.js, zzz.js).
	assert.Equal(t, []string{"apple", "Banana", "aaa.js", "zzz.js"}, names)
}

func TestBuild_EveryAncestorOfMatchedFileIsMatched(t *testing.T) {
	root := filepath.FromSlash("/repo")
	files := []string{
		filepath.Join(root, "a", "b", "c", "x.js"),
	}

	tree := Build(root, files, nil)

	a := findChild(t, tree, "a")
	b := findChild(t, a, "b")
	c := findChild(t, b, "c")
	x := findChild(t, c, "x.js")

	assert.Equal(t, StatusMatched, x.Status)
	assert.Equal(t, StatusMatched, c.Status)
	assert.Equal(t, StatusMatched, b.Status)
	assert.Equal(t, StatusMatched, a.Status)
	assert.Equal(t, StatusMatched, tree.Status)
}

func TestBuild_ExternalFileFallsBackToSyntheticRoot(t *testing.T) {
	root := filepath.FromSlash("/repo/project")
	files := []string{
		filepath.Join(root, "x.js"),
		filepath.FromSlash("/repo/other/external.js"),
	}

	tree := Build(root, files, nil)

	assert.Equal(t, "/", tree.Path)
	assert.True(t, tree.IsDir)

	// project's own subtree is still reachable from the synthetic root, via
	// the real ancestor chain shared with the external file.
	repo := findChild(t, tree, "repo")
	project := findChild(t, repo, "project")
	x := findChild(t, project, "x.js")
	assert.Equal(t, StatusMatched, x.Status)

	other := findChild(t, repo, "other")
	ext := findChild(t, other, "external.js")
	assert.Equal(t, StatusMatched, ext.Status)
}

func TestBuild_SingleFileDirectlyUnderRoot(t *testing.T) {
	root := filepath.FromSlash("/repo")
	files := []string{filepath.Join(root, "only.js")}

	tree := Build(root, files, nil)

	require.Len(t, tree.Children, 1)
	only := tree.Children[0]
	assert.Equal(t, "only.js", only.Name)
	assert.False(t, only.IsDir)
	assert.Equal(t, StatusMatched, only.Status)
}

func TestBuild_PrunedDirectoryHasNoChildrenAndDoesNotPropagateMatched(t *testing.T) {
	root := filepath.FromSlash("/repo")
	files := []string{
		filepath.Join(root, "a", "x.js"),
	}
	prunedDirs := []string{
		filepath.Join(root, "b"),
	}

	tree := Build(root, files, prunedDirs)

	b := findChild(t, tree, "b")
	assert.True(t, b.IsDir)
	assert.Equal(t, StatusPruned, b.Status)
	assert.Empty(t, b.Children)

	// root itself still reports matched because of a/x.js, independent of
	// the pruned sibling.
	assert.Equal(t, StatusMatched, tree.Status)

	a := findChild(t, tree, "a")
	assert.Equal(t, StatusMatched, a.Status)
}

func TestBuild_NoFiles(t *testing.T) {
	root := filepath.FromSlash("/repo")

	tree := Build(root, nil, nil)

	assert.Equal(t, root, tree.Path)
	assert.Equal(t, StatusDirectory, tree.Status)
	assert.Empty(t, tree.Children)
}
