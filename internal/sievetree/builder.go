// Package sievetree builds a directory tree out of discovery's flat file
// list, for the TUI to render.
package sievetree

import (
	"path/filepath"
	"sort"
	"strings"
)

// NodeStatus classifies a node for display purposes.
type NodeStatus int

const (
	// StatusDirectory marks an intermediate directory node.
	StatusDirectory NodeStatus = iota
	// StatusMatched marks a file FindFiles returned, or a directory
	// containing one.
	StatusMatched
	// StatusPruned marks a directory the configuration provider ignored;
	// its contents were never walked, so it never has children.
	StatusPruned
)

// FileNode is one entry in the rendered tree.
type FileNode struct {
	Path     string
	Name     string
	Status   NodeStatus
	IsDir    bool
	Children []*FileNode
}

// Build constructs a tree rooted at root containing only the ancestor
// directories of files, plus the files themselves as leaves and the
// directories in prunedDirs (which the configuration provider ignored, so
// they carry no children of their own). Files outside root (possible per
// discovery's base_path contract, see SPEC_FULL.md §9) are hung off a
// synthetic "/" root alongside root itself, the same fallback the teacher
// uses for @view paths that escape the working directory.
func Build(root string, files []string, prunedDirs []string) *FileNode {
	root = filepath.Clean(root)

	nodes := make(map[string]*FileNode)
	hasExternal := false

	getOrCreate := func(path string, isDir bool) *FileNode {
		if n, ok := nodes[path]; ok {
			return n
		}
		n := &FileNode{Path: path, Name: filepath.Base(path), IsDir: isDir}
		nodes[path] = n
		return n
	}

	isExternal := func(p string) bool {
		rel, err := filepath.Rel(root, p)
		return err != nil || strings.HasPrefix(rel, "..")
	}

	for _, f := range files {
		f = filepath.Clean(f)
		leaf := getOrCreate(f, false)
		leaf.Status = StatusMatched

		if isExternal(f) {
			hasExternal = true
		}

		ensureAncestors(f, root, nodes, getOrCreate)
	}

	for _, d := range prunedDirs {
		d = filepath.Clean(d)

		if isExternal(d) {
			hasExternal = true
		}

		ensureAncestors(d, root, nodes, getOrCreate)
		node := getOrCreate(d, true)
		if node.Status != StatusMatched {
			node.Status = StatusPruned
		}
	}

	var rootNode *FileNode
	if hasExternal {
		rootNode = &FileNode{Path: "/", Name: "/", IsDir: true, Status: StatusDirectory}
		ensureAncestors(root, root, nodes, getOrCreate)
		if _, ok := nodes[root]; !ok {
			nodes[root] = &FileNode{Path: root, Name: filepath.Base(root), IsDir: true, Status: StatusDirectory}
		}
	} else {
		rootNode = getOrCreate(root, true)
		if rootNode.Status != StatusMatched {
			rootNode.Status = StatusDirectory
		}
	}

	linkChildren(rootNode, nodes)
	sortChildren(rootNode)
	setDirectoryStatuses(rootNode)
	return rootNode
}

// ensureAncestors walks from path's parent up toward root, creating
// directory nodes for any ancestor not already present. The walk stops at
// root (inclusive) without climbing further; if it instead reaches the
// actual filesystem root first (an external path sharing no ancestor with
// root), that top node is left untracked so linkChildren's synthetic-root
// fallback picks it up directly, rather than turning it into a node that is
// its own parent.
func ensureAncestors(path, root string, nodes map[string]*FileNode, getOrCreate func(string, bool) *FileNode) {
	cur := filepath.Dir(path)
	for {
		if _, ok := nodes[cur]; ok {
			return
		}
		parent := filepath.Dir(cur)
		if parent == cur && cur != root {
			return
		}
		getOrCreate(cur, true)
		if cur == root {
			return
		}
		cur = parent
	}
}

// linkChildren wires every node (other than rootNode) into its parent's
// Children slice, for whichever ancestors exist in the map.
func linkChildren(rootNode *FileNode, nodes map[string]*FileNode) {
	for path, node := range nodes {
		if path == rootNode.Path {
			continue
		}
		parentPath := filepath.Dir(path)
		if parent, ok := nodes[parentPath]; ok {
			parent.Children = append(parent.Children, node)
		} else if parentPath == filepath.Dir(rootNode.Path) || rootNode.Path == "/" {
			rootNode.Children = append(rootNode.Children, node)
		}
	}
}

// sortChildren orders directories before files, then alphabetically,
// recursively.
func sortChildren(node *FileNode) {
	if node == nil || len(node.Children) == 0 {
		return
	}
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortChildren(child)
		}
	}
}

// setDirectoryStatuses marks a directory matched if any descendant matched,
// so the TUI can highlight branches worth expanding.
func setDirectoryStatuses(node *FileNode) bool {
	if !node.IsDir {
		return node.Status == StatusMatched
	}
	any := false
	for _, child := range node.Children {
		if setDirectoryStatuses(child) {
			any = true
		}
	}
	if any {
		node.Status = StatusMatched
	}
	return any
}
