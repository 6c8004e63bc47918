// Package tree builds the file-tree sidebar model from session.FileEntry
// listings. Screen drawing lives in internal/render; this package owns
// only the hierarchy, cursor and scroll bookkeeping.
package tree

import (
	"sort"
	"strings"

	"github.com/h0rv/stepdiff/internal/session"
)

// Node is a flattened entry for rendering the tree sidebar: a directory or
// a file leaf.
type Node struct {
	Display string
	Path    string
	Depth   int
	IsDir   bool
	Added   uint32
	Removed uint32
}

type dirNode struct {
	children map[string]*dirNode
	files    []*session.FileEntry
	order    []string
}

func newDirNode() *dirNode {
	return &dirNode{children: make(map[string]*dirNode)}
}

func (d *dirNode) getOrCreateChild(name string) *dirNode {
	if c, ok := d.children[name]; ok {
		return c
	}
	c := newDirNode()
	d.children[name] = c
	d.order = append(d.order, name)
	return c
}

// Build converts a flat file-entry list into a hierarchical tree,
// collapsing single-child directory chains.
func Build(files []session.FileEntry) []Node {
	if len(files) == 0 {
		return nil
	}

	root := newDirNode()
	for i := range files {
		fe := &files[i]
		parts := strings.Split(fe.Path, "/")
		node := root
		for _, part := range parts[:len(parts)-1] {
			node = node.getOrCreateChild(part)
		}
		node.files = append(node.files, fe)
	}

	var nodes []Node
	var flatten func(n *dirNode, depth int, prefix string)
	flatten = func(n *dirNode, depth int, prefix string) {
		dirKeys := make([]string, len(n.order))
		copy(dirKeys, n.order)
		sort.Strings(dirKeys)

		sortedFiles := make([]*session.FileEntry, len(n.files))
		copy(sortedFiles, n.files)
		sort.Slice(sortedFiles, func(i, j int) bool {
			return basename(sortedFiles[i].Path) < basename(sortedFiles[j].Path)
		})

		for _, key := range dirKeys {
			child := n.children[key]
			dirPath := prefix + key + "/"

			collapsed := child
			collapsedName := key
			for len(collapsed.children) == 1 && len(collapsed.files) == 0 {
				for subKey, subChild := range collapsed.children {
					collapsedName += "/" + subKey
					collapsed = subChild
				}
			}

			nodes = append(nodes, Node{
				Display: collapsedName + "/",
				Depth:   depth,
				IsDir:   true,
			})

			flatten(collapsed, depth+1, dirPath)
		}

		for _, fe := range sortedFiles {
			nodes = append(nodes, Node{
				Display: basename(fe.Path),
				Path:    fe.Path,
				Depth:   depth,
				IsDir:   false,
				Added:   fe.Insertions,
				Removed: fe.Deletions,
			})
		}
	}

	flatten(root, 0, "")
	return nodes
}

func basename(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// FileNodeIndices returns the indices of file (non-directory) nodes.
func FileNodeIndices(nodes []Node) []int {
	var indices []int
	for i, n := range nodes {
		if !n.IsDir {
			indices = append(indices, i)
		}
	}
	return indices
}

// State is the cursor/scroll bookkeeping for an interactive tree sidebar.
type State struct {
	Cursor int
	Scroll int
}

// ClampCursor ensures Cursor stays within the bounds of the file nodes.
func (s *State) ClampCursor(nodes []Node) {
	fileIndices := FileNodeIndices(nodes)
	if len(fileIndices) == 0 {
		s.Cursor = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(fileIndices) {
		s.Cursor = len(fileIndices) - 1
	}
}

// CursorPath returns the file path at the current cursor position.
func (s *State) CursorPath(nodes []Node) string {
	fileIndices := FileNodeIndices(nodes)
	if len(fileIndices) == 0 {
		return ""
	}
	s.ClampCursor(nodes)
	return nodes[fileIndices[s.Cursor]].Path
}

// CursorNodeIndex returns the Nodes index for the current cursor.
func (s *State) CursorNodeIndex(nodes []Node) int {
	fileIndices := FileNodeIndices(nodes)
	if len(fileIndices) == 0 {
		return -1
	}
	s.ClampCursor(nodes)
	return fileIndices[s.Cursor]
}

// InitCursorFromPath sets the cursor to the node matching currentPath, or
// 0 if no match exists.
func (s *State) InitCursorFromPath(nodes []Node, currentPath string) {
	if currentPath == "" {
		s.Cursor = 0
		return
	}
	fileIndices := FileNodeIndices(nodes)
	for ci, ni := range fileIndices {
		if nodes[ni].Path == currentPath {
			s.Cursor = ci
			return
		}
	}
	s.Cursor = 0
}

// ClampScroll ensures Scroll stays within [0, len(nodes)-maxVisible].
func (s *State) ClampScroll(nodes []Node, maxVisible int) {
	total := len(nodes)
	if total <= maxVisible {
		s.Scroll = 0
		return
	}
	maxScroll := total - maxVisible
	if s.Scroll < 0 {
		s.Scroll = 0
	}
	if s.Scroll > maxScroll {
		s.Scroll = maxScroll
	}
}

// EnsureCursorVisible scrolls so the cursor's node is within the visible
// window.
func (s *State) EnsureCursorVisible(nodes []Node, maxVisible int) {
	nodeIdx := s.CursorNodeIndex(nodes)
	if nodeIdx < 0 {
		return
	}
	if maxVisible < 1 {
		maxVisible = 1
	}
	if nodeIdx < s.Scroll {
		s.Scroll = nodeIdx
	} else if nodeIdx >= s.Scroll+maxVisible {
		s.Scroll = nodeIdx - maxVisible + 1
	}
	s.ClampScroll(nodes, maxVisible)
}
