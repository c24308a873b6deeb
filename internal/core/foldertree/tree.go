// Package foldertree rebuilds the navigable folder hierarchy from the
// canonical folder list and the live document set. The tree is never
// persisted: every read derives it fresh from the current snapshot.
package foldertree

import (
	"sort"
	"strings"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

// Node is one folder in the tree. Path is the full slash-joined path
// from the root; the root itself has an empty path. FileCount counts
// documents whose resolved path equals this node's path exactly.
type Node struct {
	Name         string  `json:"name"`
	Path         string  `json:"path"`
	Children     []*Node `json:"children,omitempty"`
	FileCount    int     `json:"file_count"`
	IsExpandable bool    `json:"is_expandable"`

	canonical bool
}

// Build walks the canonical folders in definition order, then hangs
// document counts off the matching nodes. Documents whose path is not
// canonical still get a node: an unclassified path must never break
// the tree, it simply appears as a new leaf.
func Build(canonicalFolders []string, docs []domain.DocumentRef) *Node {
	root := &Node{canonical: true}
	index := map[string]*Node{"": root}

	for _, path := range canonicalFolders {
		ensurePath(index, path, true)
	}
	for _, doc := range docs {
		node := ensurePath(index, doc.Path, false)
		node.FileCount++
	}

	finalize(root)
	return root
}

// ensurePath creates the node for path and any missing ancestors,
// returning the leaf. Nodes already present are reused, so siblings
// never duplicate.
func ensurePath(index map[string]*Node, path string, canonical bool) *Node {
	if node, ok := index[path]; ok {
		return node
	}

	current := index[""]
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		prefix := strings.Join(segments[:i+1], "/")
		child, ok := index[prefix]
		if !ok {
			child = &Node{Name: segment, Path: prefix, canonical: canonical}
			index[prefix] = child
			current.Children = append(current.Children, child)
		}
		current = child
	}
	return current
}

// finalize orders unclassified siblings lexicographically after the
// canonical ones and computes expandability bottom-up.
func finalize(node *Node) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.canonical != b.canonical {
			return a.canonical
		}
		if !a.canonical {
			return a.Name < b.Name
		}
		return false
	})
	for _, child := range node.Children {
		finalize(child)
	}
	node.IsExpandable = len(node.Children) > 0 || node.FileCount > 0
}

// FilterEmpty prunes subtrees that hold no files anywhere beneath
// them. It returns nil when the entire tree is empty. The input is not
// modified.
func FilterEmpty(node *Node) *Node {
	if node == nil {
		return nil
	}

	var kept []*Node
	for _, child := range node.Children {
		if pruned := FilterEmpty(child); pruned != nil {
			kept = append(kept, pruned)
		}
	}
	if node.FileCount == 0 && len(kept) == 0 {
		return nil
	}

	out := *node
	out.Children = kept
	out.IsExpandable = len(kept) > 0 || out.FileCount > 0
	return &out
}
