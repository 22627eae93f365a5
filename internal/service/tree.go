package service

import (
	"cmp"
	"slices"

	"selpkm/internal/storage"
)

// TreeNode is a container with its child containers.
type TreeNode struct {
	Container storage.Container `json:"container" yaml:"container"`
	Children  []*TreeNode       `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildTree nests containers by parent id. Containers without a parent, or
// whose parent is not in the list, become roots. Siblings are ordered by id.
func BuildTree(containers []storage.Container) []*TreeNode {
	sorted := slices.Clone(containers)
	slices.SortFunc(sorted, func(a, b storage.Container) int {
		return cmp.Compare(a.ID, b.ID)
	})

	nodes := make(map[int64]*TreeNode, len(sorted))
	for _, c := range sorted {
		nodes[c.ID] = &TreeNode{Container: c}
	}

	roots := []*TreeNode{}
	for _, c := range sorted {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && *c.ParentID != c.ID {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Walk visits every node depth first, passing its depth from the roots.
func Walk(roots []*TreeNode, fn func(node *TreeNode, depth int)) {
	var visit func(nodes []*TreeNode, depth int)
	visit = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			visit(n.Children, depth+1)
		}
	}
	visit(roots, 0)
}
