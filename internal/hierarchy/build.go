package hierarchy

import (
	"sort"

	"github.com/mrz1836/assetrack/internal/domain"
)

// Build produces a tree from items. The returned root is a synthetic folder
// named "root" with path "" at depth -1.
//
// Items are placed in parent-path order (root-level items first); items sharing
// a parent keep their input order. Folders are created on first use and looked
// up by name afterwards, so every distinct path prefix yields exactly one folder
// and no folder is ever empty. Malformed parent paths are segment-filtered.
func Build(items []*domain.Item) *Node {
	root := &Node{Kind: KindFolder, Name: RootName, Path: RootPath, Depth: RootDepth}

	ordered := make([]*domain.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			ordered = append(ordered, it)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ParentPathValue() < ordered[j].ParentPathValue()
	})

	for _, it := range ordered {
		place(root, it)
	}
	return root
}

func place(root *Node, it *domain.Item) {
	segs := Segments(it.ParentPathValue())
	if len(segs) == 0 {
		root.Children = append(root.Children, newItemNode(it, 0))
		return
	}

	current := root
	for i, seg := range segs {
		current = findOrCreateFolder(current, seg, JoinSegments(segs[:i+1]), i)
	}
	current.Children = append(current.Children, newItemNode(it, len(segs)))
}

func findOrCreateFolder(parent *Node, name, path string, depth int) *Node {
	for _, c := range parent.Children {
		if c.Kind == KindFolder && c.Name == name {
			return c
		}
	}
	folder := &Node{Kind: KindFolder, Name: name, Path: path, Depth: depth}
	parent.Children = append(parent.Children, folder)
	return folder
}

func newItemNode(it *domain.Item, depth int) *Node {
	name := it.Name
	if name == "" {
		name = BaseName(it.Path)
	}
	return &Node{Kind: KindItem, Name: name, Path: it.Path, Depth: depth, Item: it}
}
