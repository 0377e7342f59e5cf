package hierarchy

import "github.com/mrz1836/assetrack/internal/domain"

// NodeKind tags the variant held by a Node.
type NodeKind string

const (
	// KindFolder is an internal grouping node.
	KindFolder NodeKind = "folder"
	// KindItem is a leaf wrapping one item.
	KindItem NodeKind = "item"
)

// Root node constants.
const (
	RootName  = "root"
	RootPath  = ""
	RootDepth = -1
)

// Node is a folder or an item in the tree.
//
// Path is the node's identity across rebuilds: for folders it is the
// "/"-joined prefix of segments, for items it is the item's own path.
// Depth is the distance from the synthetic root, which sits at -1.
//
// Trees are never mutated after Build returns.
type Node struct {
	Kind     NodeKind
	Name     string
	Path     string
	Depth    int
	Children []*Node
	Item     *domain.Item
}

// IsFolder reports whether n is a folder.
func (n *Node) IsFolder() bool {
	return n != nil && n.Kind == KindFolder
}

// IsItem reports whether n is an item leaf.
func (n *Node) IsItem() bool {
	return n != nil && n.Kind == KindItem
}

// Folders returns the folder children of n in order.
func (n *Node) Folders() []*Node {
	return n.childrenOf(KindFolder)
}

// Items returns the item children of n in order.
func (n *Node) Items() []*Node {
	return n.childrenOf(KindItem)
}

func (n *Node) childrenOf(kind NodeKind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// CountItems returns the number of item nodes under n.
// An item node counts as one.
func CountItems(n *Node) int {
	if n == nil {
		return 0
	}
	if n.IsItem() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += CountItems(c)
	}
	return total
}

// HasItems reports whether any descendant of n (or n itself) is an item.
func HasItems(n *Node) bool {
	if n == nil {
		return false
	}
	if n.IsItem() {
		return true
	}
	for _, c := range n.Children {
		if HasItems(c) {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns the node with the given path, or nil.
func Find(root *Node, path string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Path == path && n != root {
			found = n
			return false
		}
		return true
	})
	return found
}
