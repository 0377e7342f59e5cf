package hierarchy

import "github.com/mrz1836/assetrack/internal/domain"

// Builder rebuilds trees while keeping node pointers stable for the parts of
// the tree that did not change.
//
// An item node is reused when the previous tree had an Equal item at the same
// path and depth. A folder is reused when its depth is unchanged and every
// child resolved to the previous child pointer, in the same order. A status
// change on one item therefore only replaces nodes on that item's ancestor chain.
//
// Builder is not safe for concurrent use.
type Builder struct {
	items []*domain.Item
	root  *Node
	nodes map[string]*Node
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns a tree for items, reusing nodes from the previous call.
// When items is element-wise identical to the previous slice the previous
// root is returned as is.
func (b *Builder) Build(items []*domain.Item) *Node {
	if b.root != nil && sameItems(b.items, items) {
		return b.root
	}

	fresh := Build(items)
	if b.root != nil {
		fresh = b.reconcile(fresh)
	}

	b.items = append(b.items[:0:0], items...)
	b.root = fresh
	b.nodes = index(fresh)
	return fresh
}

// Root returns the last built tree, or nil before the first Build.
func (b *Builder) Root() *Node {
	return b.root
}

// Reset drops all memoized state.
func (b *Builder) Reset() {
	b.items = nil
	b.root = nil
	b.nodes = nil
}

// reconcile swaps nodes of fresh for their previous counterparts bottom-up.
func (b *Builder) reconcile(n *Node) *Node {
	prev := b.nodes[nodeKey(n)]

	if n.IsItem() {
		if prev != nil && prev.IsItem() && prev.Depth == n.Depth && prev.Item.Equal(n.Item) {
			return prev
		}
		return n
	}

	allReused := prev != nil && prev.IsFolder() && prev.Depth == n.Depth &&
		len(prev.Children) == len(n.Children)
	for i, c := range n.Children {
		r := b.reconcile(c)
		n.Children[i] = r
		if allReused && prev.Children[i] != r {
			allReused = false
		}
	}
	if allReused {
		return prev
	}
	return n
}

func sameItems(a, b []*domain.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// nodeKey separates folders from items that happen to share a path.
func nodeKey(n *Node) string {
	return string(n.Kind) + ":" + n.Path
}

func index(root *Node) map[string]*Node {
	out := make(map[string]*Node)
	Walk(root, func(n *Node) bool {
		out[nodeKey(n)] = n
		return true
	})
	return out
}
