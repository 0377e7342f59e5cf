package render

import (
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/hierarchy"
)

// ViewKind tags a view command.
type ViewKind string

const (
	// KindFolderHeader is a collapsible folder header.
	KindFolderHeader ViewKind = "folder_header"
	// KindItemRow is a single item row.
	KindItemRow ViewKind = "item_row"
)

// View is one render command. Folder headers carry Count and Expanded and,
// when expanded, their rendered Children. Item rows carry the Item.
//
// Views returned by Render may be shared with later passes and must not be
// modified.
type View struct {
	Kind     ViewKind     `json:"kind"`
	Name     string       `json:"name"`
	Path     string       `json:"path"`
	Depth    int          `json:"depth"`
	Count    int          `json:"count,omitempty"`
	Expanded bool         `json:"expanded,omitempty"`
	Item     *domain.Item `json:"item,omitempty"`
	Children []*View      `json:"children,omitempty"`
}

// Stats describes the last Render pass.
type Stats struct {
	// Rendered counts views built during the pass.
	Rendered int `json:"rendered"`
	// Reused counts subtrees taken from the previous pass unchanged.
	Reused int `json:"reused"`
}

type memoEntry struct {
	node     *hierarchy.Node
	depth    int
	expanded bool
	view     *View
}

// Renderer walks a tree and emits views, reusing the previous pass's view for
// any subtree whose node pointer, depth and expanded flag are unchanged.
// Pair it with hierarchy.Builder so unchanged subtrees keep their pointers.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	state *CollapseState
	memo  map[string]memoEntry
	stats Stats
}

// NewRenderer creates a Renderer. A nil state starts with every folder expanded.
func NewRenderer(state *CollapseState) *Renderer {
	if state == nil {
		state = NewCollapseState()
	}
	return &Renderer{state: state, memo: make(map[string]memoEntry)}
}

// State returns the collapse state the renderer consults.
func (r *Renderer) State() *CollapseState {
	return r.state
}

// Stats returns counters for the last Render call.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render returns the view for root. The synthetic root is always emitted as
// an expanded folder header at depth -1; callers typically display only its
// children. A nil root renders as an empty header.
func (r *Renderer) Render(root *hierarchy.Node) *View {
	r.stats = Stats{}
	next := make(map[string]memoEntry, len(r.memo))
	if root == nil {
		return &View{Kind: KindFolderHeader, Name: hierarchy.RootName, Path: hierarchy.RootPath, Depth: hierarchy.RootDepth, Expanded: true}
	}
	v := r.render(root, true, next)
	r.memo = next
	return v
}

func (r *Renderer) render(n *hierarchy.Node, isRoot bool, next map[string]memoEntry) *View {
	key := memoKey(n)
	expanded := isRoot || r.state.IsExpanded(n.Path)

	if prev, ok := r.memo[key]; ok && prev.node == n && prev.depth == n.Depth && prev.expanded == expanded {
		r.stats.Reused++
		r.carry(prev.view, next)
		return prev.view
	}

	var v *View
	if n.IsItem() {
		v = &View{Kind: KindItemRow, Name: n.Name, Path: n.Path, Depth: n.Depth, Item: n.Item}
	} else {
		v = &View{
			Kind:     KindFolderHeader,
			Name:     n.Name,
			Path:     n.Path,
			Depth:    n.Depth,
			Count:    hierarchy.CountItems(n),
			Expanded: expanded,
		}
		if expanded {
			for _, c := range n.Children {
				if c.IsFolder() && !hierarchy.HasItems(c) {
					continue
				}
				v.Children = append(v.Children, r.render(c, false, next))
			}
		}
	}

	r.stats.Rendered++
	next[key] = memoEntry{node: n, depth: n.Depth, expanded: expanded, view: v}
	return v
}

// carry moves memo entries of a reused subtree into the next pass.
func (r *Renderer) carry(v *View, next map[string]memoEntry) {
	key := viewKey(v)
	if e, ok := r.memo[key]; ok {
		next[key] = e
	}
	for _, c := range v.Children {
		r.carry(c, next)
	}
}

// Toggle flips the folder at path and returns the new expanded value.
func (r *Renderer) Toggle(path string) bool {
	expanded := r.state.Toggle(path)
	r.invalidate(path)
	return expanded
}

// Expand expands the folder at path.
func (r *Renderer) Expand(path string) {
	if r.state.SetExpanded(path, true) {
		r.invalidate(path)
	}
}

// Collapse collapses the folder at path.
func (r *Renderer) Collapse(path string) {
	if r.state.SetExpanded(path, false) {
		r.invalidate(path)
	}
}

// ExpandAll expands every folder and drops the memo.
func (r *Renderer) ExpandAll() {
	r.state.Reset()
	r.memo = make(map[string]memoEntry)
}

// invalidate drops the memo for path and every ancestor up to the root.
func (r *Renderer) invalidate(path string) {
	segs := hierarchy.Segments(path)
	for i := len(segs); i >= 0; i-- {
		p := hierarchy.JoinSegments(segs[:i])
		delete(r.memo, string(hierarchy.KindFolder)+":"+p)
	}
	// raw form, for callers passing an unnormalized path
	delete(r.memo, string(hierarchy.KindFolder)+":"+path)
}

func memoKey(n *hierarchy.Node) string {
	return string(n.Kind) + ":" + n.Path
}

func viewKey(v *View) string {
	if v.Kind == KindItemRow {
		return string(hierarchy.KindItem) + ":" + v.Path
	}
	return string(hierarchy.KindFolder) + ":" + v.Path
}
