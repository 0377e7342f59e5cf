// Package viewmodel wires the derived-list pipeline, the tree builder and the
// renderer into one session, and routes status changes through transition
// guards. It performs no I/O: callers feed it item snapshots and execute the
// mutations it returns.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain, internal/errors,
//     internal/hierarchy, internal/pipeline, internal/render, internal/transition, std lib
//   - MUST NOT import: internal/store, internal/cli, internal/tui
package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/mrz1836/assetrack/internal/clock"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/hierarchy"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/render"
	"github.com/mrz1836/assetrack/internal/transition"
)

// Stats reports recomputation counters for the session.
type Stats struct {
	Pipeline pipeline.Stats `json:"pipeline"`
	Render   render.Stats   `json:"render"`
}

// Session holds the current item snapshot and everything derived from it.
//
// Items passed to SetItems are the last known-good state. ApplyOptimistic
// patches a working copy so the view reflects a change before the store
// confirms it. Each write is pending until Commit folds it into the
// known-good snapshot or Rollback drops it and replays the writes still in
// flight.
//
// Session is not safe for concurrent use; drive it from one event loop.
type Session struct {
	logger    zerolog.Logger
	clock     clock.Clock
	items     []*domain.Item
	knownGood []*domain.Item
	pending   []domain.Mutation
	query     pipeline.Query
	pipeline  *pipeline.Pipeline
	builder   *hierarchy.Builder
	renderer  *render.Renderer
	guards    map[string]*transition.Guard
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the clock used for transition timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithCollapseState seeds the renderer with saved folder state.
func WithCollapseState(state *render.CollapseState) Option {
	return func(s *Session) {
		if state != nil {
			s.renderer = render.NewRenderer(state)
		}
	}
}

// WithQuery sets the initial query.
func WithQuery(q pipeline.Query) Option {
	return func(s *Session) { s.query = q }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		logger:   zerolog.Nop(),
		clock:    clock.RealClock{},
		builder:  hierarchy.NewBuilder(),
		renderer: render.NewRenderer(nil),
		guards:   make(map[string]*transition.Guard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "viewmodel").Logger()
	s.pipeline = pipeline.New(s.logger)
	return s
}

// SetItems replaces the snapshot with a store-confirmed list. It becomes the
// known-good state, and writes still pending are replayed on top of it. Open
// guards for items that disappeared are dropped.
func (s *Session) SetItems(items []*domain.Item) {
	s.knownGood = items
	s.items = items
	for _, p := range s.pending {
		if next, ok := s.patched(s.items, p); ok {
			s.items = next
		}
	}

	for id := range s.guards {
		if s.find(id) == nil {
			s.logger.Debug().Str("item_id", id).Msg("dropping guard for removed item")
			delete(s.guards, id)
		}
	}
}

// Items returns the current working snapshot.
func (s *Session) Items() []*domain.Item {
	return s.items
}

// Query returns the current query.
func (s *Session) Query() pipeline.Query {
	return s.query
}

// SetSearch sets the search text.
func (s *Session) SetSearch(text string) {
	s.query.Search = text
}

// ToggleFilter flips a filter and reports whether it is now active.
func (s *Session) ToggleFilter(f pipeline.Filter) bool {
	s.query.Filters = s.query.Filters.Toggle(f)
	return s.query.Filters.Has(f)
}

// SetSort sets the sort key.
func (s *Session) SetSort(key pipeline.SortKey) {
	s.query.Sort = key
}

// SetIdentity sets the identity used by the "mine" filter. Empty means unknown.
func (s *Session) SetIdentity(identity string) {
	s.query.Identity = identity
}

// Derived returns the searched, filtered and sorted item list.
func (s *Session) Derived() []*domain.Item {
	return s.pipeline.Derive(s.items, s.query)
}

// Tree returns the tree for the derived list.
func (s *Session) Tree() *hierarchy.Node {
	return s.builder.Build(s.Derived())
}

// View renders the tree.
func (s *Session) View() *render.View {
	return s.renderer.Render(s.Tree())
}

// Rows returns the visible rows of the rendered tree in display order.
func (s *Session) Rows() []render.Row {
	return render.Flatten(s.View())
}

// ToggleFolder flips the folder at path and returns the new expanded value.
func (s *Session) ToggleFolder(path string) bool {
	return s.renderer.Toggle(path)
}

// CollapseState returns the renderer's folder state, for persistence.
func (s *Session) CollapseState() *render.CollapseState {
	return s.renderer.State()
}

// Stats returns the pipeline and renderer counters.
func (s *Session) Stats() Stats {
	return Stats{Pipeline: s.pipeline.Stats(), Render: s.renderer.Stats()}
}

func (s *Session) find(itemID string) *domain.Item {
	for _, it := range s.items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}
