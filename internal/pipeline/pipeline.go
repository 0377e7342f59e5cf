package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/mrz1836/assetrack/internal/domain"
)

// Stats counts how many times each stage actually recomputed.
type Stats struct {
	SearchRuns int `json:"search_runs"`
	FilterRuns int `json:"filter_runs"`
	SortRuns   int `json:"sort_runs"`
}

type searchMemo struct {
	valid bool
	in    []*domain.Item
	text  string
	out   []*domain.Item
}

type filterMemo struct {
	valid    bool
	in       []*domain.Item
	filters  FilterSet
	identity string
	out      []*domain.Item
}

type sortMemo struct {
	valid bool
	in    []*domain.Item
	key   SortKey
	out   []*domain.Item
}

// Pipeline is a memoizing Derive. Each stage keeps its last inputs and output
// and only recomputes when one of its own inputs changed. Slices are compared
// element by element on pointer identity, so a stage whose upstream produced
// the same items is skipped even if the upstream itself recomputed.
//
// When nothing changed Derive returns the previous output slice, which lets
// the tree builder short-circuit as well.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	logger zerolog.Logger
	search searchMemo
	filter filterMemo
	sorted sortMemo
	stats  Stats
}

// New creates a Pipeline that logs unknown sort keys and filters at debug level.
func New(logger zerolog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With().Str("component", "pipeline").Logger()}
}

// Derive returns the derived list for items and q.
func (p *Pipeline) Derive(items []*domain.Item, q Query) []*domain.Item {
	searched := p.runSearch(items, q.Search)
	filtered := p.runFilter(searched, q.Filters, q.Identity)
	return p.runSort(filtered, q.Sort)
}

// Stats returns the recompute counters.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Reset drops all memoized state and counters.
func (p *Pipeline) Reset() {
	p.search = searchMemo{}
	p.filter = filterMemo{}
	p.sorted = sortMemo{}
	p.stats = Stats{}
}

func (p *Pipeline) runSearch(items []*domain.Item, text string) []*domain.Item {
	m := &p.search
	if m.valid && m.text == text && sameItems(m.in, items) {
		return m.out
	}
	out := Search(items, text)
	p.stats.SearchRuns++
	*m = searchMemo{valid: true, in: copyItems(items), text: text, out: reuse(m.out, out)}
	return m.out
}

func (p *Pipeline) runFilter(items []*domain.Item, filters FilterSet, identity string) []*domain.Item {
	m := &p.filter
	if m.valid && m.identity == identity && m.filters.Equal(filters) && sameItems(m.in, items) {
		return m.out
	}
	for _, f := range filters.Unknown() {
		p.logger.Debug().Str("filter", string(f)).Msg("ignoring unknown filter")
	}
	if filters.Has(FilterMine) && identity == "" {
		p.logger.Debug().Msg("identity unknown, mine filter not applied")
	}
	out := ApplyFilters(items, filters, identity)
	p.stats.FilterRuns++
	*m = filterMemo{valid: true, in: copyItems(items), filters: filters, identity: identity, out: reuse(m.out, out)}
	return m.out
}

func (p *Pipeline) runSort(items []*domain.Item, key SortKey) []*domain.Item {
	m := &p.sorted
	if m.valid && m.key == key && sameItems(m.in, items) {
		return m.out
	}
	if key != "" && !key.IsValid() {
		p.logger.Debug().Str("sort", string(key)).Msg("unknown sort key, keeping input order")
	}
	out := Sort(items, key)
	p.stats.SortRuns++
	*m = sortMemo{valid: true, in: copyItems(items), key: key, out: reuse(m.out, out)}
	return m.out
}

// reuse returns prev when it holds the same items as next, keeping the output
// slice stable for downstream memo checks.
func reuse(prev, next []*domain.Item) []*domain.Item {
	if prev != nil && sameItems(prev, next) {
		return prev
	}
	return next
}

func copyItems(items []*domain.Item) []*domain.Item {
	return append([]*domain.Item(nil), items...)
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
