// Package pipeline derives the ordered item list that feeds the tree builder:
// text search, then predicate filters, then a stable sort.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/store, internal/cli, internal/tui
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

// SortKey selects the comparator applied in the sort stage.
type SortKey string

// Supported sort keys.
const (
	// SortByFolder orders by parent path, root-level items first.
	SortByFolder SortKey = constants.SortFolder

	// SortByRecency orders by UpdatedAt, newest first.
	SortByRecency SortKey = constants.SortRecency

	// SortByStatus orders by status priority: reworked pending, pending,
	// received, implemented.
	SortByStatus SortKey = constants.SortStatus

	// SortByChurn orders by RevisionCount, highest first.
	SortByChurn SortKey = constants.SortChurn
)

// String returns the string representation of the SortKey.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether k is a known sort key.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByFolder, SortByRecency, SortByStatus, SortByChurn:
		return true
	}
	return false
}

// ValidSortKeys returns all known sort keys.
func ValidSortKeys() []SortKey {
	return []SortKey{SortByFolder, SortByRecency, SortByStatus, SortByChurn}
}

// ParseSortKey converts s to a SortKey. It is used at the edges (flags,
// config); Derive itself tolerates unknown keys.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: %s)", atlaserrors.ErrInvalidSortKey, s, strings.Join(constants.ValidSortNames(), ", "))
	}
	return k, nil
}

// Filter names a predicate filter.
type Filter string

// Supported filters.
const (
	// FilterMine keeps items assigned to the current identity.
	FilterMine Filter = "mine"

	// FilterHighChurn keeps items reworked more than constants.HighChurnThreshold times.
	FilterHighChurn Filter = "high_churn"
)

// IsKnown reports whether f is a supported filter.
func (f Filter) IsKnown() bool {
	return f == FilterMine || f == FilterHighChurn
}

// FilterSet is an immutable set of active filters. The zero value is empty.
type FilterSet struct {
	names map[Filter]struct{}
}

// NewFilterSet returns a set holding the given filters.
func NewFilterSet(filters ...Filter) FilterSet {
	s := FilterSet{names: make(map[Filter]struct{}, len(filters))}
	for _, f := range filters {
		s.names[f] = struct{}{}
	}
	return s
}

// Has reports whether f is active.
func (s FilterSet) Has(f Filter) bool {
	_, ok := s.names[f]
	return ok
}

// Len returns the number of active filters.
func (s FilterSet) Len() int {
	return len(s.names)
}

// Toggle returns a copy of s with f flipped.
func (s FilterSet) Toggle(f Filter) FilterSet {
	out := NewFilterSet(s.List()...)
	if out.Has(f) {
		delete(out.names, f)
	} else {
		out.names[f] = struct{}{}
	}
	return out
}

// List returns the active filters sorted by name.
func (s FilterSet) List() []Filter {
	out := make([]Filter, 0, len(s.names))
	for f := range s.names {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether both sets hold the same filters.
func (s FilterSet) Equal(other FilterSet) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for f := range s.names {
		if !other.Has(f) {
			return false
		}
	}
	return true
}

// Unknown returns active filters Derive will ignore.
func (s FilterSet) Unknown() []Filter {
	var out []Filter
	for _, f := range s.List() {
		if !f.IsKnown() {
			out = append(out, f)
		}
	}
	return out
}

// Query holds every input of the derivation besides the items themselves.
type Query struct {
	// Search is matched case-insensitively against name, path and assignee.
	// Empty matches everything.
	Search string

	// Filters are combined with AND semantics.
	Filters FilterSet

	// Sort selects the comparator. Unknown keys keep input order.
	Sort SortKey

	// Identity is the current user's assignee value. Empty means unknown,
	// which turns FilterMine into a no-op.
	Identity string
}
