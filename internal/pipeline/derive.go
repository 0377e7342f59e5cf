package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
)

// Derive applies search, filters and sort to items, in that order, and returns
// a new slice. The input slice and the items it points to are never modified.
func Derive(items []*domain.Item, q Query) []*domain.Item {
	out := Search(items, q.Search)
	out = ApplyFilters(out, q.Filters, q.Identity)
	return Sort(out, q.Sort)
}

// Search keeps items whose name, path or assignee contains text, ignoring case.
// Matching uses Unicode case folding rather than ASCII lowercasing.
func Search(items []*domain.Item, text string) []*domain.Item {
	out := make([]*domain.Item, 0, len(items))
	if strings.TrimSpace(text) == "" {
		for _, it := range items {
			if it != nil {
				out = append(out, it)
			}
		}
		return out
	}

	folder := cases.Fold()
	needle := folder.String(text)
	for _, it := range items {
		if it == nil {
			continue
		}
		if containsFolded(folder, it.Name, needle) ||
			containsFolded(folder, it.Path, needle) ||
			(it.Assignee != nil && containsFolded(folder, *it.Assignee, needle)) {
			out = append(out, it)
		}
	}
	return out
}

func containsFolded(folder cases.Caser, haystack, needle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(folder.String(haystack), needle)
}

// ApplyFilters keeps items matching every active known filter.
// FilterMine is skipped when identity is empty. Unknown filters are ignored.
func ApplyFilters(items []*domain.Item, filters FilterSet, identity string) []*domain.Item {
	mine := filters.Has(FilterMine) && strings.TrimSpace(identity) != ""
	churn := filters.Has(FilterHighChurn)

	out := make([]*domain.Item, 0, len(items))
	for _, it := range items {
		if mine && !IsMine(it, identity) {
			continue
		}
		if churn && !IsHighChurn(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// IsMine reports whether it is assigned to identity, ignoring case.
func IsMine(it *domain.Item, identity string) bool {
	if it == nil || it.Assignee == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*it.Assignee), strings.TrimSpace(identity))
}

// IsHighChurn reports whether it was reworked more than the churn threshold.
func IsHighChurn(it *domain.Item) bool {
	return it != nil && it.RevisionCount > constants.HighChurnThreshold
}

// Sort returns a stably sorted copy of items. Unknown keys keep input order.
func Sort(items []*domain.Item, key SortKey) []*domain.Item {
	out := append([]*domain.Item(nil), items...)
	less := comparator(key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func comparator(key SortKey) func(a, b *domain.Item) bool {
	switch key {
	case SortByFolder:
		return func(a, b *domain.Item) bool {
			return a.ParentPathValue() < b.ParentPathValue()
		}
	case SortByRecency:
		return func(a, b *domain.Item) bool {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	case SortByStatus:
		return func(a, b *domain.Item) bool {
			return StatusPriority(a) < StatusPriority(b)
		}
	case SortByChurn:
		return func(a, b *domain.Item) bool {
			return a.RevisionCount > b.RevisionCount
		}
	}
	return nil
}

// StatusPriority ranks items for SortByStatus: reworked pending items first,
// then pending, received and implemented. Unknown statuses sort last.
func StatusPriority(it *domain.Item) int {
	switch {
	case it.NeedsRework():
		return 0
	case it.Status == constants.ItemStatusPending:
		return 1
	case it.Status == constants.ItemStatusReceived:
		return 2
	case it.Status == constants.ItemStatusImplemented:
		return 3
	}
	return 4
}
