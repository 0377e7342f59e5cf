package viewmodel

import (
	"github.com/mrz1836/assetrack/internal/domain"
)

// ApplyOptimistic patches the working snapshot with m the way the store will,
// so the next render shows the change immediately. m stays pending until
// Commit or Rollback reports the outcome of its write. The patched item is a
// new value; the known-good snapshot is untouched. Unknown items are ignored
// and reported as false.
func (s *Session) ApplyOptimistic(m domain.Mutation) bool {
	next, ok := s.patched(s.items, m)
	if !ok {
		return false
	}
	s.items = next
	s.pending = append(s.pending, m)
	s.logger.Debug().Str("item_id", m.ItemID).Str("kind", string(m.Kind)).Int("pending", len(s.pending)).Msg("optimistic update")
	return true
}

// Commit records that the write for m succeeded. Only m is folded into the
// known-good snapshot; other writes still in flight stay pending.
func (s *Session) Commit(m domain.Mutation) {
	if !s.settle(m) {
		return
	}
	if len(s.pending) == 0 {
		// Every optimistic change is confirmed, so the working snapshot is known-good.
		s.knownGood = s.items
		return
	}
	if next, ok := s.patched(s.knownGood, m); ok {
		s.knownGood = next
	}
}

// Rollback records that the write for m was rejected. The working snapshot
// is rebuilt from the known-good one plus the writes still pending.
func (s *Session) Rollback(m domain.Mutation) {
	if !s.settle(m) {
		return
	}
	items := s.knownGood
	for _, p := range s.pending {
		if next, ok := s.patched(items, p); ok {
			items = next
		}
	}
	s.items = items
	s.logger.Debug().Str("item_id", m.ItemID).Int("pending", len(s.pending)).Msg("rolled back rejected update")
}

// PendingWrites returns the number of optimistic writes awaiting Commit or Rollback.
func (s *Session) PendingWrites() int {
	return len(s.pending)
}

// Dirty reports whether the working snapshot differs from the known-good one.
func (s *Session) Dirty() bool {
	if len(s.pending) > 0 || len(s.items) != len(s.knownGood) {
		return true
	}
	for i := range s.items {
		if s.items[i] != s.knownGood[i] {
			return true
		}
	}
	return false
}

// settle removes the oldest pending write matching m. It reports false when
// m was never applied optimistically.
func (s *Session) settle(m domain.Mutation) bool {
	for i, p := range s.pending {
		if p.ItemID == m.ItemID && p.Kind == m.Kind {
			s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
			return true
		}
	}
	s.logger.Debug().Str("item_id", m.ItemID).Str("kind", string(m.Kind)).Msg("settled write was not pending")
	return false
}

// patched returns a copy of items with m applied, or false when m's item is
// not in items.
func (s *Session) patched(items []*domain.Item, m domain.Mutation) ([]*domain.Item, bool) {
	idx := -1
	for i, it := range items {
		if it.ID == m.ItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items, false
	}

	next := make([]*domain.Item, 0, len(items))
	next = append(next, items[:idx]...)
	if m.Kind != domain.MutationDeleteItem {
		it := items[idx].Clone()
		patch(it, m)
		it.UpdatedAt = s.clock.Now()
		next = append(next, it)
	}
	next = append(next, items[idx+1:]...)
	return next, true
}

func patch(it *domain.Item, m domain.Mutation) {
	switch m.Kind {
	case domain.MutationSetStatus:
		it.Status = m.Status
		if m.Timestamps != nil {
			if m.Timestamps.ReceivedAt != nil {
				t := *m.Timestamps.ReceivedAt
				it.ReceivedAt = &t
			}
			if m.Timestamps.ImplementedAt != nil {
				t := *m.Timestamps.ImplementedAt
				it.ImplementedAt = &t
			}
		}
	case domain.MutationSetStatusWithJustification:
		it.Status = m.Status
		if m.Note != nil {
			it.Note = *m.Note
		}
		it.RevisionCount++
	case domain.MutationSetAssignee:
		if m.Assignee == nil || *m.Assignee == "" {
			it.Assignee = nil
		} else {
			a := *m.Assignee
			it.Assignee = &a
		}
	case domain.MutationSetNote:
		if m.Note != nil {
			it.Note = *m.Note
		}
	case domain.MutationDeleteItem:
	}
}
