package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/hierarchy"
	"github.com/mrz1836/assetrack/internal/transition"
)

// ImportResult summarizes an ImportPaths call.
type ImportResult struct {
	// Imported holds the newly created items in input order.
	Imported []*domain.Item `json:"imported"`
	// Skipped counts blank lines, comments and paths already present.
	Skipped int `json:"skipped"`
}

// ImportPaths creates one pending item per path. Paths are normalized; blank
// lines, lines starting with '#', and paths already in the project (or earlier
// in the same input) are skipped.
func (s *FileStore) ImportPaths(ctx context.Context, project, actor string, paths []string) (*ImportResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := s.checkProject(project); err != nil {
		return nil, fmt.Errorf("failed to import paths: %w", err)
	}

	result := &ImportResult{Imported: []*domain.Item{}}
	err := s.withLock(ctx, project, func() error {
		doc, err := s.readDoc(project)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(doc.Items))
		for _, it := range doc.Items {
			seen[it.Path] = true
		}

		now := s.clock.Now()
		for _, raw := range paths {
			line := strings.TrimSpace(raw)
			if line == "" || strings.HasPrefix(line, "#") {
				result.Skipped++
				continue
			}
			path := hierarchy.Normalize(line)
			if path == "" || seen[path] {
				result.Skipped++
				continue
			}
			seen[path] = true

			it := &domain.Item{
				ID:         newItemID(),
				ProjectID:  doc.Project.ID,
				Name:       hierarchy.BaseName(path),
				Path:       path,
				ParentPath: hierarchy.ParentOf(path),
				Status:     constants.ItemStatusPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			doc.Items = append(doc.Items, it)
			result.Imported = append(result.Imported, it)
		}

		if len(result.Imported) == 0 {
			return nil
		}
		return s.writeDoc(project, doc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import paths into '%s': %w", project, err)
	}

	s.logger.Debug().
		Str("project", project).
		Str("actor", actor).
		Int("imported", len(result.Imported)).
		Int("skipped", result.Skipped).
		Msg("paths imported")
	return result, nil
}

// ListItems returns the project's items in stored order.
func (s *FileStore) ListItems(ctx context.Context, project string) ([]*domain.Item, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := s.checkProject(project); err != nil {
		return nil, err
	}
	doc, err := s.readDoc(project)
	if err != nil {
		return nil, err
	}
	if doc.Items == nil {
		return []*domain.Item{}, nil
	}
	return doc.Items, nil
}

// GetItem finds an item by ID, falling back to its normalized path.
func (s *FileStore) GetItem(ctx context.Context, project, ref string) (*domain.Item, error) {
	items, err := s.ListItems(ctx, project)
	if err != nil {
		return nil, err
	}
	if it := findItem(items, ref); it != nil {
		return it, nil
	}
	return nil, fmt.Errorf("%w: %s", atlaserrors.ErrItemNotFound, ref)
}

// FindItem returns the item whose ID or normalized path equals ref, or nil.
func FindItem(items []*domain.Item, ref string) *domain.Item {
	return findItem(items, ref)
}

func findItem(items []*domain.Item, ref string) *domain.Item {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	for _, it := range items {
		if it.ID == ref {
			return it
		}
	}
	path := hierarchy.Normalize(ref)
	for _, it := range items {
		if it.Path == path {
			return it
		}
	}
	return nil
}

// Apply executes m against the project under the project lock.
//
// set_status moves status, stamps the lifecycle timestamps in m and appends a
// history row. A backward move through set_status is refused; it must come as
// set_status_with_justification, which also overwrites the note, increments
// RevisionCount and records the justification as the history comment. A
// justified mutation that is not a backward move is refused.
// The project file is written before the history row; if the append fails the
// item is restored and the error returned. Every applied mutation advances
// UpdatedAt.
func (s *FileStore) Apply(ctx context.Context, project, actor string, m domain.Mutation) (*domain.Item, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := validateMutation(m); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", m.Kind, err)
	}
	if err := s.checkProject(project); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", m.Kind, err)
	}

	var updated *domain.Item
	err := s.withLock(ctx, project, func() error {
		doc, err := s.readDoc(project)
		if err != nil {
			return err
		}

		idx := -1
		for i, it := range doc.Items {
			if it.ID == m.ItemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s", atlaserrors.ErrItemNotFound, m.ItemID)
		}

		if m.Kind == domain.MutationDeleteItem {
			doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
			return s.writeDoc(project, doc)
		}

		it := doc.Items[idx].Clone()
		now := s.nextUpdate(it.UpdatedAt)
		var entry *domain.HistoryEntry

		switch m.Kind {
		case domain.MutationSetStatus:
			if transition.IsBackward(it.Status, m.Status) {
				return atlaserrors.ErrJustificationRequired
			}
			entry = newHistoryEntry(it, m.Status, actor, "", now)
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
			if !transition.IsBackward(it.Status, m.Status) {
				return fmt.Errorf("%w: %s to %s is not a backward move; use set_status",
					atlaserrors.ErrInvalidMutation, it.Status, m.Status)
			}
			entry = newHistoryEntry(it, m.Status, actor, *m.Note, now)
			it.Status = m.Status
			it.Note = *m.Note
			it.RevisionCount++
		case domain.MutationSetAssignee:
			it.Assignee = normalizeAssignee(m.Assignee)
		case domain.MutationSetNote:
			it.Note = *m.Note
		case domain.MutationDeleteItem:
		}
		it.UpdatedAt = now

		prev := doc.Items[idx]
		doc.Items[idx] = it
		if err := s.writeDoc(project, doc); err != nil {
			return err
		}
		if entry != nil {
			if err := s.appendHistory(project, entry); err != nil {
				// A status change is never kept without its audit row.
				doc.Items[idx] = prev
				if rerr := s.writeDoc(project, doc); rerr != nil {
					s.logger.Error().Err(rerr).
						Str("project", project).
						Str("item_id", it.ID).
						Msg("failed to restore item after history append failed")
				}
				return err
			}
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s to '%s': %w", m.Kind, m.ItemID, err)
	}

	s.logger.Debug().
		Str("project", project).
		Str("item_id", m.ItemID).
		Str("kind", string(m.Kind)).
		Str("actor", actor).
		Msg("mutation applied")
	return updated, nil
}

// nextUpdate returns the current time, nudged past prev so UpdatedAt never
// goes backwards or repeats.
func (s *FileStore) nextUpdate(prev time.Time) time.Time {
	now := s.clock.Now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func validateMutation(m domain.Mutation) error {
	if strings.TrimSpace(m.ItemID) == "" {
		return fmt.Errorf("item ID %w", atlaserrors.ErrEmptyValue)
	}

	switch m.Kind {
	case domain.MutationSetStatus:
		if !m.Status.IsValid() {
			return fmt.Errorf("%w: %q", atlaserrors.ErrInvalidStatus, m.Status)
		}
	case domain.MutationSetStatusWithJustification:
		if !m.Status.IsValid() {
			return fmt.Errorf("%w: %q", atlaserrors.ErrInvalidStatus, m.Status)
		}
		if m.Note == nil {
			return atlaserrors.ErrJustificationRequired
		}
		if err := transition.ValidateJustification(*m.Note); err != nil {
			return err
		}
	case domain.MutationSetNote:
		if m.Note == nil {
			return fmt.Errorf("%w: set_note without note", atlaserrors.ErrInvalidMutation)
		}
	case domain.MutationSetAssignee, domain.MutationDeleteItem:
	default:
		return fmt.Errorf("%w: unknown kind %q", atlaserrors.ErrInvalidMutation, m.Kind)
	}
	return nil
}

func normalizeAssignee(a *string) *string {
	if a == nil {
		return nil
	}
	v := strings.TrimSpace(*a)
	if v == "" {
		return nil
	}
	return &v
}

func newHistoryEntry(it *domain.Item, to constants.ItemStatus, actor, comment string, at time.Time) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:        newHistoryID(),
		ItemID:    it.ID,
		ItemPath:  it.Path,
		OldStatus: it.Status,
		NewStatus: to,
		Actor:     actor,
		Comment:   comment,
		CreatedAt: at,
	}
}
