// Package domain provides shared domain types for assetrack.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
package domain

import (
	"time"

	"github.com/mrz1836/assetrack/internal/constants"
)

// Item is a tracked file within a project.
//
// Items are owned by the item store. The view-model treats an Item as an
// immutable value for the duration of a render pass and only requests changes
// through a Mutation.
//
// Example YAML representation:
//
//	id: item-6f1c...
//	project_id: proj-91ab...
//	name: hero.png
//	path: web/img/hero.png
//	parent_path: web/img
//	status: received
//	assignee: dana@example.com
//	revision_count: 1
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id" yaml:"id"`

	// ProjectID links the item to its project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Name is the last segment of Path.
	Name string `json:"name" yaml:"name"`

	// Path is the full slash-delimited location, unique within a project.
	Path string `json:"path" yaml:"path"`

	// ParentPath is the folder containing the item. Nil means the project root.
	ParentPath *string `json:"parent_path,omitempty" yaml:"parent_path,omitempty"`

	// Status is the current lifecycle state.
	Status constants.ItemStatus `json:"status" yaml:"status"`

	// Assignee is a free-text identity reference, typically an email.
	Assignee *string `json:"assignee,omitempty" yaml:"assignee,omitempty"`

	// Note is free text. A justified rework overwrites it with the justification.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`

	// RevisionCount is incremented by the store on every justified backward transition.
	RevisionCount int `json:"revision_count" yaml:"revision_count"`

	// CreatedAt is when the item was imported.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt changes on every applied mutation.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// ReceivedAt is set when the item moves to received.
	ReceivedAt *time.Time `json:"received_at,omitempty" yaml:"received_at,omitempty"`

	// ImplementedAt is set when the item moves to implemented.
	ImplementedAt *time.Time `json:"implemented_at,omitempty" yaml:"implemented_at,omitempty"`
}

// ParentPathValue returns the parent path or "" for root-level items.
func (it *Item) ParentPathValue() string {
	if it == nil || it.ParentPath == nil {
		return ""
	}
	return *it.ParentPath
}

// AssigneeValue returns the assignee or "" when unassigned.
func (it *Item) AssigneeValue() string {
	if it == nil || it.Assignee == nil {
		return ""
	}
	return *it.Assignee
}

// NeedsRework reports whether the item is pending after at least one rework.
func (it *Item) NeedsRework() bool {
	return it.Status == constants.ItemStatusPending && it.RevisionCount > 0
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	c.ParentPath = cloneString(it.ParentPath)
	c.Assignee = cloneString(it.Assignee)
	c.ReceivedAt = cloneTime(it.ReceivedAt)
	c.ImplementedAt = cloneTime(it.ImplementedAt)
	return &c
}

// Equal reports whether two items hold the same values.
// Pointer fields are compared by the values they point to.
func (it *Item) Equal(other *Item) bool {
	if it == other {
		return true
	}
	if it == nil || other == nil {
		return false
	}
	return it.ID == other.ID &&
		it.ProjectID == other.ProjectID &&
		it.Name == other.Name &&
		it.Path == other.Path &&
		equalString(it.ParentPath, other.ParentPath) &&
		it.Status == other.Status &&
		equalString(it.Assignee, other.Assignee) &&
		it.Note == other.Note &&
		it.RevisionCount == other.RevisionCount &&
		it.CreatedAt.Equal(other.CreatedAt) &&
		it.UpdatedAt.Equal(other.UpdatedAt) &&
		equalTime(it.ReceivedAt, other.ReceivedAt) &&
		equalTime(it.ImplementedAt, other.ImplementedAt)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
