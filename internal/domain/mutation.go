package domain

import (
	"time"

	"github.com/mrz1836/assetrack/internal/constants"
)

// MutationKind identifies which change a Mutation requests.
type MutationKind string

// Mutation kinds understood by the item store.
const (
	// MutationSetStatus applies a forward (or same-rank) status change.
	MutationSetStatus MutationKind = "set_status"

	// MutationSetStatusWithJustification applies a justified backward change.
	// The store overwrites Note, increments RevisionCount and appends a history row.
	MutationSetStatusWithJustification MutationKind = "set_status_with_justification"

	// MutationSetAssignee sets or clears the assignee.
	MutationSetAssignee MutationKind = "set_assignee"

	// MutationSetNote overwrites the free-text note.
	MutationSetNote MutationKind = "set_note"

	// MutationDeleteItem removes the item.
	MutationDeleteItem MutationKind = "delete_item"
)

// TimestampPatch carries the lifecycle timestamps a forward transition sets.
// A move to pending sets neither.
type TimestampPatch struct {
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
	ImplementedAt *time.Time `json:"implemented_at,omitempty"`
}

// Mutation is a change request emitted by the view-model and executed by the
// item store. The view-model never applies it to persistent state itself.
type Mutation struct {
	Kind       MutationKind         `json:"kind"`
	ItemID     string               `json:"item_id"`
	Status     constants.ItemStatus `json:"status,omitempty"`
	Timestamps *TimestampPatch      `json:"timestamps,omitempty"`
	Note       *string              `json:"note,omitempty"`
	Assignee   *string              `json:"assignee,omitempty"`
}

// SetStatus builds a set_status mutation.
func SetStatus(itemID string, status constants.ItemStatus, patch *TimestampPatch) Mutation {
	return Mutation{Kind: MutationSetStatus, ItemID: itemID, Status: status, Timestamps: patch}
}

// SetStatusWithJustification builds a set_status_with_justification mutation.
func SetStatusWithJustification(itemID string, status constants.ItemStatus, note string) Mutation {
	return Mutation{Kind: MutationSetStatusWithJustification, ItemID: itemID, Status: status, Note: &note}
}

// SetAssignee builds a set_assignee mutation. A nil assignee clears it.
func SetAssignee(itemID string, assignee *string) Mutation {
	return Mutation{Kind: MutationSetAssignee, ItemID: itemID, Assignee: assignee}
}

// SetNote builds a set_note mutation.
func SetNote(itemID, note string) Mutation {
	return Mutation{Kind: MutationSetNote, ItemID: itemID, Note: &note}
}

// DeleteItem builds a delete_item mutation.
func DeleteItem(itemID string) Mutation {
	return Mutation{Kind: MutationDeleteItem, ItemID: itemID}
}

// IsStatusChange reports whether the mutation changes status.
func (m Mutation) IsStatusChange() bool {
	return m.Kind == MutationSetStatus || m.Kind == MutationSetStatusWithJustification
}
