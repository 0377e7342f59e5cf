package domain

import (
	"time"

	"github.com/mrz1836/assetrack/internal/constants"
)

// HistoryEntry is one row of the audit log, written by the store for every
// status change. For a justified rework, Comment holds the justification.
type HistoryEntry struct {
	ID        string               `json:"id"`
	ItemID    string               `json:"item_id"`
	ItemPath  string               `json:"item_path"`
	OldStatus constants.ItemStatus `json:"old_status"`
	NewStatus constants.ItemStatus `json:"new_status"`
	Actor     string               `json:"actor"`
	Comment   string               `json:"comment,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}
