// Package constants provides centralized constant values used throughout assetrack.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names used by assetrack for state persistence.
const (
	// ProjectFileName is the YAML document holding a project and its items.
	ProjectFileName = "project.yaml"

	// HistoryFileName is the JSON-lines audit log of status changes for a project.
	HistoryFileName = "history.jsonl"

	// ViewStateFileName stores the collapsed folder paths of the tree view.
	ViewStateFileName = "view-state.yaml"

	// LockFileName is the lock file guarding writes to a project directory.
	LockFileName = "project.lock"
)

// Directory names and paths used by assetrack for organizing data.
const (
	// AssetrackHome is the hidden directory name where assetrack stores all its data.
	// This directory is created in the user's home directory.
	AssetrackHome = ".assetrack"

	// ProjectsDir is the directory name where project data is stored.
	ProjectsDir = "projects"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Policy constants for the asset lifecycle.
const (
	// HighChurnThreshold is the revision count an item must exceed to be
	// considered high churn. It is not configurable.
	HighChurnThreshold = 2

	// MinJustificationLength is the minimum number of characters (after trimming)
	// a rework justification must contain.
	MinJustificationLength = 10
)

// Timeouts for store operations.
const (
	// DefaultLockTimeout is the default maximum duration to wait for a project lock.
	DefaultLockTimeout = 5 * time.Second

	// LockRetryInterval is the delay between lock acquisition attempts.
	LockRetryInterval = 50 * time.Millisecond
)

// Schema version constants for data migration support.
const (
	// ProjectSchemaVersion is the current version of the project YAML schema.
	ProjectSchemaVersion = "1.0"

	// ViewStateVersion is the current version of the view state file.
	ViewStateVersion = 1
)

// ID prefixes for generated identifiers.
const (
	// ItemIDPrefix prefixes every generated item ID.
	ItemIDPrefix = "item-"

	// ProjectIDPrefix prefixes every generated project ID.
	ProjectIDPrefix = "proj-"

	// HistoryIDPrefix prefixes every generated history entry ID.
	HistoryIDPrefix = "hist-"
)

// Sort key names accepted by the tree view.
const (
	SortFolder  = "folder"
	SortRecency = "recency"
	SortStatus  = "status"
	SortChurn   = "churn"
)

// ValidSortNames returns the accepted sort key names.
func ValidSortNames() []string {
	return []string{SortFolder, SortRecency, SortStatus, SortChurn}
}
