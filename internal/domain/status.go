package domain

import "github.com/mrz1836/assetrack/internal/constants"

// ItemStatus is re-exported so consumers can import domain types and status
// values together.
type ItemStatus = constants.ItemStatus

// Re-exported status values. These mirror internal/constants/status.go.
const (
	StatusPending     = constants.ItemStatusPending
	StatusReceived    = constants.ItemStatusReceived
	StatusImplemented = constants.ItemStatusImplemented
)
