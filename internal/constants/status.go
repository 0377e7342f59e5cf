package constants

// ItemStatus represents the lifecycle state of a tracked asset.
// Status values use lowercase for YAML and JSON serialization compatibility.
//
//	Pending → Received → Implemented
//
// Moving to a lower-ranked status is a rework and requires a justification.
type ItemStatus string

const (
	// ItemStatusPending indicates the asset has not been delivered yet.
	ItemStatusPending ItemStatus = "pending"

	// ItemStatusReceived indicates the asset was delivered but not yet used.
	ItemStatusReceived ItemStatus = "received"

	// ItemStatusImplemented indicates the asset is in place.
	ItemStatusImplemented ItemStatus = "implemented"
)

// String returns the string representation of the ItemStatus.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusReceived, ItemStatusImplemented:
		return true
	default:
		return false
	}
}

// ValidItemStatuses returns all statuses in lifecycle order.
func ValidItemStatuses() []ItemStatus {
	return []ItemStatus{ItemStatusPending, ItemStatusReceived, ItemStatusImplemented}
}
