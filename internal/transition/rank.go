// Package transition gates item status changes.
//
// This file holds the status ordering. Moving to a lower-ranked status is a
// rework and must carry a justification; guard.go implements the gate.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/store, internal/cli, internal/tui
package transition

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

// statusRank orders statuses along the lifecycle.
//
//	Pending(0) → Received(1) → Implemented(2)
//
//nolint:gochecknoglobals // Read-only lookup table
var statusRank = map[constants.ItemStatus]int{
	constants.ItemStatusPending:     0,
	constants.ItemStatusReceived:    1,
	constants.ItemStatusImplemented: 2,
}

// Rank returns the lifecycle rank of status and whether status is known.
func Rank(status constants.ItemStatus) (int, bool) {
	r, ok := statusRank[status]
	return r, ok
}

// IsBackward reports whether moving from one status to another is a rework.
// Unknown statuses are never backward.
func IsBackward(from, to constants.ItemStatus) bool {
	rf, okFrom := Rank(from)
	rt, okTo := Rank(to)
	return okFrom && okTo && rt < rf
}

// ParseStatus converts s to a known status, ignoring case and surrounding space.
func ParseStatus(s string) (constants.ItemStatus, error) {
	status := constants.ItemStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: pending, received, implemented)", atlaserrors.ErrInvalidStatus, s)
	}
	return status, nil
}

// ValidateJustification checks a rework justification against the minimum
// length. Length is counted in runes after trimming surrounding whitespace.
func ValidateJustification(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return atlaserrors.ErrJustificationRequired
	}
	if n := utf8.RuneCountInString(trimmed); n < constants.MinJustificationLength {
		return fmt.Errorf("%w: %d characters, need at least %d",
			atlaserrors.ErrJustificationTooShort, n, constants.MinJustificationLength)
	}
	return nil
}
