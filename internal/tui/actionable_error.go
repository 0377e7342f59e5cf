package tui

import (
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

// ActionableError wraps an error with an actionable suggestion.
//
//	err := NewActionableError("project not found", "Run: assetrack project list")
//	output.Error(err)
//	// ✗ project not found
//	//   ▸ Try: assetrack project list
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion should start with a verb ("Run: ...", "Check ...").
	Suggestion string

	// Context is appended to the message in parentheses when present.
	Context string

	cause error
}

// NewActionableError creates a new ActionableError with message and suggestion.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{
		Message:    msg,
		Suggestion: suggestion,
	}
}

// FromError builds an ActionableError from the user-facing mapping of err.
// It returns nil for a nil err. The original error stays reachable through Unwrap.
func FromError(err error) *ActionableError {
	if err == nil {
		return nil
	}
	msg, action := atlaserrors.Actionable(err)
	return &ActionableError{Message: msg, Suggestion: action, cause: err}
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// Unwrap returns the error the message was derived from, if any.
func (e *ActionableError) Unwrap() error {
	return e.cause
}

// WithContext adds optional context to the error.
// Returns the same error for method chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
