// Package errors provides centralized error handling for assetrack.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidArgument indicates a command argument is malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidView indicates an invalid view configuration value.
	ErrConfigInvalidView = errors.New("invalid view configuration")

	// ErrConfigInvalidStorage indicates an invalid storage configuration value.
	ErrConfigInvalidStorage = errors.New("invalid storage configuration")

	// ErrConfigInvalidLog indicates an invalid log configuration value.
	ErrConfigInvalidLog = errors.New("invalid log configuration")

	// ErrInvalidSortKey indicates an unknown sort key was requested.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidProjectName indicates a project name is not a valid slug.
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrProjectExists indicates an attempt to create a project that already exists.
	ErrProjectExists = errors.New("project already exists")

	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectCorrupted indicates the project file is unreadable.
	ErrProjectCorrupted = errors.New("project file corrupted")

	// ErrItemNotFound indicates the requested item does not exist in the project.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidStatus indicates a status value outside pending, received, implemented.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidMutation indicates a mutation request is malformed or of unknown kind.
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrJustificationRequired indicates a backward transition was requested without a reason.
	ErrJustificationRequired = errors.New("justification required for backward transition")

	// ErrJustificationTooShort indicates a rework justification is below the minimum length.
	ErrJustificationTooShort = errors.New("justification too short")

	// ErrNoPendingTransition indicates a justification was submitted with no open request.
	ErrNoPendingTransition = errors.New("no pending transition")

	// ErrTransitionPending indicates a new request arrived while one awaits justification.
	ErrTransitionPending = errors.New("transition already awaiting justification")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrMenuCanceled indicates the user canceled an interactive prompt.
	ErrMenuCanceled = errors.New("menu canceled")

	// ErrNoMenuOptions indicates a selection menu was built without options.
	ErrNoMenuOptions = errors.New("no menu options")

	// ErrUserInputRequired indicates user input is required but not provided.
	// Commands should exit with code 2 when this error is returned.
	ErrUserInputRequired = errors.New("user input required")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
