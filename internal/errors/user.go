package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) keeps errors.Is() traversal order deterministic.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrProjectNotFound,
		info: ErrorInfo{
			Message: "Project not found.",
			Action:  "Run 'assetrack project list' to see available projects.",
		},
	},
	{
		err: ErrProjectExists,
		info: ErrorInfo{
			Message: "A project with this name already exists.",
			Action:  "Choose a different name or import into the existing project.",
		},
	},
	{
		err: ErrInvalidProjectName,
		info: ErrorInfo{
			Message: "Project names may only contain lowercase letters, digits, '-' and '_'.",
			Action:  "Pick a name such as 'website-redesign'.",
		},
	},
	{
		err: ErrProjectCorrupted,
		info: ErrorInfo{
			Message: "The project file could not be read.",
			Action:  "Check project.yaml in the project data directory for manual edits.",
		},
	},
	{
		err: ErrItemNotFound,
		info: ErrorInfo{
			Message: "No item matches that ID or path.",
			Action:  "Run 'assetrack tree <project>' to list item paths.",
		},
	},
	{
		err: ErrInvalidStatus,
		info: ErrorInfo{
			Message: "Status must be one of: pending, received, implemented.",
		},
	},
	{
		err: ErrJustificationRequired,
		info: ErrorInfo{
			Message: "Moving an item back to an earlier status requires a reason.",
			Action:  "Pass --reason with at least 10 characters, or run interactively.",
		},
	},
	{
		err: ErrJustificationTooShort,
		info: ErrorInfo{
			Message: "The rework reason must be at least 10 characters long.",
			Action:  "Describe why the asset needs rework in a full sentence.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another assetrack process is writing to this project.",
			Action:  "Wait a moment and retry, or increase storage.lock_timeout.",
		},
	},
	{
		err: ErrInvalidSortKey,
		info: ErrorInfo{
			Message: "Sort must be one of: folder, recency, status, churn.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Output format must be 'text' or 'json'.",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "Canceled.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Derived lookup table
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue. The action is empty when
// there is nothing specific to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
