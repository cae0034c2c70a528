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

// errorInfoEntries maps sentinels to their user-facing text.
// A slice, not a map, because lookups go through errors.Is.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrBlocked,
		info: ErrorInfo{
			Message: "This task is waiting on another task that is not done yet.",
			Action:  "Run 'cadence dep list <task>' to see what blocks it, and complete those first.",
		},
	},
	{
		err: ErrInvalidDependency,
		info: ErrorInfo{
			Message: "That dependency cannot be added.",
			Action:  "A task cannot depend on itself, on a missing task, or on a task that already depends on it.",
		},
	},
	{
		err: ErrNotFound,
		info: ErrorInfo{
			Message: "The referenced item does not exist.",
			Action:  "Check the id with 'cadence task list' or 'cadence habit list'.",
		},
	},
	{
		err: ErrInvalidInput,
		info: ErrorInfo{
			Message: "The value provided is not valid.",
			Action:  "Titles must not be blank and durations must be positive.",
		},
	},
	{
		err: ErrInvalidWindow,
		info: ErrorInfo{
			Message: "Unknown summary window.",
			Action:  "Use --window day or --window week.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "The data file is in use by another cadence process.",
			Action:  "Wait for the other command to finish and retry.",
		},
	},
	{
		err: ErrSnapshotCorrupted,
		info: ErrorInfo{
			Message: "The data file could not be read.",
			Action:  "Restore data.yaml from a backup or move it aside to start fresh.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use --output text or --output json.",
		},
	},
}

// getErrorInfo returns the info for the first sentinel in err's chain.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty for errors without a known remedy.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
