// Package errors provides centralized error handling for cadence.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for the tracking engine.
// Every engine failure wraps exactly one of these so the CLI can decide how
// to surface it without string matching.
var (
	// ErrNotFound indicates that a referenced task, subtask, habit or project
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDependency indicates a dependency edge that references the task
	// itself, references a missing task, or would close a cycle.
	ErrInvalidDependency = errors.New("invalid dependency")

	// ErrBlocked indicates that completion was attempted while at least one
	// task in blockedBy is still incomplete.
	ErrBlocked = errors.New("task is blocked")

	// ErrInvalidInput indicates an empty title, a non-positive duration, or an
	// otherwise malformed value supplied by the caller.
	ErrInvalidInput = errors.New("invalid input")
)

// Sentinel errors for configuration and the CLI host.
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGoals indicates a negative daily goal target.
	ErrConfigInvalidGoals = errors.New("invalid goals configuration")

	// ErrConfigInvalidCalendar indicates an unknown timezone name.
	ErrConfigInvalidCalendar = errors.New("invalid calendar configuration")

	// ErrConfigInvalidStorage indicates an invalid storage setting.
	ErrConfigInvalidStorage = errors.New("invalid storage configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidWindow indicates a metrics window other than day or week.
	ErrInvalidWindow = errors.New("invalid metrics window")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrSnapshotCorrupted indicates the data file exists but cannot be decoded.
	ErrSnapshotCorrupted = errors.New("data file corrupted")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
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

// IsUserError reports whether err belongs to the recoverable, caller-caused
// class: the engine rejected the request and nothing was mutated.
func IsUserError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidDependency, ErrBlocked, ErrInvalidInput, ErrInvalidWindow} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
