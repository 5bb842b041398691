package vkbind

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument marks a structural precondition violation detected
	// before any native call was issued.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEntryPointUnavailable is returned when a command could not be
	// resolved in the scope it was requested from.
	ErrEntryPointUnavailable = errors.New("entry point unavailable")

	// ErrLibraryNotFound is returned when no driver loader library could be opened.
	ErrLibraryNotFound = errors.New("vulkan loader library not found")
)

// DriverError carries a negative status returned by a native command.
// The status is never translated; errors.As(err, new(Result)) recovers it.
type DriverError struct {
	Command string
	Code    Result
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Code)
}

func (e *DriverError) Unwrap() error { return e.Code }

func driverError(command string, code Result) error {
	return &DriverError{Command: command, Code: code}
}

// check turns a status into (advisory, error). Success and advisory codes
// pass through as values.
func check(command string, r Result) (Result, error) {
	if r.IsError() {
		return r, driverError(command, r)
	}
	return r, nil
}

func invalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func unavailable(command string) error {
	return errors.Wrapf(ErrEntryPointUnavailable, "%s", command)
}

// IsDriverError reports whether err carries a native status, returning it.
func IsDriverError(err error) (Result, bool) {
	var de *DriverError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return SUCCESS, false
}
