// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound is the sentinel error wrapped by ExecutableNotFoundError.
	ErrExecutableNotFound = errors.New("executable not found")
	// ErrMissingArgumentFormat is the sentinel error wrapped by MissingArgumentFormatError.
	ErrMissingArgumentFormat = errors.New("missing argument format")
	// ErrMissingArgumentValue is the sentinel error wrapped by MissingArgumentValueError.
	ErrMissingArgumentValue = errors.New("missing argument value")
	// ErrFormat is the sentinel error wrapped by FormatError.
	ErrFormat = errors.New("argument format error")
	// ErrLaunch is the sentinel error wrapped by LaunchError.
	ErrLaunch = errors.New("failed to launch command")
	// ErrNonZeroExit is the sentinel error wrapped by NonZeroExitError.
	ErrNonZeroExit = errors.New("command exited with non-zero status")
	// ErrContextUsed is returned when Run is called on a context that already ran.
	ErrContextUsed = errors.New("execution context already used")
)

type (
	// ExecutableNotFoundError is returned by New when the executable cannot be resolved.
	ExecutableNotFoundError struct {
		Name       string
		SearchDirs []string
	}

	// MissingArgumentFormatError is returned when an order names a parameter
	// that has no registered format.
	MissingArgumentFormatError struct {
		Name  string
		Order []string
		Known []string
	}

	// MissingArgumentValueError is returned when a bound parameter has no value
	// and its format requires one.
	MissingArgumentValueError struct {
		Name  string
		Order []string
	}

	// FormatError is returned when formatting a present value fails.
	FormatError struct {
		Name   string
		Value  any
		Format string
		Err    error
	}

	// LaunchError is returned when the subprocess could not be started.
	LaunchError struct {
		Argv []string
		Err  error
	}

	// NonZeroExitError is returned when return-code checking is on and the
	// process exits non-zero.
	NonZeroExitError struct {
		Argv   []string
		RC     int
		Stdout string
		Stderr string
	}
)

// Error implements the error interface.
func (e *ExecutableNotFoundError) Error() string {
	if len(e.SearchDirs) == 0 {
		return fmt.Sprintf("executable %q not found", e.Name)
	}
	return fmt.Sprintf("executable %q not found in %s", e.Name, strings.Join(e.SearchDirs, ", "))
}

// Unwrap returns ErrExecutableNotFound.
func (e *ExecutableNotFoundError) Unwrap() error { return ErrExecutableNotFound }

// Error implements the error interface.
func (e *MissingArgumentFormatError) Error() string {
	return fmt.Sprintf("no format for argument %q in order [%s] (known: %s)",
		e.Name, strings.Join(e.Order, " "), strings.Join(e.Known, ", "))
}

// Unwrap returns ErrMissingArgumentFormat.
func (e *MissingArgumentFormatError) Unwrap() error { return ErrMissingArgumentFormat }

// Error implements the error interface.
func (e *MissingArgumentValueError) Error() string {
	return fmt.Sprintf("no value for argument %q in order [%s]", e.Name, strings.Join(e.Order, " "))
}

// Unwrap returns ErrMissingArgumentValue.
func (e *MissingArgumentValueError) Unwrap() error { return ErrMissingArgumentValue }

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to format argument %q with value %#v using %s: %v", e.Name, e.Value, e.Format, e.Err)
}

// Unwrap returns both ErrFormat and the underlying cause.
func (e *FormatError) Unwrap() []error { return []error{ErrFormat, e.Err} }

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", strings.Join(e.Argv, " "), e.Err)
}

// Unwrap returns both ErrLaunch and the underlying OS error.
func (e *LaunchError) Unwrap() []error { return []error{ErrLaunch, e.Err} }

// Error implements the error interface.
func (e *NonZeroExitError) Error() string {
	msg := fmt.Sprintf("command %s exited with status %d", strings.Join(e.Argv, " "), e.RC)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns ErrNonZeroExit.
func (e *NonZeroExitError) Unwrap() error { return ErrNonZeroExit }
