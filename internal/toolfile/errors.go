// SPDX-License-Identifier: MPL-2.0

package toolfile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTool is the sentinel error wrapped by UnknownToolError.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidToolfile is returned (through ValidationErrors) for declarations
	// the schema accepts but that cannot be built.
	ErrInvalidToolfile = errors.New("invalid toolfile")
	// ErrEnvFile is the sentinel error wrapped by EnvFileError.
	ErrEnvFile = errors.New("env file")
)

type (
	// UnknownToolError is returned when a tool name is not declared.
	UnknownToolError struct {
		Name  string
		Known []string
	}

	// EnvFileError is returned when a declared env file cannot be read or
	// parsed.
	EnvFileError struct {
		Path string
		Op   string
		Err  error
	}

	// ValidationError is one semantic problem in a toolfile.
	ValidationError struct {
		// Field locates the problem, e.g. "tool 'ls' arg 'all'".
		Field   string
		Message string
	}

	// ValidationErrors collects every problem found in one validation pass.
	ValidationErrors []ValidationError
)

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown tool %q (no tools declared)", e.Name)
	}
	return fmt.Sprintf("unknown tool %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnknownTool.
func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// Error implements the error interface.
func (e *EnvFileError) Error() string {
	return fmt.Sprintf("failed to %s env file '%s': %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrEnvFile and the underlying error.
func (e *EnvFileError) Unwrap() []error { return []error{ErrEnvFile, e.Err} }

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d errors:", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap returns ErrInvalidToolfile.
func (errs ValidationErrors) Unwrap() error { return ErrInvalidToolfile }
