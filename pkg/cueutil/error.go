// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

type (
	// Violation is one schema failure at a document path.
	Violation struct {
		Path    string
		Message string
	}

	// SchemaError collects every violation found in one document.
	SchemaError struct {
		File       string
		Violations []Violation
	}
)

// Error implements the error interface.
func (e *SchemaError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	if len(lines) == 1 {
		return e.File + ": " + lines[0]
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// String renders the violation as "path: message".
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// FormatError turns a CUE error into a *SchemaError for file. Errors that are
// not CUE errors are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}
	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", file, err)
	}

	se := &SchemaError{File: file}
	for _, e := range cueerrors.Errors(err) {
		path := jsonPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		se.Violations = append(se.Violations, Violation{Path: path, Message: msg})
	}
	return se
}

// jsonPath renders ["tools", "ls", "args", "0"] as "tools.ls.args[0]".
func jsonPath(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 && isIndex(p) {
			b.WriteString("[" + p + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
