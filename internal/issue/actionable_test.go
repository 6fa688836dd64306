// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{name: "operation only", err: &ActionableError{Operation: "run tool"}, want: "failed to run tool"},
		{name: "with resource", err: &ActionableError{Operation: "run tool", Resource: "ls"}, want: "failed to run tool: ls"},
		{name: "with cause", err: &ActionableError{Operation: "load toolfile", Cause: errors.New("boom")}, want: "failed to load toolfile: boom"},
		{
			name: "full",
			err:  &ActionableError{Operation: "run tool", Resource: "ls", Cause: errors.New("exit 2")},
			want: "failed to run tool: ls: exit 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("root cause")
	err := NewErrorContext().
		WithOperation("run tool").
		WithResource("ls").
		WithSuggestions("first", "second").
		Wrap(fmt.Errorf("middle: %w", root)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "\n  • first\n  • second") {
		t.Errorf("Format(false) = %q, want suggestions", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) = %q, want no chain", short)
	}

	long := err.Format(true)
	if !strings.Contains(long, "1. middle: root cause") || !strings.Contains(long, "2. root cause") {
		t.Errorf("Format(true) = %q, want error chain", long)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation != nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation != nil")
	}

	cause := errors.New("cause")
	err := NewErrorContext().WithOperation("op").WithIssue(NonZeroExitId).Wrap(cause).BuildError()
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Issue != NonZeroExitId {
		t.Errorf("Build() issue = %v, want NonZeroExitId", ae)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "op") != nil {
		t.Error("WrapWithOperation(nil) != nil")
	}
	cause := errors.New("cause")
	if err := WrapWithOperation(cause, "op"); !errors.Is(err, cause) || err.Error() != "failed to op: cause" {
		t.Errorf("WrapWithOperation() = %v", err)
	}
}
