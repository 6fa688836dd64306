// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/invowk/cmdrunner/internal/container"
	"github.com/invowk/cmdrunner/internal/issue"
	"github.com/invowk/cmdrunner/internal/toolfile"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"executable", &cmdrunner.ExecutableNotFoundError{Name: "x"}, issue.ExecutableNotFoundId},
		{"missing format", &cmdrunner.MissingArgumentFormatError{Name: "x"}, issue.MissingArgumentFormatId},
		{"missing value", &cmdrunner.MissingArgumentValueError{Name: "x"}, issue.MissingArgumentValueId},
		{"launch", &cmdrunner.LaunchError{Argv: []string{"x"}, Err: errors.New("exec format error")}, issue.LaunchFailedId},
		{"non-zero", &cmdrunner.NonZeroExitError{Argv: []string{"x"}, RC: 3}, issue.NonZeroExitId},
		{"unknown tool", &toolfile.UnknownToolError{Name: "x"}, issue.ToolNotFoundId},
		{"invalid toolfile", toolfile.ValidationErrors{{Field: "tools.x", Message: "bad"}}, issue.ToolfileInvalidId},
		{"toolfile missing", fmt.Errorf("read: %w", fs.ErrNotExist), issue.ToolfileNotFoundId},
		{"env file missing", fmt.Errorf("tool %q: %w", "x", &toolfile.EnvFileError{Path: ".env", Op: "read", Err: fs.ErrNotExist}), issue.EnvFileId},
		{"engine", &container.EngineNotAvailableError{Engine: "podman"}, issue.ContainerEngineNotFoundId},
		{"parameter", fmt.Errorf("%w: oops", errInvalidParameter), issue.InvalidParameterId},
		{"unclassified", errors.New("boom"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := reportError(&buf, &cmdrunner.NonZeroExitError{Argv: []string{"x"}, RC: 9}, false, "notty")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 9 {
		t.Fatalf("reportError() = %v, want ExitError code 9", err)
	}
	if buf.Len() != 0 {
		t.Errorf("non-verbose output = %q, want none", buf.String())
	}

	buf.Reset()
	_ = reportError(&buf, &toolfile.UnknownToolError{Name: "bagel"}, true, "notty")
	if !strings.Contains(buf.String(), "bagel") {
		t.Errorf("verbose output = %q, want error details", buf.String())
	}

	if reportError(&buf, nil, true, "notty") != nil {
		t.Error("reportError(nil) != nil")
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 4}).Error(); got != "exit status 4" {
		t.Errorf("Error() = %q, want %q", got, "exit status 4")
	}
	inner := errors.New("inner")
	if e := (&ExitError{Code: 1, Err: inner}); !errors.Is(e, inner) || e.Error() != "inner" {
		t.Errorf("ExitError{Err: inner} = %v, want to wrap inner", e)
	}
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: mutates package-level Version/Commit/BuildDate.
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2026-01-02"
	if got, want := getVersionString(), "v1.2.3 (commit: abc1234, built: 2026-01-02)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
	Version = "dev"
	if got, want := getVersionString(), "dev (built from source)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}
