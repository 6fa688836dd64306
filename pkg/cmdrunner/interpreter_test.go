// SPDX-License-Identifier: MPL-2.0

package cmdrunner_test

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/cmdrunner/internal/testutil"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
	"github.com/invowk/cmdrunner/pkg/cmdrunner/cmdrunnertest"
)

func TestNewInterpreter_Venv(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("venv layout differs on windows")
	}

	exec := &cmdrunnertest.Executor{}
	r, err := cmdrunner.NewInterpreter(context.Background(), "toasting",
		cmdrunner.WithVenv("/venv"),
		cmdrunner.WithFormats(toastFormats()),
		cmdrunner.WithResolver(cmdrunnertest.Resolver{}),
		cmdrunner.WithExecutor(exec),
	)
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}

	c := mustContext(t, r, cmdrunner.WithOrder("aa bb"))
	if _, err := c.Run(context.Background(), cmdrunner.Values{"aa": 11, "bb": true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last, _ := exec.Last()
	if want := []string{"/venv/bin/python", "toasting", "--answer=11", "--bb-here"}; !slices.Equal(last.Argv, want) {
		t.Errorf("argv = %v, want %v", last.Argv, want)
	}
	if got := last.Env["VIRTUAL_ENV"]; got != "/venv" {
		t.Errorf("env[VIRTUAL_ENV] = %q, want %q", got, "/venv")
	}
	path := filepath.SplitList(last.Env["PATH"])
	if len(path) == 0 || path[0] != "/venv/bin" {
		t.Errorf("env[PATH] = %q, want /venv/bin first", last.Env["PATH"])
	}
}

func TestNewInterpreter_VenvKeepsHostPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("venv layout differs on windows")
	}
	defer testutil.MustSetenv(t, "PATH", "/host/a:/host/b")()

	r, err := cmdrunner.NewInterpreter(context.Background(), "toasting",
		cmdrunner.WithVenv("/venv"),
		cmdrunner.WithPathPrefix("/opt/tools"),
		cmdrunner.WithResolver(cmdrunnertest.Resolver{}),
		cmdrunner.WithExecutor(&cmdrunnertest.Executor{}),
	)
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}

	got := filepath.SplitList(r.Environ()["PATH"])
	want := []string{"/venv/bin", "/opt/tools", "/host/a", "/host/b"}
	if !slices.Equal(got, want) {
		t.Errorf("Environ()[PATH] = %q, want %q", got, want)
	}
}

func TestNewInterpreter_ExplicitPathIgnoresVenv(t *testing.T) {
	t.Parallel()

	exec := &cmdrunnertest.Executor{}
	r, err := cmdrunner.NewInterpreter(context.Background(), "script.py",
		cmdrunner.WithInterpreter("/usr/bin/python3"),
		cmdrunner.WithVenv("/venv"),
		cmdrunner.WithResolver(cmdrunnertest.Resolver{}),
		cmdrunner.WithExecutor(exec),
		cmdrunner.WithLeadingArgs("--verbose"),
	)
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}

	if want := []string{"/usr/bin/python3", "script.py", "--verbose"}; !slices.Equal(r.Command(), want) {
		t.Errorf("Command() = %v, want %v", r.Command(), want)
	}
	if _, ok := r.Environ()["VIRTUAL_ENV"]; ok {
		t.Error("Environ() sets VIRTUAL_ENV for an explicit interpreter path")
	}
}

func TestNewInterpreter_DefaultName(t *testing.T) {
	t.Parallel()

	r, err := cmdrunner.NewInterpreter(context.Background(), "s.py",
		cmdrunner.WithResolver(cmdrunnertest.Resolver{Dir: "/usr/local/bin"}),
		cmdrunner.WithExecutor(&cmdrunnertest.Executor{}),
	)
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}
	if got := r.Path(); !strings.HasSuffix(got, "/"+cmdrunner.DefaultInterpreter) {
		t.Errorf("Path() = %q, want %s interpreter", got, cmdrunner.DefaultInterpreter)
	}
}
