// SPDX-License-Identifier: MPL-2.0

package cmdrunner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/invowk/cmdrunner/internal/testutil"
	"github.com/invowk/cmdrunner/pkg/argfmt"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecExecutor_RealProcess(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	e := cmdrunner.ExecExecutor{Environ: func() []string { return []string{"HOST=yes", "GREETING=host"} }}
	out, err := e.Execute(context.Background(), cmdrunner.Invocation{
		Argv:  []string{"/bin/sh", "-c", `read line; echo "$GREETING $HOST $line"; echo oops >&2; exit 3`},
		Env:   map[string]string{"GREETING": "hello"},
		Stdin: []byte("world\n"),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.RC != 3 {
		t.Errorf("RC = %d, want 3", out.RC)
	}
	if out.Stdout != "hello yes world\n" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "hello yes world\n")
	}
	if out.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", out.Stderr, "oops\n")
	}
}

func TestExecExecutor_LaunchFailure(t *testing.T) {
	t.Parallel()

	e := cmdrunner.ExecExecutor{}
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := e.Execute(context.Background(), cmdrunner.Invocation{Argv: []string{missing}}); err == nil {
		t.Error("Execute() error = nil, want launch failure")
	}
	if _, err := e.Execute(context.Background(), cmdrunner.Invocation{}); err == nil {
		t.Error("Execute() with empty argv error = nil")
	}
}

func TestExecExecutor_KilledBySignal(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	e := cmdrunner.ExecExecutor{}
	out, err := e.Execute(context.Background(), cmdrunner.Invocation{
		Argv: []string{"/bin/sh", "-c", "echo started; echo dying >&2; kill -9 $$"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil for a process that ran", err)
	}
	if out.RC != -9 {
		t.Errorf("RC = %d, want -9", out.RC)
	}
	if out.Stdout != "started\n" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "started\n")
	}
	if out.Stderr != "dying\n" {
		t.Errorf("Stderr = %q, want %q", out.Stderr, "dying\n")
	}
}

func TestRun_KilledBySignal(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	r, err := cmdrunner.New(context.Background(), "/bin/sh",
		cmdrunner.WithFormats(map[string]any{"script": argfmt.AsList()}),
		cmdrunner.WithDefaultOrder("script"),
		cmdrunner.WithCheckRC(true),
		cmdrunner.WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c := mustContext(t, r)

	_, err = c.Run(context.Background(), cmdrunner.Values{"script": []string{"-c", "echo started; kill -9 $$"}})
	if errors.Is(err, cmdrunner.ErrLaunch) {
		t.Fatalf("Run() error = %v, a started process is not a launch failure", err)
	}
	var exitErr *cmdrunner.NonZeroExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want NonZeroExitError", err)
	}
	if exitErr.RC != -9 {
		t.Errorf("NonZeroExitError.RC = %d, want -9", exitErr.RC)
	}

	info, _ := c.RunInfo()
	if !info.Ran {
		t.Error("RunInfo().Ran = false, want true")
	}
	if info.Stdout != "started\n" {
		t.Errorf("RunInfo().Stdout = %q, want %q", info.Stdout, "started\n")
	}
}

func TestPathResolver_CurrentDirPrefix(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "dottool", "#!/bin/sh\necho hi\n", 0o755)
	defer testutil.MustChdir(t, dir)()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "dottool")

	r := cmdrunner.PathResolver{Getenv: func(string) string { return "" }}
	for _, prefix := range []string{".", ""} {
		got, err := r.Resolve("dottool", []string{prefix})
		if err != nil {
			t.Fatalf("Resolve() with prefix %q error = %v", prefix, err)
		}
		if got != want {
			t.Errorf("Resolve() with prefix %q = %q, want %q", prefix, got, want)
		}
	}
}

func TestPathResolver(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	dir := t.TempDir()
	tool := filepath.Join(dir, "mytool")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\necho hi\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := cmdrunner.PathResolver{Getenv: func(string) string { return "" }}

	got, err := r.Resolve("mytool", []string{dir})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != tool {
		t.Errorf("Resolve() = %q, want %q", got, tool)
	}

	if got, _ := r.Resolve("./rel/tool", nil); got != "./rel/tool" {
		t.Errorf("Resolve() = %q, want path-like names unchanged", got)
	}

	_, err = r.Resolve("surely-not-installed-anywhere", []string{dir})
	if !errors.Is(err, cmdrunner.ErrExecutableNotFound) {
		t.Errorf("Resolve() error = %v, want ErrExecutableNotFound", err)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "greet")
	body := "#!/bin/sh\nfor a in \"$@\"; do echo \"$a\"; done\necho \"lc=$LC_ALL\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	r, err := cmdrunner.New(context.Background(), "greet",
		cmdrunner.WithPathPrefix(dir),
		cmdrunner.WithFormats(map[string]any{
			"name":  argfmt.AsOptVal("--name"),
			"loud":  argfmt.AsFlag("--loud"),
			"files": argfmt.AsList(),
		}),
		cmdrunner.WithDefaultOrder("name loud files"),
		cmdrunner.WithCheckRC(true),
		cmdrunner.WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c := mustContext(t, r)

	got, err := c.Run(context.Background(), cmdrunner.Values{
		"name":  "a b",
		"loud":  true,
		"files": []string{"x", "y"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := got.(cmdrunner.Output)
	want := "--name\na b\n--loud\nx\ny\nlc=C\n"
	if out.Stdout != want {
		t.Errorf("Stdout = %q, want %q", out.Stdout, want)
	}
}
