// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

func TestScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		argv []string
		want string
	}{
		{[]string{"/bin/echo", "plain"}, "/bin/echo plain"},
		{[]string{"/bin/echo", "two words"}, "/bin/echo 'two words'"},
		{[]string{"/bin/echo", "$HOME"}, "/bin/echo '$HOME'"},
		{[]string{"/bin/echo", ""}, "/bin/echo ''"},
	}

	for _, tt := range tests {
		got, err := Script(tt.argv)
		if err != nil {
			t.Errorf("Script(%q) error = %v", tt.argv, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Script(%q) = %q, want %q", tt.argv, got, tt.want)
		}
	}
}

func requireSh(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return path
}

func TestVirtual_Execute(t *testing.T) {
	t.Parallel()
	sh := requireSh(t)

	v := &Virtual{Environ: func() []string { return []string{"PATH=" + os.Getenv("PATH"), "BASE=host"} }}

	tests := []struct {
		name       string
		inv        cmdrunner.Invocation
		wantRC     int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "exit code and streams",
			inv:        cmdrunner.Invocation{Argv: []string{sh, "-c", "echo out; echo err >&2; exit 3"}},
			wantRC:     3,
			wantStdout: "out\n",
			wantStderr: "err\n",
		},
		{
			name:       "env overlay over base",
			inv:        cmdrunner.Invocation{Argv: []string{sh, "-c", "echo $BASE $EXTRA"}, Env: map[string]string{"EXTRA": "x"}},
			wantStdout: "host x\n",
		},
		{
			name:       "arguments are not re-expanded",
			inv:        cmdrunner.Invocation{Argv: []string{sh, "-c", `printf '%s\n' "$1"`, "sh", "$BASE; rm -rf /"}},
			wantStdout: "$BASE; rm -rf /\n",
		},
		{
			name:       "stdin",
			inv:        cmdrunner.Invocation{Argv: []string{sh, "-c", "cat"}, Stdin: []byte("fed")},
			wantStdout: "fed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := v.Execute(context.Background(), tt.inv)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.RC != tt.wantRC {
				t.Errorf("RC = %d, want %d", out.RC, tt.wantRC)
			}
			if out.Stdout != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", out.Stdout, tt.wantStdout)
			}
			if out.Stderr != tt.wantStderr {
				t.Errorf("Stderr = %q, want %q", out.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestVirtual_Dir(t *testing.T) {
	t.Parallel()
	sh := requireSh(t)

	dir := t.TempDir()
	out, err := (&Virtual{}).Execute(context.Background(), cmdrunner.Invocation{
		Argv: []string{sh, "-c", "pwd"},
		Dir:  dir,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out.Stdout))
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestVirtual_MissingExecutable(t *testing.T) {
	t.Parallel()

	_, err := (&Virtual{}).Execute(context.Background(), cmdrunner.Invocation{
		Argv: []string{"/nonexistent/tool-xyz"},
	})
	if err == nil || !strings.Contains(err.Error(), "/nonexistent/tool-xyz") {
		t.Errorf("Execute() error = %v, want launch failure naming the program", err)
	}
}

func TestVirtual_MissingExecutableThroughRunner(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tool := filepath.Join(dir, "vanishing")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\necho hi\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := cmdrunner.New(context.Background(), tool,
		cmdrunner.WithExecutor(&Virtual{}),
		cmdrunner.WithLogger(log.New(io.Discard)),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := os.Remove(tool); err != nil {
		t.Fatal(err)
	}
	c, err := r.Context()
	if err != nil {
		t.Fatalf("Context() error = %v", err)
	}

	_, err = c.Run(context.Background(), nil)
	if !errors.Is(err, cmdrunner.ErrLaunch) {
		t.Errorf("Run() error = %v, want ErrLaunch", err)
	}
	if info, _ := c.RunInfo(); info.Ran {
		t.Error("RunInfo().Ran = true, want false")
	}
}

func TestVirtual_EmptyArgv(t *testing.T) {
	t.Parallel()

	if _, err := (&Virtual{}).Execute(context.Background(), cmdrunner.Invocation{}); err == nil {
		t.Error("Execute() error = nil, want error")
	}
}

func TestVirtual_ThroughRunner(t *testing.T) {
	t.Parallel()
	sh := requireSh(t)

	r, err := cmdrunner.New(context.Background(), sh,
		cmdrunner.WithExecutor(&Virtual{}),
		cmdrunner.WithLeadingArgs("-c", `echo "$LC_ALL"`),
		cmdrunner.WithLogger(log.New(io.Discard)),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c, err := r.Context()
	if err != nil {
		t.Fatalf("Context() error = %v", err)
	}
	got, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out := got.(cmdrunner.Output); out.Stdout != "C\n" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "C\n")
	}
}
