// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"os"
	"os/exec"
	"slices"
	"syscall"
)

type (
	// Invocation is everything an Executor needs to spawn one process.
	Invocation struct {
		// Argv is the full argument vector; Argv[0] is the resolved executable.
		Argv []string
		// Env is overlaid on the host environment.
		Env map[string]string
		// Dir is the working directory; empty means the current one.
		Dir string
		// Stdin is fed to the process when non-nil.
		Stdin []byte
	}

	// Output is the raw result of a finished process.
	Output struct {
		RC     int
		Stdout string
		Stderr string
	}

	// Executor spawns a process and waits for it. It returns an error only when
	// the process could not be started or waited on; a non-zero exit is
	// reported through Output.RC.
	Executor interface {
		Execute(ctx context.Context, inv Invocation) (Output, error)
	}

	// ExecExecutor runs processes on the local host with os/exec.
	ExecExecutor struct {
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used.
		Environ func() []string
	}
)

// Execute implements Executor.
func (e ExecExecutor) Execute(ctx context.Context, inv Invocation) (Output, error) {
	if len(inv.Argv) == 0 {
		return Output{}, errors.New("empty argument vector")
	}

	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = e.environ(inv.Env)
	if inv.Stdin != nil {
		cmd.Stdin = bytes.NewReader(inv.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return out, err
		}
		if code := exitErr.ExitCode(); code >= 0 {
			out.RC = code
			return out, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		if sig, ok := signalOf(exitErr.ProcessState); ok {
			// A process killed by a signal ran; report it as -signal.
			out.RC = -int(sig)
			return out, nil
		}
		return out, err
	}
	return out, nil
}

func signalOf(state *os.ProcessState) (syscall.Signal, bool) {
	if state == nil {
		return 0, false
	}
	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}
	return status.Signal(), true
}

func (e ExecExecutor) environ(overlay map[string]string) []string {
	environ := os.Environ
	if e.Environ != nil {
		environ = e.Environ
	}
	env := EnvFromSlice(environ())
	maps.Copy(env, overlay)
	return EnvToSlice(env)
}

// EnvToSlice converts an environment map to sorted "KEY=VALUE" strings.
func EnvToSlice(env map[string]string) []string {
	keys := slices.Sorted(maps.Keys(env))
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+env[k])
	}
	return result
}

// EnvFromSlice parses "KEY=VALUE" strings; malformed entries are skipped and
// later entries win.
func EnvFromSlice(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, e := range environ {
		for i := 0; i < len(e); i++ {
			if e[i] == '=' {
				if i > 0 {
					env[e[:i]] = e[i+1:]
				}
				break
			}
		}
	}
	return env
}
