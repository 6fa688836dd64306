// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/invowk/cmdrunner/pkg/cmdrunner"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Virtual runs each invocation as a one-line script in the embedded mvdan/sh
// interpreter. External programs are still spawned by the interpreter, but the
// environment and working directory never touch the host process.
type Virtual struct {
	// Environ returns the base environment; os.Environ when nil.
	Environ func() []string
}

// Script renders argv as a single shell command line.
func Script(argv []string) (string, error) {
	words := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %q: %w", arg, err)
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " "), nil
}

// Execute implements cmdrunner.Executor.
func (v *Virtual) Execute(ctx context.Context, inv cmdrunner.Invocation) (cmdrunner.Output, error) {
	if len(inv.Argv) == 0 {
		return cmdrunner.Output{}, errors.New("empty argument vector")
	}

	script, err := Script(inv.Argv)
	if err != nil {
		return cmdrunner.Output{}, err
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), inv.Argv[0])
	if err != nil {
		return cmdrunner.Output{}, fmt.Errorf("failed to parse command line: %w", err)
	}

	var stdin io.Reader
	if inv.Stdin != nil {
		stdin = bytes.NewReader(inv.Stdin)
	}
	var stdout, stderr bytes.Buffer

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(v.environ(inv.Env)...)),
		interp.StdIO(stdin, &stdout, &stderr),
		interp.ExecHandlers(requireExecutable),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return cmdrunner.Output{}, fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	out := cmdrunner.Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			out.RC = int(exitStatus)
			return out, nil
		}
		return out, fmt.Errorf("virtual execution failed: %w", err)
	}
	return out, nil
}

// requireExecutable halts the interpreter when the program is gone, so a
// vanished executable is a launch failure rather than the shell's rc 127.
func requireExecutable(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		hc := interp.HandlerCtx(ctx)
		if _, err := interp.LookPathDir(hc.Dir, hc.Env, args[0]); err != nil {
			return fmt.Errorf("cannot launch %s: %w", args[0], err)
		}
		return next(ctx, args)
	}
}

func (v *Virtual) environ(overlay map[string]string) []string {
	environ := os.Environ
	if v.Environ != nil {
		environ = v.Environ
	}
	env := cmdrunner.EnvFromSlice(environ())
	maps.Copy(env, overlay)
	return cmdrunner.EnvToSlice(env)
}
