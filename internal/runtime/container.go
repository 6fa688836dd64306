// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"

	"github.com/invowk/cmdrunner/internal/container"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

// Container runs invocations inside an already running container through the
// engine's exec subcommand. The overlay is passed with -e; the engine CLI
// itself sees only the host environment.
type Container struct {
	Engine *container.Engine
	// Name is the container name or ID.
	Name string
	// Executor spawns the engine CLI; cmdrunner.ExecExecutor when nil.
	Executor cmdrunner.Executor
}

// Argv returns the engine command line for inv.
func (c *Container) Argv(inv cmdrunner.Invocation) []string {
	return c.Engine.Argv(c.Name, inv.Argv, container.ExecOptions{
		Interactive: inv.Stdin != nil,
		WorkDir:     inv.Dir,
		Env:         inv.Env,
	})
}

// Execute implements cmdrunner.Executor.
func (c *Container) Execute(ctx context.Context, inv cmdrunner.Invocation) (cmdrunner.Output, error) {
	if len(inv.Argv) == 0 {
		return cmdrunner.Output{}, errors.New("empty argument vector")
	}
	if c.Engine == nil || c.Name == "" {
		return cmdrunner.Output{}, errors.New("container executor is not configured")
	}

	exec := c.Executor
	if exec == nil {
		exec = cmdrunner.ExecExecutor{}
	}
	return exec.Execute(ctx, cmdrunner.Invocation{Argv: c.Argv(inv), Stdin: inv.Stdin})
}
