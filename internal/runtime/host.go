// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

// HostSpawn runs invocations on the host from inside a Flatpak sandbox by
// prefixing argv with flatpak-spawn. The overlay and working directory travel
// as flatpak-spawn flags because the host does not see the sandbox's.
type HostSpawn struct {
	// Prefix is the spawn command, e.g. ["flatpak-spawn", "--host"].
	Prefix []string
	// Executor runs the spawn command; cmdrunner.ExecExecutor when nil.
	Executor cmdrunner.Executor
}

// Argv returns the spawn command line for inv.
func (h *HostSpawn) Argv(inv cmdrunner.Invocation) []string {
	argv := slices.Clone(h.Prefix)
	if inv.Dir != "" {
		argv = append(argv, "--directory="+inv.Dir)
	}
	for _, k := range slices.Sorted(maps.Keys(inv.Env)) {
		argv = append(argv, "--env="+k+"="+inv.Env[k])
	}
	return append(argv, inv.Argv...)
}

// Execute implements cmdrunner.Executor.
func (h *HostSpawn) Execute(ctx context.Context, inv cmdrunner.Invocation) (cmdrunner.Output, error) {
	if len(inv.Argv) == 0 {
		return cmdrunner.Output{}, errors.New("empty argument vector")
	}
	exec := h.Executor
	if exec == nil {
		exec = cmdrunner.ExecExecutor{}
	}
	return exec.Execute(ctx, cmdrunner.Invocation{Argv: h.Argv(inv), Stdin: inv.Stdin})
}
