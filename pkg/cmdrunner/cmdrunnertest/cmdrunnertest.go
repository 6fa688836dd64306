// SPDX-License-Identifier: MPL-2.0

// Package cmdrunnertest provides fakes for testing code built on cmdrunner
// without spawning processes.
package cmdrunnertest

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

type (
	// Executor records every invocation and answers with a fixed Output or Err.
	Executor struct {
		Output cmdrunner.Output
		Err    error
		// Respond, when set, overrides Output and Err per invocation.
		Respond func(inv cmdrunner.Invocation) (cmdrunner.Output, error)

		mu    sync.Mutex
		calls []cmdrunner.Invocation
	}

	// Resolver resolves names without touching the filesystem. Names listed in
	// Paths map to their value; otherwise the name is joined to the first extra
	// directory, or to Dir when there is none.
	Resolver struct {
		Paths map[string]string
		Dir   string
		// Missing names fail with an ExecutableNotFoundError.
		Missing []string
	}

	// LocaleProber returns a fixed locale or error.
	LocaleProber struct {
		Locale string
		Err    error
	}
)

// Execute implements cmdrunner.Executor.
func (e *Executor) Execute(_ context.Context, inv cmdrunner.Invocation) (cmdrunner.Output, error) {
	e.mu.Lock()
	e.calls = append(e.calls, cmdrunner.Invocation{
		Argv:  slices.Clone(inv.Argv),
		Env:   maps.Clone(inv.Env),
		Dir:   inv.Dir,
		Stdin: slices.Clone(inv.Stdin),
	})
	e.mu.Unlock()

	if e.Respond != nil {
		return e.Respond(inv)
	}
	return e.Output, e.Err
}

// Spawns returns how many invocations were attempted.
func (e *Executor) Spawns() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

// Calls returns a copy of the recorded invocations.
func (e *Executor) Calls() []cmdrunner.Invocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}

// Last returns the most recent invocation.
func (e *Executor) Last() (cmdrunner.Invocation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.calls) == 0 {
		return cmdrunner.Invocation{}, false
	}
	return e.calls[len(e.calls)-1], true
}

// Resolve implements cmdrunner.Resolver.
func (r Resolver) Resolve(name string, extraDirs []string) (string, error) {
	if slices.Contains(r.Missing, name) {
		return "", &cmdrunner.ExecutableNotFoundError{Name: name, SearchDirs: slices.Clone(extraDirs)}
	}
	if p, ok := r.Paths[name]; ok {
		return p, nil
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	if len(extraDirs) > 0 {
		return filepath.Join(extraDirs[0], name), nil
	}
	dir := r.Dir
	if dir == "" {
		dir = "/usr/bin"
	}
	return filepath.Join(dir, name), nil
}

// BestParsableLocale implements cmdrunner.LocaleProber.
func (p LocaleProber) BestParsableLocale(context.Context) (string, error) {
	return p.Locale, p.Err
}
