// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
	"maps"
	"os/exec"
	"slices"
)

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

// ErrEngineNotAvailable is wrapped by EngineNotAvailableError.
var ErrEngineNotAvailable = errors.New("container engine not available")

type (
	// EngineType identifies the container engine CLI.
	EngineType string

	// LookPathFunc finds an executable on the host; exec.LookPath in production.
	LookPathFunc func(file string) (string, error)

	// Engine is a located container CLI.
	Engine struct {
		Type       EngineType
		BinaryPath string
	}

	// ExecOptions shape an exec invocation.
	ExecOptions struct {
		// Interactive keeps stdin open (-i).
		Interactive bool
		// WorkDir is the working directory inside the container (-w).
		WorkDir string
		// Env is passed with one -e flag per variable, sorted by key.
		Env map[string]string
	}

	// EngineNotAvailableError reports that neither the preferred engine nor
	// its fallback could be found.
	EngineNotAvailableError struct {
		Engine EngineType
		Reason string
	}
)

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// Fallback returns the engine tried when t is missing.
func (t EngineType) Fallback() EngineType {
	if t == EngineTypeDocker {
		return EngineTypePodman
	}
	return EngineTypeDocker
}

// NewEngine locates the preferred engine, falling back to the other one.
// A nil lookPath uses exec.LookPath.
func NewEngine(preferred EngineType, lookPath LookPathFunc) (*Engine, error) {
	if preferred != EngineTypePodman && preferred != EngineTypeDocker {
		return nil, fmt.Errorf("unknown container engine type: %s", preferred)
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, t := range []EngineType{preferred, preferred.Fallback()} {
		if path, err := lookPath(string(t)); err == nil {
			return &Engine{Type: t, BinaryPath: path}, nil
		}
	}
	return nil, &EngineNotAvailableError{
		Engine: preferred,
		Reason: fmt.Sprintf("%s is not installed or not accessible, and %s fallback is also not available", preferred, preferred.Fallback()),
	}
}

// ExecArgs builds the arguments after the binary:
//
//	exec [-i] [-w dir] [-e K=V]... <container> <command...>
func (e *Engine) ExecArgs(containerName string, command []string, opts ExecOptions) []string {
	args := []string{"exec"}
	if opts.Interactive {
		args = append(args, "-i")
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}
	for _, k := range slices.Sorted(maps.Keys(opts.Env)) {
		args = append(args, "-e", k+"="+opts.Env[k])
	}
	args = append(args, containerName)
	return append(args, command...)
}

// Argv is ExecArgs prefixed with the engine binary.
func (e *Engine) Argv(containerName string, command []string, opts ExecOptions) []string {
	return append([]string{e.BinaryPath}, e.ExecArgs(containerName, command, opts)...)
}
