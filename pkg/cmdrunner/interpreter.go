// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultInterpreter is the interpreter name used when WithInterpreter is not given.
const DefaultInterpreter = "python"

// WithInterpreter sets the interpreter for NewInterpreter: a bare name looked
// up on the search path, or a path used as-is. New ignores it.
func WithInterpreter(name string) Option {
	return func(c *runnerConfig) { c.interpreter = name }
}

// WithVenv makes NewInterpreter run a bare interpreter name from the virtual
// environment rooted at dir. New ignores it.
func WithVenv(dir string) Option {
	return func(c *runnerConfig) { c.venv = dir }
}

// NewInterpreter builds a Runner whose argv starts with the resolved
// interpreter followed by script. With a virtual environment and a bare
// interpreter name, the venv's bin directory is searched first and the overlay
// sets VIRTUAL_ENV and prepends that directory to the inherited PATH.
func NewInterpreter(ctx context.Context, script string, opts ...Option) (*Runner, error) {
	cfg := runnerConfig{forceLang: LocaleC, interpreter: DefaultInterpreter}
	for _, opt := range opts {
		opt(&cfg)
	}

	name := cfg.interpreter
	if cfg.venv != "" && !isPathLike(name) {
		cfg.pathPrefix = append([]string{venvBinDir(cfg.venv)}, cfg.pathPrefix...)
		path := strings.Join(cfg.pathPrefix, string(os.PathListSeparator))
		if host := os.Getenv("PATH"); host != "" {
			path += string(os.PathListSeparator) + host
		}
		if cfg.environ == nil {
			cfg.environ = make(map[string]string, 2)
		}
		cfg.environ["PATH"] = path
		cfg.environ["VIRTUAL_ENV"] = cfg.venv
	}

	cfg.leadingArgs = append([]string{script}, cfg.leadingArgs...)
	return newRunner(ctx, name, cfg)
}

func isPathLike(name string) bool {
	return filepath.IsAbs(name) || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator)
}

func venvBinDir(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "Scripts")
	}
	return filepath.Join(root, "bin")
}
