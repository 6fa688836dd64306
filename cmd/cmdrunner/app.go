// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/internal/container"
	"github.com/invowk/cmdrunner/internal/runtime"
	"github.com/invowk/cmdrunner/internal/toolfile"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives it and reaches configuration, toolfiles and executors through it.
	App struct {
		Config   config.Provider
		Executor cmdrunner.Executor
		LookPath container.LookPathFunc
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Executor replaces the executor chosen by configuration.
		Executor cmdrunner.Executor
		LookPath container.LookPathFunc
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// rootFlags are the persistent flags shared by all subcommands.
	rootFlags struct {
		configPath string
		verbose    bool
		toolfiles  []string
		executor   string
	}

	// session is the per-invocation state resolved from configuration and flags.
	session struct {
		cfg     *config.Config
		path    string
		logger  *log.Logger
		backend *runtime.Backend
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:   deps.Config,
		Executor: deps.Executor,
		LookPath: deps.LookPath,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// open loads configuration, applies flag overrides and selects the backend.
func (a *App) open(ctx context.Context, flags *rootFlags) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.UI.Verbose = true
	}
	if len(flags.toolfiles) > 0 {
		cfg.Toolfiles = flags.toolfiles
	}
	if flags.executor != "" {
		cfg.Executor = config.ExecutorKind(flags.executor)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := runtime.NewBackend(cfg, a.LookPath)
	if err != nil {
		return nil, err
	}
	if a.Executor != nil {
		backend.Executor = a.Executor
	}

	return &session{
		cfg:     cfg,
		path:    a.Config.Path(),
		logger:  newLogger(a.stderr, cfg),
		backend: backend,
	}, nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		level = log.WarnLevel
	}
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Prefix: config.AppName, Level: level})
}

// toolfile loads the configured toolfiles, or toolfile.cue in the working directory.
func (s *session) toolfile() (*toolfile.Toolfile, error) {
	paths := s.cfg.Toolfiles
	if len(paths) == 0 {
		paths = []string{toolfile.DefaultFileName}
	}
	return toolfile.Load(paths...)
}

// runnerOptions are the caller options layered over a tool's declaration.
// Configuration only fills in what the tool leaves undeclared.
func (s *session) runnerOptions(t *toolfile.Tool, extra ...cmdrunner.Option) []cmdrunner.Option {
	opts := append(s.backend.Options(), cmdrunner.WithLogger(s.logger))
	if t.ForceLang == nil {
		opts = append(opts, cmdrunner.WithForceLang(s.cfg.ForceLang))
	}
	if s.cfg.CheckRC {
		opts = append(opts, cmdrunner.WithCheckRC(true))
	}
	return append(opts, extra...)
}
