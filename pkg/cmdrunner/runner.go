// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"context"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"
)

type (
	// Runner is the immutable configuration for invoking one external tool.
	// It is safe to create any number of Contexts from one Runner.
	Runner struct {
		command      []string
		registry     *Registry
		defaultOrder []string
		checkRC      bool
		locale       string
		pathPrefix   []string
		environ      map[string]string
		params       ParamSource
		executor     Executor
		checkMode    func() bool
		logger       *log.Logger
	}

	// Option configures a Runner.
	Option func(*runnerConfig)

	runnerConfig struct {
		formats      map[string]any
		defaultOrder []string
		leadingArgs  []string
		checkRC      bool
		forceLang    string
		pathPrefix   []string
		environ      map[string]string
		resolver     Resolver
		executor     Executor
		params       ParamSource
		checkMode    func() bool
		prober       LocaleProber
		logger       *log.Logger
		interpreter  string
		venv         string
	}
)

// WithFormats sets the parameter formats. Values are *argfmt.ArgFormat or bare
// functions accepted by argfmt.Normalize.
func WithFormats(formats map[string]any) Option {
	return func(c *runnerConfig) { c.formats = maps.Clone(formats) }
}

// WithDefaultOrder sets the order used when a Context does not name one.
// Elements may be single names or whitespace-separated lists.
func WithDefaultOrder(names ...string) Option {
	return func(c *runnerConfig) { c.defaultOrder = ParseOrder(names...) }
}

// WithLeadingArgs adds fixed tokens right after the executable, such as a
// subcommand.
func WithLeadingArgs(args ...string) Option {
	return func(c *runnerConfig) { c.leadingArgs = append([]string{}, args...) }
}

// WithCheckRC makes a non-zero exit a NonZeroExitError by default.
func WithCheckRC(check bool) Option {
	return func(c *runnerConfig) { c.checkRC = check }
}

// WithForceLang sets the locale forced through LANGUAGE and LC_ALL.
// LocaleAuto probes the host, falling back to "C"; an empty string disables
// forcing; anything else is used verbatim. The default is LocaleC.
func WithForceLang(lang string) Option {
	return func(c *runnerConfig) { c.forceLang = lang }
}

// WithPathPrefix adds directories searched before PATH for the executable.
func WithPathPrefix(dirs ...string) Option {
	return func(c *runnerConfig) { c.pathPrefix = append(c.pathPrefix, dirs...) }
}

// WithEnviron sets the base environment overlay for every invocation.
func WithEnviron(env map[string]string) Option {
	return func(c *runnerConfig) {
		if c.environ == nil {
			c.environ = make(map[string]string, len(env))
		}
		maps.Copy(c.environ, env)
	}
}

// WithResolver replaces the executable resolver.
func WithResolver(r Resolver) Option {
	return func(c *runnerConfig) { c.resolver = r }
}

// WithExecutor replaces the process executor.
func WithExecutor(e Executor) Option {
	return func(c *runnerConfig) { c.executor = e }
}

// WithParams sets the named-parameter source consulted for values Run is not given.
func WithParams(p ParamSource) Option {
	return func(c *runnerConfig) { c.params = p }
}

// WithCheckMode sets the dry-run flag, read once per Run.
func WithCheckMode(fn func() bool) Option {
	return func(c *runnerConfig) { c.checkMode = fn }
}

// WithLocaleProber replaces the prober used for LocaleAuto.
func WithLocaleProber(p LocaleProber) Option {
	return func(c *runnerConfig) { c.prober = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *runnerConfig) { c.logger = l }
}

// DefaultLogger returns the logger used when WithLogger is not given.
func DefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cmdrunner",
		Level:  log.WarnLevel,
	})
}

// New builds a Runner for the executable name. The executable is resolved
// immediately; failure returns an ExecutableNotFoundError.
func New(ctx context.Context, name string, opts ...Option) (*Runner, error) {
	cfg := runnerConfig{forceLang: LocaleC}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newRunner(ctx, name, cfg)
}

func newRunner(ctx context.Context, name string, cfg runnerConfig) (*Runner, error) {
	if cfg.resolver == nil {
		cfg.resolver = PathResolver{}
	}
	if cfg.executor == nil {
		cfg.executor = ExecExecutor{}
	}
	if cfg.logger == nil {
		cfg.logger = DefaultLogger()
	}
	if cfg.checkMode == nil {
		cfg.checkMode = func() bool { return false }
	}

	registry, err := NewRegistry(cfg.formats)
	if err != nil {
		return nil, err
	}

	path, err := cfg.resolver.Resolve(name, cfg.pathPrefix)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("resolved executable", "name", name, "path", path)

	locale := cfg.forceLang
	if locale == LocaleAuto {
		locale = probeLocale(ctx, cfg)
	}

	return &Runner{
		command:      append([]string{path}, cfg.leadingArgs...),
		registry:     registry,
		defaultOrder: cfg.defaultOrder,
		checkRC:      cfg.checkRC,
		locale:       locale,
		pathPrefix:   slices.Clone(cfg.pathPrefix),
		environ:      maps.Clone(cfg.environ),
		params:       cfg.params,
		executor:     cfg.executor,
		checkMode:    cfg.checkMode,
		logger:       cfg.logger,
	}, nil
}

func probeLocale(ctx context.Context, cfg runnerConfig) string {
	prober := cfg.prober
	if prober == nil {
		prober = CommandLocaleProber{Executor: cfg.executor, Resolver: cfg.resolver}
	}
	locale, err := prober.BestParsableLocale(ctx)
	if err != nil || locale == "" {
		cfg.logger.Warn("locale probe failed, using C", "err", err)
		return LocaleC
	}
	return locale
}

// Path returns the resolved executable path.
func (r *Runner) Path() string { return r.command[0] }

// Command returns the executable path followed by any leading arguments.
func (r *Runner) Command() []string { return slices.Clone(r.command) }

// Locale returns the forced locale, or "" when forcing is disabled.
func (r *Runner) Locale() string { return r.locale }

// DefaultOrder returns the default parameter order.
func (r *Runner) DefaultOrder() []string { return slices.Clone(r.defaultOrder) }

// CheckRC returns the default return-code checking policy.
func (r *Runner) CheckRC() bool { return r.checkRC }

// Registry returns the runner's format registry.
func (r *Runner) Registry() *Registry { return r.registry }

// HasFormat reports whether name has a registered format.
func (r *Runner) HasFormat(name string) bool { return r.registry.Has(name) }

// Environ returns a copy of the base environment overlay.
func (r *Runner) Environ() map[string]string { return maps.Clone(r.environ) }
