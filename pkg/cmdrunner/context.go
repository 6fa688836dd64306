// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

type (
	// OutputProcess turns raw process results into the value returned by Run.
	OutputProcess func(rc int, stdout, stderr string) (any, error)

	// Context is a single-use, pre-validated binding of a parameter order and
	// output handling. Its RunInfo is only meaningful after Run.
	Context struct {
		runner          *Runner
		order           []string
		process         OutputProcess
		checkModeSkip   bool
		checkModeReturn any
		checkRC         bool
		env             map[string]string
		dir             string
		stdin           []byte
		params          ParamSource

		mu   sync.Mutex
		used bool
		info *RunInfo
	}

	// ContextOption configures a Context.
	ContextOption func(*contextConfig)

	contextConfig struct {
		order           []string
		orderSet        bool
		process         OutputProcess
		checkModeSkip   bool
		checkModeReturn any
		checkRC         *bool
		env             map[string]string
		dir             string
		stdin           []byte
		params          ParamSource
	}
)

// WithOrder sets the parameter order. Elements may be single names or
// whitespace-separated lists.
func WithOrder(names ...string) ContextOption {
	return func(c *contextConfig) {
		c.order = ParseOrder(names...)
		c.orderSet = true
	}
}

// WithOutputProcess sets the function applied to the raw results.
func WithOutputProcess(fn OutputProcess) ContextOption {
	return func(c *contextConfig) { c.process = fn }
}

// WithCheckModeSkip makes Run return ret without spawning anything when the
// runner's check mode is active.
func WithCheckModeSkip(ret any) ContextOption {
	return func(c *contextConfig) {
		c.checkModeSkip = true
		c.checkModeReturn = ret
	}
}

// WithContextCheckRC overrides the runner's return-code checking policy.
func WithContextCheckRC(check bool) ContextOption {
	return func(c *contextConfig) { c.checkRC = &check }
}

// WithEnv adds an environment overlay on top of the runner's base overlay.
func WithEnv(env map[string]string) ContextOption {
	return func(c *contextConfig) {
		if c.env == nil {
			c.env = make(map[string]string, len(env))
		}
		maps.Copy(c.env, env)
	}
}

// WithDir sets the working directory of the process.
func WithDir(dir string) ContextOption {
	return func(c *contextConfig) { c.dir = dir }
}

// WithStdin feeds data to the process's standard input.
func WithStdin(data []byte) ContextOption {
	return func(c *contextConfig) { c.stdin = slices.Clone(data) }
}

// WithParamSource overrides the runner's named-parameter source.
func WithParamSource(p ParamSource) ContextOption {
	return func(c *contextConfig) { c.params = p }
}

// Identity is the default OutputProcess; it returns the raw Output.
func Identity(rc int, stdout, stderr string) (any, error) {
	return Output{RC: rc, Stdout: stdout, Stderr: stderr}, nil
}

// Context validates the requested order against the registry and returns a new
// Context. It never spawns a process.
func (r *Runner) Context(opts ...ContextOption) (*Context, error) {
	var cfg contextConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	order := r.defaultOrder
	if cfg.orderSet {
		order = cfg.order
	}
	resolved, err := r.registry.ResolveOrder(order...)
	if err != nil {
		return nil, err
	}

	c := &Context{
		runner:          r,
		order:           resolved,
		process:         cfg.process,
		checkModeSkip:   cfg.checkModeSkip,
		checkModeReturn: cfg.checkModeReturn,
		checkRC:         r.checkRC,
		env:             cfg.env,
		dir:             cfg.dir,
		stdin:           cfg.stdin,
		params:          r.params,
	}
	if c.process == nil {
		c.process = Identity
	}
	if cfg.checkRC != nil {
		c.checkRC = *cfg.checkRC
	}
	if cfg.params != nil {
		c.params = cfg.params
	}
	return c, nil
}

// Order returns the bound parameter order.
func (c *Context) Order() []string { return slices.Clone(c.order) }

// Environ returns the merged environment overlay: runner base, then context
// overlay, then the forced locale, which always wins for LANGUAGE and LC_ALL.
// The result is a fresh map.
func (c *Context) Environ() map[string]string {
	env := make(map[string]string, len(c.runner.environ)+len(c.env)+2)
	maps.Copy(env, c.runner.environ)
	maps.Copy(env, c.env)
	if lang := c.runner.locale; lang != "" {
		env["LANGUAGE"] = lang
		env["LC_ALL"] = lang
	}
	return env
}

// BuildArgv formats values in the bound order and returns the full argument
// vector without running anything.
func (c *Context) BuildArgv(values Values) ([]string, error) {
	argv := slices.Clone(c.runner.command)
	for _, name := range c.order {
		format, _ := c.runner.registry.Get(name)

		value, ok := values[name]
		if !ok && c.params != nil {
			value, ok = c.params.Lookup(name)
		}
		if !ok {
			if !format.IgnoresMissingValue() {
				return nil, &MissingArgumentValueError{Name: name, Order: slices.Clone(c.order)}
			}
			argv = append(argv, format.FormatMissing()...)
			continue
		}

		tokens, err := format.Format(value)
		if err != nil {
			return nil, &FormatError{Name: name, Value: value, Format: format.String(), Err: err}
		}
		argv = append(argv, tokens...)
	}
	return argv, nil
}

// Run formats the bound parameters, spawns the process once and returns the
// output process's result. In check mode with WithCheckModeSkip it returns the
// configured value without spawning. A Context runs at most once.
func (c *Context) Run(ctx context.Context, values Values) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.used {
		return nil, ErrContextUsed
	}
	c.used = true

	checkMode := c.runner.checkMode()
	info := &RunInfo{
		CheckRC:   c.checkRC,
		CheckMode: checkMode,
		Environ:   c.Environ(),
		Order:     slices.Clone(c.order),
	}
	c.info = info

	if checkMode && c.checkModeSkip {
		c.runner.logger.Debug("check mode: skipping command", "command", c.runner.command[0])
		info.Skipped = true
		info.CheckRC = false
		info.Processed = c.checkModeReturn
		return c.checkModeReturn, nil
	}

	argv, err := c.BuildArgv(values)
	if err != nil {
		return nil, err
	}
	info.Cmd = argv

	c.runner.logger.Debug("running command", "argv", argv, "dir", c.dir)
	out, err := c.runner.executor.Execute(ctx, Invocation{
		Argv:  slices.Clone(argv),
		Env:   maps.Clone(info.Environ),
		Dir:   c.dir,
		Stdin: c.stdin,
	})
	if err != nil {
		return nil, &LaunchError{Argv: slices.Clone(argv), Err: err}
	}
	info.Ran = true
	info.RC, info.Stdout, info.Stderr = out.RC, out.Stdout, out.Stderr

	if info.CheckRC && out.RC != 0 {
		return nil, &NonZeroExitError{Argv: slices.Clone(argv), RC: out.RC, Stdout: out.Stdout, Stderr: out.Stderr}
	}

	processed, err := c.process(out.RC, out.Stdout, out.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to process output of %s: %w", argv[0], err)
	}
	info.Processed = processed
	return processed, nil
}

// RunInfo returns a snapshot of the diagnostics. ok is false before Run.
func (c *Context) RunInfo() (info RunInfo, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.info == nil {
		return RunInfo{}, false
	}
	return c.info.clone(), true
}
