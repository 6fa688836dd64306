// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/internal/toolfile"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

type (
	runFlags struct {
		params  []string
		order   string
		check   bool
		checkRC bool
		output  string
		dir     string
	}

	// runRequest captures a run's inputs independently of cobra.
	runRequest struct {
		Tool    string
		Values  cmdrunner.Values
		Order   []string
		Check   bool
		CheckRC *bool
		Dir     string
		Output  config.OutputFormat
	}
)

func newRunCommand(app *App, root *rootFlags) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <tool>",
		Short: "Run a declared tool once",
		Long: `Run a declared tool once and print the run report.

Parameter values are given as -p name=value. A value that parses as JSON
(true, 11, ["a","b"], {"k":"v"}, null) is passed decoded; anything else is
passed as a plain string. Values not given fall back to the tool's params.

A non-zero exit code is propagated as cmdrunner's own exit code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseParams(flags.params)
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err, root.verbose, "auto")
			}
			if err := checkOutputFormat(flags.output); err != nil {
				return reportError(cmd.ErrOrStderr(), err, root.verbose, "auto")
			}
			req := runRequest{
				Tool:   args[0],
				Values: values,
				Check:  flags.check,
				Dir:    flags.dir,
				Output: config.OutputFormat(flags.output),
			}
			if cmd.Flags().Changed("order") {
				req.Order = cmdrunner.ParseOrder(flags.order)
				if req.Order == nil {
					req.Order = []string{}
				}
			}
			if cmd.Flags().Changed("check-rc") {
				req.CheckRC = &flags.checkRC
			}
			return app.run(cmd.Context(), root, req)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.params, "param", "p", nil, "parameter value as name=value (repeatable)")
	cmd.Flags().StringVar(&flags.order, "order", "", "whitespace-separated parameter order (default: the tool's default_order)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "check mode: show the command line without running it")
	cmd.Flags().BoolVar(&flags.checkRC, "check-rc", false, "treat a non-zero exit code as an error")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "report format: text, json or toml (default from config)")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "working directory of the tool")
	return cmd
}

// parseParams turns name=value pairs into run values.
func parseParams(pairs []string) (cmdrunner.Values, error) {
	values := make(cmdrunner.Values, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q is not name=value", errInvalidParameter, pair)
		}
		values[name] = decodeValue(raw)
	}
	return values, nil
}

// checkOutputFormat rejects an unknown --output before anything runs. Empty
// means the configured default.
func checkOutputFormat(format string) error {
	switch config.OutputFormat(format) {
	case "", config.OutputText, config.OutputJSON, config.OutputTOML:
		return nil
	}
	return fmt.Errorf("%w: unknown output format %q (want text, json or toml)", errInvalidParameter, format)
}

func decodeValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	// JSON numbers decode as float64; whole ones are kept integral.
	if f, ok := v.(float64); ok && math.Abs(f) < 1<<53 && f == math.Trunc(f) {
		return int64(f)
	}
	return v
}

func (a *App) run(ctx context.Context, root *rootFlags, req runRequest) error {
	s, err := a.open(ctx, root)
	if err != nil {
		return reportError(a.stderr, err, root.verbose, "auto")
	}
	fail := func(err error) error {
		return reportError(a.stderr, err, s.cfg.UI.Verbose, s.cfg.UI.Style)
	}

	tf, err := s.toolfile()
	if err != nil {
		return fail(err)
	}
	tool, err := tf.Tool(req.Tool)
	if err != nil {
		return fail(err)
	}

	check := req.Check
	r, err := toolfile.Build(ctx, tool, s.runnerOptions(tool, cmdrunner.WithCheckMode(func() bool { return check }))...)
	if err != nil {
		return fail(err)
	}

	var copts []cmdrunner.ContextOption
	if req.Order != nil {
		copts = append(copts, cmdrunner.WithOrder(req.Order...))
	}
	if req.CheckRC != nil {
		copts = append(copts, cmdrunner.WithContextCheckRC(*req.CheckRC))
	}
	if req.Dir != "" {
		copts = append(copts, cmdrunner.WithDir(req.Dir))
	}
	if req.Check {
		copts = append(copts, cmdrunner.WithCheckModeSkip(nil))
	}

	c, err := r.Context(copts...)
	if err != nil {
		return fail(err)
	}

	report := runReport{Tool: tool.Name, Executor: string(s.backend.Kind)}
	if req.Check {
		// Check mode never spawns; the planned command line is shown when the
		// values are complete enough to build it.
		if argv, err := c.BuildArgv(req.Values); err == nil {
			report.Planned = argv
		} else {
			s.logger.Debug("cannot plan command line", "tool", tool.Name, "err", err)
		}
	}

	_, runErr := c.Run(ctx, req.Values)
	if info, ok := c.RunInfo(); ok {
		report.Info = info
	}
	if runErr != nil {
		return fail(runErr)
	}

	format := req.Output
	if format == "" {
		format = s.cfg.UI.Output
	}
	if err := writeReport(a.stdout, report, format); err != nil {
		return fail(err)
	}
	if report.Info.Ran && report.Info.RC != 0 {
		return &ExitError{Code: report.Info.RC}
	}
	return nil
}
