// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/invowk/cmdrunner/internal/toolfile"
)

// toolCheck is the outcome of validating one tool.
type toolCheck struct {
	Name string
	Path string
	Err  error
}

func newValidateCommand(app *App, root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [tool...]",
		Short: "Resolve every tool's executable and default order",
		Long: `Validate the toolfile: every tool (or only the named ones) is built,
which resolves its executable and checks that each parameter in its default
order has a format. Nothing is run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.validate(cmd.Context(), root, args)
		},
	}
}

func (a *App) validate(ctx context.Context, root *rootFlags, names []string) error {
	s, err := a.open(ctx, root)
	if err != nil {
		return reportError(a.stderr, err, root.verbose, "auto")
	}
	tf, err := s.toolfile()
	if err != nil {
		return reportError(a.stderr, err, s.cfg.UI.Verbose, s.cfg.UI.Style)
	}
	if len(names) == 0 {
		names = tf.Names()
	}

	checks := validateTools(ctx, s, tf, names)

	var errs []error
	for _, c := range checks {
		if c.Err != nil {
			fmt.Fprintf(a.stdout, "%s %s: %v\n", ErrorStyle.Render("✗"), CmdStyle.Render(c.Name), c.Err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, c.Err))
			continue
		}
		fmt.Fprintf(a.stdout, "%s %s %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(c.Name), SubtitleStyle.Render(c.Path))
	}
	if len(errs) > 0 {
		return reportError(a.stderr, errors.Join(errs...), s.cfg.UI.Verbose, s.cfg.UI.Style)
	}
	return nil
}

// validateTools checks the named tools concurrently. Results keep the order
// of names; one failing tool does not cancel the others.
func validateTools(ctx context.Context, s *session, tf *toolfile.Toolfile, names []string) []toolCheck {
	checks := make([]toolCheck, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		g.Go(func() error {
			checks[i] = checkTool(ctx, s, tf, name)
			return nil
		})
	}
	_ = g.Wait()
	return checks
}

func checkTool(ctx context.Context, s *session, tf *toolfile.Toolfile, name string) toolCheck {
	check := toolCheck{Name: name}
	tool, err := tf.Tool(name)
	if err != nil {
		check.Err = err
		return check
	}
	r, err := toolfile.Build(ctx, tool, s.runnerOptions(tool)...)
	if err != nil {
		check.Err = err
		return check
	}
	if _, err := r.Context(); err != nil {
		check.Err = err
		return check
	}
	check.Path = r.Path()
	return check
}
