// SPDX-License-Identifier: MPL-2.0

package toolfile

import (
	"context"

	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

// Build turns the declaration into a Runner. opts are applied after the
// declared settings, so callers can override them and supply the executor,
// logger and check mode.
func Build(ctx context.Context, t *Tool, opts ...cmdrunner.Option) (*cmdrunner.Runner, error) {
	declared, err := t.Options()
	if err != nil {
		return nil, err
	}
	all := append(declared, opts...)

	if t.Interpreter != nil {
		return cmdrunner.NewInterpreter(ctx, resolvePath(t.Command, t.Dir), all...)
	}
	return cmdrunner.New(ctx, t.Command, all...)
}

// Options returns the runner options the declaration implies.
func (t *Tool) Options() ([]cmdrunner.Option, error) {
	formats, err := t.Formats()
	if err != nil {
		return nil, err
	}
	env, err := t.Environ()
	if err != nil {
		return nil, err
	}

	opts := []cmdrunner.Option{
		cmdrunner.WithFormats(formats),
		cmdrunner.WithDefaultOrder(t.DefaultOrder...),
		cmdrunner.WithCheckRC(t.CheckRC),
		cmdrunner.WithLeadingArgs(t.LeadingArgs...),
	}
	if t.ForceLang != nil {
		opts = append(opts, cmdrunner.WithForceLang(*t.ForceLang))
	}
	if len(t.PathPrefix) > 0 {
		dirs := make([]string, 0, len(t.PathPrefix))
		for _, d := range t.PathPrefix {
			dirs = append(dirs, resolvePath(d, t.Dir))
		}
		opts = append(opts, cmdrunner.WithPathPrefix(dirs...))
	}
	if len(env) > 0 {
		opts = append(opts, cmdrunner.WithEnviron(env))
	}
	if len(t.Params) > 0 {
		opts = append(opts, cmdrunner.WithParams(cmdrunner.Params(t.Params)))
	}
	if t.Interpreter != nil {
		if t.Interpreter.Name != "" {
			opts = append(opts, cmdrunner.WithInterpreter(t.Interpreter.Name))
		}
		if t.Interpreter.Venv != "" {
			opts = append(opts, cmdrunner.WithVenv(resolvePath(t.Interpreter.Venv, t.Dir)))
		}
	}
	return opts, nil
}
