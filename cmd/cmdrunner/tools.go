// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/invowk/cmdrunner/internal/toolfile"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

func newToolsCommand(app *App, root *rootFlags) *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect declared tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	toolsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List declared tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listTools(cmd.Context(), root)
		},
	})

	toolsCmd.AddCommand(&cobra.Command{
		Use:   "describe <tool>",
		Short: "Describe a tool's command and parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.describeTool(cmd.Context(), root, args[0])
		},
	})

	return toolsCmd
}

func (a *App) listTools(ctx context.Context, root *rootFlags) error {
	s, err := a.open(ctx, root)
	if err != nil {
		return reportError(a.stderr, err, root.verbose, "auto")
	}
	tf, err := s.toolfile()
	if err != nil {
		return reportError(a.stderr, err, s.cfg.UI.Verbose, s.cfg.UI.Style)
	}

	names := tf.Names()
	if len(names) == 0 {
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("No tools declared."))
		return nil
	}
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		t := tf.Tools[n]
		fmt.Fprintf(a.stdout, "%s  %s\n", CmdStyle.Render(fmt.Sprintf("%-*s", width, n)), SubtitleStyle.Render(t.Description))
	}
	return nil
}

func (a *App) describeTool(ctx context.Context, root *rootFlags, name string) error {
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
	tool, err := tf.Tool(name)
	if err != nil {
		return fail(err)
	}

	rendered, err := glamour.Render(toolMarkdown(tool), s.cfg.UI.Style)
	if err != nil {
		return fail(err)
	}
	fmt.Fprint(a.stdout, rendered)
	return nil
}

// toolMarkdown documents a tool declaration.
func toolMarkdown(t *toolfile.Tool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description)
	}

	command := t.Command
	if t.Interpreter != nil {
		interp := t.Interpreter.Name
		if interp == "" {
			interp = cmdrunner.DefaultInterpreter
		}
		command = interp + " " + command
	}
	if len(t.LeadingArgs) > 0 {
		command += " " + strings.Join(t.LeadingArgs, " ")
	}
	fmt.Fprintf(&b, "```sh\n%s\n```\n\n", command)

	if len(t.Args) > 0 {
		b.WriteString("## Parameters\n\n| Name | Format | Option | Default value |\n|---|---|---|---|\n")
		for _, n := range slices.Sorted(maps.Keys(t.Args)) {
			arg := t.Args[n]
			def := ""
			if v, ok := t.Params[n]; ok {
				def = fmt.Sprintf("`%v`", v)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", n, describeFormat(arg), codeOrEmpty(arg.Option), def)
		}
		b.WriteString("\n")
	}

	if len(t.DefaultOrder) > 0 {
		fmt.Fprintf(&b, "Default order: `%s`\n\n", strings.Join(t.DefaultOrder, " "))
	}
	if t.CheckRC {
		b.WriteString("A non-zero exit code is an error.\n\n")
	}
	if t.ForceLang != nil {
		fmt.Fprintf(&b, "Locale: `%s`\n\n", *t.ForceLang)
	}
	return b.String()
}

func describeFormat(a *toolfile.Arg) string {
	if a.Format == toolfile.FormatStack && a.Inner != nil {
		return "stack of " + string(a.Inner.Format)
	}
	return string(a.Format)
}

func codeOrEmpty(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}
