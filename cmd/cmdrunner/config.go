// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/internal/toolfile"
)

// newConfigCommand creates the `cmdrunner config` command tree.
func newConfigCommand(app *App, root *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect cmdrunner configuration",
		Long: `Inspect cmdrunner configuration.

Configuration is read from config.cue in the platform configuration
directory, then config.cue in the working directory, and finally from
CMDRUNNER_* environment variables (CMDRUNNER_EXECUTOR, CMDRUNNER_UI_OUTPUT, ...).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd.Context(), root)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show which configuration file is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath(cmd.Context(), root)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), root)
			if err != nil {
				return reportError(app.stderr, err, root.verbose, "auto")
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(ctx context.Context, root *rootFlags) error {
	s, err := a.open(ctx, root)
	if err != nil {
		return reportError(a.stderr, err, root.verbose, "auto")
	}
	cfg := s.cfg

	toolfiles := "(" + toolfile.DefaultFileName + ")"
	if len(cfg.Toolfiles) > 0 {
		toolfiles = strings.Join(cfg.Toolfiles, ", ")
	}
	engine := string(cfg.Container.Engine)
	if cfg.Container.Name != "" {
		engine += " " + cfg.Container.Name
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(a.stdout)
	for _, kv := range [][2]string{
		{"file", orDefault(s.path, "(defaults)")},
		{"toolfiles", toolfiles},
		{"executor", string(cfg.Executor)},
		{"force_lang", orDefault(cfg.ForceLang, "(disabled)")},
		{"check_rc", strconv.FormatBool(cfg.CheckRC)},
		{"container", engine},
		{"output", string(cfg.UI.Output)},
		{"verbose", strconv.FormatBool(cfg.UI.Verbose)},
		{"log level", cfg.Log.Level},
	} {
		fmt.Fprintf(a.stdout, "%s %s\n", keyStyle.Render(kv[0]), SuccessStyle.Render(kv[1]))
	}
	return nil
}

func (a *App) showConfigPath(ctx context.Context, root *rootFlags) error {
	s, err := a.open(ctx, root)
	if err != nil {
		return reportError(a.stderr, err, root.verbose, "auto")
	}
	if s.path != "" {
		fmt.Fprintln(a.stdout, s.path)
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return reportError(a.stderr, err, s.cfg.UI.Verbose, s.cfg.UI.Style)
	}
	fmt.Fprintln(a.stdout, filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Fprintln(a.stdout, SubtitleStyle.Render("(not present; defaults in use)"))
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
