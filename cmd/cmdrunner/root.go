// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/internal/toolfile"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Run external tools through declared argument formats",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - run external tools through declared argument formats") + `

Tools are declared in a CUE toolfile (default: ` + toolfile.DefaultFileName + `). Each
parameter has a format that turns a value into command-line tokens; a run
formats the parameters in order, spawns the tool once and reports rc,
stdout and stderr.

` + SubtitleStyle.Render("Examples:") + `
  cmdrunner tools list                   List declared tools
  cmdrunner run ls -p long=true -p path='"/tmp"'
  cmdrunner run git --check --order "subcommand args"
  cmdrunner validate                     Resolve every tool`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/cmdrunner/config.cue)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringArrayVarP(&flags.toolfiles, "toolfile", "f", nil, "toolfile to load (repeatable; default "+toolfile.DefaultFileName+")")
	pf.StringVar(&flags.executor, "executor", "", "executor override: native, virtual or container")

	rootCmd.AddCommand(
		newRunCommand(app, flags),
		newToolsCommand(app, flags),
		newValidateCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return rootCmd
}

// Execute runs the CLI and exits with the command's status.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
