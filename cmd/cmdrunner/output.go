// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

// runReport is what `run` prints.
type runReport struct {
	Tool     string `json:"tool" toml:"tool"`
	Executor string `json:"executor" toml:"executor"`
	// Planned is the command line check mode would have run.
	Planned []string          `json:"planned,omitempty" toml:"planned,omitempty"`
	Info    cmdrunner.RunInfo `json:"run" toml:"run"`
}

func writeReport(w io.Writer, report runReport, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case config.OutputTOML:
		return toml.NewEncoder(w).Encode(report)
	case config.OutputText, "":
		_, err := io.WriteString(w, renderReportText(report))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderReportText(report runReport) string {
	var b strings.Builder
	info := report.Info
	line := func(key, value string) {
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render(key), value)
	}

	b.WriteString(TitleStyle.Render(report.Tool))
	b.WriteString(SubtitleStyle.Render(" (" + report.Executor + ")"))
	b.WriteString("\n")

	switch {
	case info.Skipped:
		line("status", WarningStyle.Render("skipped (check mode)"))
		if len(report.Planned) > 0 {
			line("command", CmdStyle.Render(cmdrunner.RunInfo{Cmd: report.Planned}.CommandLine()))
		}
	case info.Ran:
		line("command", CmdStyle.Render(info.CommandLine()))
		status := SuccessStyle.Render("rc 0")
		if info.RC != 0 {
			status = ErrorStyle.Render(fmt.Sprintf("rc %d", info.RC))
		}
		line("status", status)
	}
	line("order", strings.Join(info.Order, " "))
	if len(info.Environ) > 0 {
		keys := slices.Sorted(maps.Keys(info.Environ))
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+info.Environ[k])
		}
		line("env", VerboseStyle.Render(strings.Join(pairs, " ")))
	}

	if info.Stdout != "" {
		b.WriteString("\n" + SubtitleStyle.Render("stdout:") + "\n")
		b.WriteString(info.Stdout)
		if !strings.HasSuffix(info.Stdout, "\n") {
			b.WriteString("\n")
		}
	}
	if info.Stderr != "" {
		b.WriteString("\n" + SubtitleStyle.Render("stderr:") + "\n")
		b.WriteString(info.Stderr)
		if !strings.HasSuffix(info.Stderr, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
