// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// RunInfo is the diagnostic record of one Context.Run.
type RunInfo struct {
	// CheckRC is the effective return-code checking policy; false when the run
	// was skipped by check mode.
	CheckRC bool `json:"check_rc" toml:"check_rc"`
	// CheckMode is the check-mode flag read at Run time.
	CheckMode bool `json:"check_mode" toml:"check_mode"`
	// Skipped is true when check mode short-circuited the run.
	Skipped bool `json:"skipped" toml:"skipped"`
	// Ran is true once the process was spawned and waited for.
	Ran bool `json:"ran" toml:"ran"`
	// Environ is the merged environment overlay.
	Environ map[string]string `json:"environ" toml:"environ"`
	// Order is the parameter order used.
	Order []string `json:"order" toml:"order"`
	// Cmd is the built argument vector; empty when skipped.
	Cmd []string `json:"cmd" toml:"cmd"`

	RC     int    `json:"rc" toml:"rc"`
	Stdout string `json:"stdout" toml:"stdout"`
	Stderr string `json:"stderr" toml:"stderr"`

	// Processed is what the output process returned.
	Processed any `json:"processed,omitempty" toml:"-"`
}

// CommandLine renders Cmd as a shell-quoted string for display.
func (i RunInfo) CommandLine() string {
	parts := make([]string, 0, len(i.Cmd))
	for _, arg := range i.Cmd {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Arguments bash cannot represent (NUL bytes) are shown verbatim.
			quoted = arg
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}

func (i RunInfo) clone() RunInfo {
	i.Environ = maps.Clone(i.Environ)
	i.Order = slices.Clone(i.Order)
	i.Cmd = slices.Clone(i.Cmd)
	return i
}
