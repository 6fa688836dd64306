// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/invowk/cmdrunner/internal/toolfile"
)

func TestToolsList(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	if err := h.execute("tools", "list"); err != nil {
		t.Fatalf("tools list error = %v", err)
	}
	out := h.stdout.String()
	strictAt, toastAt := strings.Index(out, "strict"), strings.Index(out, "toast")
	if strictAt < 0 || toastAt < 0 || strictAt > toastAt {
		t.Errorf("tools list = %q, want strict then toast", out)
	}
	if !strings.Contains(out, "Makes toast") {
		t.Errorf("tools list = %q, want description", out)
	}
}

func TestToolsDescribe(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	if err := h.execute("tools", "describe", "toast"); err != nil {
		t.Fatalf("tools describe error = %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"toast", "--answer", "opt_eq_val", "answer bb"} {
		if !strings.Contains(out, want) {
			t.Errorf("tools describe output missing %q:\n%s", want, out)
		}
	}
}

func TestToolMarkdown(t *testing.T) {
	t.Parallel()

	lang := "fr_FR.UTF-8"
	md := toolMarkdown(&toolfile.Tool{
		Name:        "convert",
		Command:     "convert.py",
		LeadingArgs: []string{"--fast"},
		Interpreter: &toolfile.Interpreter{},
		Args: map[string]*toolfile.Arg{
			"sizes": {Format: toolfile.FormatStack, Inner: &toolfile.Arg{Format: toolfile.FormatOptVal, Option: "-s"}},
		},
		Params:    map[string]any{"sizes": []any{1, 2}},
		CheckRC:   true,
		ForceLang: &lang,
	})

	for _, want := range []string{
		"# convert",
		"python convert.py --fast",
		"| sizes | stack of opt_val |",
		"`[1 2]`",
		"non-zero exit code is an error",
		"`fr_FR.UTF-8`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("toolMarkdown() missing %q:\n%s", want, md)
		}
	}
}
