// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
	"github.com/invowk/cmdrunner/pkg/cmdrunner/cmdrunnertest"
)

const testToolfile = `
tools: {
	toast: {
		command:     "/usr/bin/toast"
		description: "Makes toast"
		args: {
			answer: {format: "opt_eq_val", option: "--answer"}
			bb:     {format: "flag", option: "--bb-here"}
			slices: {format: "list"}
			bread:  {format: "map", map: {white: ["-w"], rye: ["-r"]}}
		}
		default_order: ["answer", "bb"]
		params: {answer: 11, bb: false}
	}
	strict: {
		command:  "/usr/bin/strict"
		check_rc: true
		force_lang: ""
	}
}
`

// staticConfig is a config.Provider returning a fixed configuration.
type staticConfig struct {
	cfg  *config.Config
	path string
	err  error
}

func (s *staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := *s.cfg
	return &c, nil
}

func (s *staticConfig) Path() string { return s.path }

type harness struct {
	exec   *cmdrunnertest.Executor
	cfg    *config.Config
	stdout bytes.Buffer
	stderr bytes.Buffer
	app    *App
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "toolfile.cue")
	if err := os.WriteFile(path, []byte(testToolfile), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	h := &harness{exec: &cmdrunnertest.Executor{}, cfg: config.DefaultConfig()}
	h.cfg.Toolfiles = []string{path}
	h.app = NewApp(Dependencies{
		Config:   &staticConfig{cfg: h.cfg},
		Executor: h.exec,
		Stdout:   &h.stdout,
		Stderr:   &h.stderr,
	})
	return h
}

func (h *harness) execute(args ...string) error {
	root := NewRootCommand(h.app)
	root.SetArgs(args)
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	return root.ExecuteContext(context.Background())
}

func (h *harness) respond(out cmdrunner.Output) {
	h.exec.Output = out
}
