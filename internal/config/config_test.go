// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/cmdrunner/internal/issue"
	"github.com/invowk/cmdrunner/internal/testutil"
	"github.com/invowk/cmdrunner/pkg/cueutil"
)

func load(t *testing.T, opts LoadOptions) (*Config, Provider, error) {
	t.Helper()
	p := NewProvider()
	cfg, err := p.Load(context.Background(), opts)
	return cfg, p, err
}

func isolated(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{ConfigDirPath: t.TempDir(), BaseDir: t.TempDir()}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Executor != ExecutorNative {
		t.Errorf("Executor = %q, want %q", cfg.Executor, ExecutorNative)
	}
	if cfg.ForceLang != "C" {
		t.Errorf("ForceLang = %q, want %q", cfg.ForceLang, "C")
	}
	if cfg.Container.Engine != EnginePodman {
		t.Errorf("Container.Engine = %q, want %q", cfg.Container.Engine, EnginePodman)
	}
	if cfg.UI.Output != OutputText || cfg.Log.Level != "warn" {
		t.Errorf("UI.Output/Log.Level = %q/%q", cfg.UI.Output, cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, p, err := load(t, isolated(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Path() != "" {
		t.Errorf("Path() = %q, want empty", p.Path())
	}
	if cfg.Executor != ExecutorNative || cfg.CheckRC {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	opts := isolated(t)
	path := testutil.MustWriteFile(t, opts.ConfigDirPath, "config.cue", `
toolfiles: ["ops/tools.cue"]
executor: "container"
check_rc: true
container: {engine: "docker", name: "builder"}
ui: output: "json"
`, 0o644)

	cfg, p, err := load(t, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Path() != path {
		t.Errorf("Path() = %q, want %q", p.Path(), path)
	}
	if !slices.Equal(cfg.Toolfiles, []string{"ops/tools.cue"}) {
		t.Errorf("Toolfiles = %v", cfg.Toolfiles)
	}
	if cfg.Executor != ExecutorContainer || !cfg.CheckRC {
		t.Errorf("Executor/CheckRC = %q/%v", cfg.Executor, cfg.CheckRC)
	}
	if cfg.Container.Engine != EngineDocker || cfg.Container.Name != "builder" {
		t.Errorf("Container = %+v", cfg.Container)
	}
	if cfg.UI.Output != OutputJSON {
		t.Errorf("UI.Output = %q, want json", cfg.UI.Output)
	}
	// Untouched keys keep their defaults.
	if cfg.ForceLang != "C" || cfg.Log.Level != "warn" {
		t.Errorf("ForceLang/Log.Level = %q/%q, want defaults", cfg.ForceLang, cfg.Log.Level)
	}
}

func TestLoad_BaseDirFallback(t *testing.T) {
	opts := isolated(t)
	path := testutil.MustWriteFile(t, opts.BaseDir, "config.cue", `force_lang: "auto"`, 0o644)

	cfg, p, err := load(t, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Path() != path || cfg.ForceLang != "auto" {
		t.Errorf("Path()/ForceLang = %q/%q", p.Path(), cfg.ForceLang)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	opts := isolated(t)
	testutil.MustWriteFile(t, opts.ConfigDirPath, "config.cue", `executor: "virtual"
ui: verbose: false`, 0o644)

	defer testutil.MustSetenv(t, "CMDRUNNER_EXECUTOR", "native")()
	defer testutil.MustSetenv(t, "CMDRUNNER_UI_VERBOSE", "true")()
	defer testutil.MustSetenv(t, "CMDRUNNER_CONTAINER_ENGINE", "docker")()

	cfg, _, err := load(t, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Executor != ExecutorNative {
		t.Errorf("Executor = %q, want env override native", cfg.Executor)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want env override true")
	}
	if cfg.Container.Engine != EngineDocker {
		t.Errorf("Container.Engine = %q, want docker", cfg.Container.Engine)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	defer testutil.MustSetenv(t, "CMDRUNNER_EXECUTOR", "teleport")()

	_, _, err := load(t, isolated(t))
	if !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("Load() error = %v, want ErrInvalidSetting", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("Load() error = %v, want ActionableError with ConfigLoadFailedId", err)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	opts := isolated(t)
	testutil.MustWriteFile(t, opts.ConfigDirPath, "config.cue", `executor: "teleport"`, 0o644)

	_, _, err := load(t, opts)
	var se *cueutil.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Load() error = %v, want *cueutil.SchemaError", err)
	}
	if !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("Error() = %q, want operation context", err.Error())
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	opts := isolated(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "nope.cue")

	_, _, err := load(t, opts)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Resource != opts.ConfigFilePath {
		t.Errorf("Load() error = %v, want ActionableError naming the file", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toolfiles = []string{"a.cue", "b.cue"}
	cfg.Executor = ExecutorVirtual
	cfg.Container.Name = "box"

	opts := isolated(t)
	testutil.MustWriteFile(t, opts.ConfigDirPath, "config.cue", GenerateCUE(cfg), 0o644)

	got, _, err := load(t, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(got.Toolfiles, cfg.Toolfiles) || got.Executor != ExecutorVirtual || got.Container.Name != "box" {
		t.Errorf("Load(GenerateCUE()) = %+v, want %+v", got, cfg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	defer testutil.SetConfigHome(t, dir)()

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if !strings.HasPrefix(got, dir) || filepath.Base(got) != AppName {
		t.Errorf("ConfigDir() = %q, want %s under %q", got, AppName, dir)
	}
}
