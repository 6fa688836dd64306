// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
)

const (
	ExecutorNative    ExecutorKind = "native"
	ExecutorVirtual   ExecutorKind = "virtual"
	ExecutorContainer ExecutorKind = "container"

	EngineDocker ContainerEngine = "docker"
	EnginePodman ContainerEngine = "podman"

	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputTOML OutputFormat = "toml"
)

// ErrInvalidSetting is wrapped by InvalidSettingError.
var ErrInvalidSetting = errors.New("invalid configuration setting")

type (
	// ExecutorKind selects how commands are spawned.
	ExecutorKind string

	// ContainerEngine names the container CLI used by the container executor.
	ContainerEngine string

	// OutputFormat selects how run results are printed.
	OutputFormat string

	// InvalidSettingError reports a value outside its allowed set, typically
	// from an environment override that bypassed the schema.
	InvalidSettingError struct {
		Key   string
		Value string
		Valid []string
	}

	// Config is the merged configuration.
	Config struct {
		// Toolfiles are loaded in order; empty means toolfile.cue in the working directory.
		Toolfiles []string        `json:"toolfiles" mapstructure:"toolfiles"`
		Executor  ExecutorKind    `json:"executor" mapstructure:"executor"`
		ForceLang string          `json:"force_lang" mapstructure:"force_lang"`
		CheckRC   bool            `json:"check_rc" mapstructure:"check_rc"`
		Container ContainerConfig `json:"container" mapstructure:"container"`
		UI        UIConfig        `json:"ui" mapstructure:"ui"`
		Log       LogConfig       `json:"log" mapstructure:"log"`
	}

	ContainerConfig struct {
		Engine ContainerEngine `json:"engine" mapstructure:"engine"`
		// Name is the running container commands are executed in.
		Name string `json:"name" mapstructure:"name"`
	}

	UIConfig struct {
		Verbose bool         `json:"verbose" mapstructure:"verbose"`
		Output  OutputFormat `json:"output" mapstructure:"output"`
		// Style is the glamour style used for Markdown output.
		Style string `json:"style" mapstructure:"style"`
	}

	LogConfig struct {
		Level string `json:"level" mapstructure:"level"`
	}
)

// Error implements the error interface.
func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (valid: %v)", e.Value, e.Key, e.Valid)
}

// Unwrap returns ErrInvalidSetting.
func (e *InvalidSettingError) Unwrap() error { return ErrInvalidSetting }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Toolfiles: []string{},
		Executor:  ExecutorNative,
		ForceLang: "C",
		CheckRC:   false,
		Container: ContainerConfig{Engine: EnginePodman},
		UI:        UIConfig{Output: OutputText, Style: "auto"},
		Log:       LogConfig{Level: "warn"},
	}
}

// Validate checks enumerated settings. The schema covers files; this covers
// environment overrides too.
func (c *Config) Validate() error {
	checks := []struct {
		key, value string
		valid      []string
	}{
		{"executor", string(c.Executor), []string{"native", "virtual", "container"}},
		{"container.engine", string(c.Container.Engine), []string{"docker", "podman"}},
		{"ui.output", string(c.UI.Output), []string{"text", "json", "toml"}},
		{"log.level", c.Log.Level, []string{"debug", "info", "warn", "error"}},
	}
	var errs []error
	for _, chk := range checks {
		if !slices.Contains(chk.valid, chk.value) {
			errs = append(errs, &InvalidSettingError{Key: chk.key, Value: chk.value, Valid: chk.valid})
		}
	}
	return errors.Join(errs...)
}
