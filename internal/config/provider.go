// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions are the explicit inputs to loading.
	LoadOptions struct {
		// ConfigFilePath forces a specific file; it must exist.
		ConfigFilePath string
		// ConfigDirPath replaces the platform configuration directory.
		ConfigDirPath string
		// BaseDir is searched for config.cue after the configuration
		// directory; "" means the working directory.
		BaseDir string
	}

	// Provider loads configuration.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
		// Path reports which file the last successful Load used, "" for none.
		Path() string
	}

	fileProvider struct {
		path string
	}
)

// NewProvider returns a Provider backed by the filesystem and environment.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load implements Provider.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	p.path = path
	return cfg, nil
}

// Path implements Provider.
func (p *fileProvider) Path() string {
	return p.path
}
