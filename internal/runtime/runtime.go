// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/internal/container"
	"github.com/invowk/cmdrunner/internal/platform"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
)

const (
	KindNative    Kind = "native"
	KindVirtual   Kind = "virtual"
	KindContainer Kind = "container"
)

// ErrUnknownKind is returned for an executor kind that is not registered.
var ErrUnknownKind = errors.New("unknown executor kind")

type (
	// Kind names an execution backend.
	Kind string

	// Backend is an executor together with the resolver matching where it
	// runs processes.
	Backend struct {
		Kind     Kind
		Executor cmdrunner.Executor
		Resolver cmdrunner.Resolver
	}

	// PassthroughResolver leaves names unresolved so they are looked up on
	// the PATH of the environment that eventually runs them.
	PassthroughResolver struct{}
)

// Resolve implements cmdrunner.Resolver.
func (PassthroughResolver) Resolve(name string, _ []string) (string, error) {
	return name, nil
}

// NewBackend returns the backend selected by cfg.Executor. lookPath locates
// container engines; nil means exec.LookPath. Inside a Flatpak sandbox the
// native backend spawns on the host.
func NewBackend(cfg *config.Config, lookPath container.LookPathFunc) (*Backend, error) {
	return newBackend(cfg, lookPath, platform.DetectSandbox())
}

func newBackend(cfg *config.Config, lookPath container.LookPathFunc, sandbox platform.SandboxType) (*Backend, error) {
	kind := Kind(cfg.Executor)
	switch kind {
	case KindNative, "":
		if prefix := platform.HostSpawnPrefix(sandbox); prefix != nil {
			return &Backend{Kind: KindNative, Executor: &HostSpawn{Prefix: prefix}, Resolver: PassthroughResolver{}}, nil
		}
		return &Backend{Kind: KindNative, Executor: cmdrunner.ExecExecutor{}, Resolver: cmdrunner.PathResolver{}}, nil
	case KindVirtual:
		return &Backend{Kind: kind, Executor: &Virtual{}, Resolver: cmdrunner.PathResolver{}}, nil
	case KindContainer:
		if cfg.Container.Name == "" {
			return nil, errors.New("container executor needs container.name")
		}
		engine, err := container.NewEngine(container.EngineType(cfg.Container.Engine), lookPath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Kind:     kind,
			Executor: &Container{Engine: engine, Name: cfg.Container.Name},
			Resolver: PassthroughResolver{},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// Options returns the runner options installing the backend.
func (b *Backend) Options() []cmdrunner.Option {
	return []cmdrunner.Option{cmdrunner.WithExecutor(b.Executor), cmdrunner.WithResolver(b.Resolver)}
}
