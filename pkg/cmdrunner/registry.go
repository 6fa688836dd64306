// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/invowk/cmdrunner/pkg/argfmt"
)

// Registry maps parameter names to their argument formats.
// It is immutable once built.
type Registry struct {
	formats map[string]*argfmt.ArgFormat
}

// NewRegistry builds a registry from name → format pairs. Values may be
// *argfmt.ArgFormat or bare functions accepted by argfmt.Normalize; functions
// are wrapped once here, not at call time.
func NewRegistry(formats map[string]any) (*Registry, error) {
	r := &Registry{formats: make(map[string]*argfmt.ArgFormat, len(formats))}
	for name, f := range formats {
		if err := r.register(name, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(name string, f any) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("invalid argument name %q", name)
	}
	normalized, err := argfmt.Normalize(f)
	if err != nil {
		return fmt.Errorf("argument %q: %w", name, err)
	}
	r.formats[name] = normalized
	return nil
}

// Has reports whether name has a registered format.
func (r *Registry) Has(name string) bool {
	_, ok := r.formats[name]
	return ok
}

// Get returns the format registered for name.
func (r *Registry) Get(name string) (*argfmt.ArgFormat, bool) {
	f, ok := r.formats[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveOrder normalizes names (each element may hold several
// whitespace-separated names) and checks that every one is registered.
func (r *Registry) ResolveOrder(names ...string) ([]string, error) {
	order := ParseOrder(names...)
	for _, name := range order {
		if !r.Has(name) {
			return nil, &MissingArgumentFormatError{Name: name, Order: order, Known: r.Names()}
		}
	}
	return order, nil
}

// ParseOrder splits every element on whitespace and flattens the result, so
// both ParseOrder("a b") and ParseOrder("a", "b") give [a b].
func ParseOrder(names ...string) []string {
	order := make([]string, 0, len(names))
	for _, n := range names {
		order = append(order, strings.Fields(n)...)
	}
	return order
}
