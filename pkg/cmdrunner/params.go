// SPDX-License-Identifier: MPL-2.0

package cmdrunner

type (
	// ParamSource provides named parameter values declared by the caller,
	// used when Run is not given an explicit value. A present key with a nil
	// value counts as present.
	ParamSource interface {
		Lookup(name string) (any, bool)
	}

	// Params is a map-backed ParamSource.
	Params map[string]any

	// Values are the explicit per-run values passed to Context.Run.
	Values map[string]any
)

// Lookup implements ParamSource.
func (p Params) Lookup(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}
