// SPDX-License-Identifier: MPL-2.0

package toolfile

import (
	"fmt"

	"github.com/invowk/cmdrunner/pkg/argfmt"
)

// ArgFormat builds the argument format the declaration describes.
func (a *Arg) ArgFormat() (*argfmt.ArgFormat, error) {
	var opts []argfmt.Opt
	if a.IgnoreNone != nil {
		opts = append(opts, argfmt.IgnoreNone(*a.IgnoreNone))
	}
	if a.IgnoreMissingValue != nil {
		opts = append(opts, argfmt.IgnoreMissingValue(*a.IgnoreMissingValue))
	}

	switch a.Format {
	case FormatFlag:
		return argfmt.AsFlag(a.Option, opts...), nil
	case FormatBool:
		return argfmt.AsBool(a.True, a.False, opts...), nil
	case FormatBoolNot:
		tokens := a.False
		if len(tokens) == 0 {
			tokens = []string{a.Option}
		}
		return argfmt.AsBoolNot(tokens...), nil
	case FormatOptEqVal:
		return argfmt.AsOptEqVal(a.Option, opts...), nil
	case FormatOptVal:
		return argfmt.AsOptVal(a.Option, opts...), nil
	case FormatOptConcat:
		return argfmt.AsOptConcat(a.Option, opts...), nil
	case FormatList:
		if a.Min > 0 || a.Max > 0 {
			return argfmt.AsListLen(a.Min, a.Max, opts...), nil
		}
		return argfmt.AsList(opts...), nil
	case FormatMap:
		if a.Default != nil {
			return argfmt.AsMapDefault(a.Map, a.Default, opts...), nil
		}
		return argfmt.AsMap(a.Map, opts...), nil
	case FormatFixed:
		return argfmt.AsFixed(a.Tokens...), nil
	case FormatStack:
		if a.Inner == nil {
			return nil, fmt.Errorf("%w: stack without inner", ErrInvalidToolfile)
		}
		inner, err := a.Inner.ArgFormat()
		if err != nil {
			return nil, fmt.Errorf("inner: %w", err)
		}
		return argfmt.Stack(inner, opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidToolfile, a.Format)
	}
}

// Formats builds the format map for cmdrunner.WithFormats.
func (t *Tool) Formats() (map[string]any, error) {
	formats := make(map[string]any, len(t.Args))
	for name, arg := range t.Args {
		f, err := arg.ArgFormat()
		if err != nil {
			return nil, fmt.Errorf("tool %q arg %q: %w", t.Name, name, err)
		}
		formats[name] = f
	}
	return formats, nil
}
