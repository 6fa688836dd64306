// SPDX-License-Identifier: MPL-2.0

package argfmt

import (
	"fmt"
	"maps"
	"reflect"
)

// AsBool emits whenTrue for truthy values and whenFalse otherwise.
// Without whenFalse, nil values are ignored; with whenFalse, nil counts as false
// and emits whenFalse.
func AsBool(whenTrue []string, whenFalse []string, opts ...Opt) *ArgFormat {
	s := &boolStrategy{
		whenTrue:  append([]string{}, whenTrue...),
		whenFalse: append([]string{}, whenFalse...),
	}
	return newFormat(s, len(whenFalse) == 0, opts)
}

// AsFlag is AsBool with a single token and nothing for false.
func AsFlag(token string, opts ...Opt) *ArgFormat {
	return AsBool([]string{token}, nil, opts...)
}

// AsBoolNot emits args only when the value is falsy (including nil).
func AsBoolNot(args ...string) *ArgFormat {
	return newFormat(&boolStrategy{whenFalse: append([]string{}, args...)}, false, nil)
}

// AsOptEqVal emits "<option>=<value>" as one token.
func AsOptEqVal(option string, opts ...Opt) *ArgFormat {
	return newFormat(&optionStrategy{name: option, style: StyleEquals}, true, opts)
}

// AsOptVal emits "<option>" and "<value>" as two tokens.
func AsOptVal(option string, opts ...Opt) *ArgFormat {
	return newFormat(&optionStrategy{name: option, style: StyleSeparate}, true, opts)
}

// AsOptConcat emits "<option><value>" as one token, as in "-j4".
func AsOptConcat(option string, opts ...Opt) *ArgFormat {
	return newFormat(&optionStrategy{name: option, style: StyleConcat}, true, opts)
}

// AsList emits the value, or each element of a sequence value, as positional tokens.
func AsList(opts ...Opt) *ArgFormat {
	return newFormat(&positionalStrategy{}, true, opts)
}

// AsListLen is AsList with element-count bounds; maxLen 0 means unbounded.
func AsListLen(minLen, maxLen int, opts ...Opt) *ArgFormat {
	return newFormat(&positionalStrategy{min: minLen, max: maxLen}, true, opts)
}

// Stack applies inner to each element of a sequence value and concatenates the
// results in order. Nil elements are skipped.
func Stack(inner *ArgFormat, opts ...Opt) *ArgFormat {
	return newFormat(&listStrategy{inner: inner}, true, opts)
}

// AsMap looks the stringified value up in mapping. Values absent from the
// mapping are a format error.
func AsMap(mapping map[string][]string, opts ...Opt) *ArgFormat {
	return newFormat(&mapStrategy{mapping: maps.Clone(mapping)}, true, opts)
}

// AsMapDefault is AsMap with fallback tokens for unmapped values.
func AsMapDefault(mapping map[string][]string, fallback []string, opts ...Opt) *ArgFormat {
	s := &mapStrategy{
		mapping:    maps.Clone(mapping),
		fallback:   append([]string{}, fallback...),
		hasDefault: true,
	}
	return newFormat(s, true, opts)
}

// AsFunc wraps a custom formatting function. Nil values are ignored unless
// IgnoreNone(false) is passed.
func AsFunc(fn Func, opts ...Opt) *ArgFormat {
	return newFormat(&funcStrategy{fn: fn, name: funcName(fn)}, true, opts)
}

// AsFixed always emits tokens, whatever the value, and tolerates the parameter
// being absent altogether.
func AsFixed(tokens ...string) *ArgFormat {
	constant := append([]string{}, tokens...)
	s := &funcStrategy{
		fn:       func(any) ([]string, error) { return append([]string{}, constant...), nil },
		name:     "fixed",
		constant: constant,
	}
	return newFormat(s, false, []Opt{IgnoreMissingValue(true)})
}

// UnpackArgs spreads a sequence value into fn's arguments.
func UnpackArgs(fn func(args ...any) ([]string, error), opts ...Opt) *ArgFormat {
	return AsFunc(func(value any) ([]string, error) {
		items, ok := sequence(value)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNotSequence, value)
		}
		return fn(items...)
	}, opts...)
}

// UnpackKwargs passes a string-keyed map value to fn.
func UnpackKwargs(fn func(kwargs map[string]any) ([]string, error), opts ...Opt) *ArgFormat {
	return AsFunc(func(value any) ([]string, error) {
		kwargs, ok := mapping(value)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNotMapping, value)
		}
		return fn(kwargs)
	}, opts...)
}

// Normalize returns f as an *ArgFormat, wrapping bare functions as AsFunc
// formats that ignore nil values.
func Normalize(f any) (*ArgFormat, error) {
	switch fn := f.(type) {
	case *ArgFormat:
		if !fn.valid() {
			return nil, fmt.Errorf("%w: nil format", ErrUnsupportedFormat)
		}
		if st, ok := fn.strategy.(*listStrategy); ok && !st.inner.valid() {
			return nil, fmt.Errorf("%w: stack without an inner format", ErrUnsupportedFormat)
		}
		return fn, nil
	case Func:
		return AsFunc(fn), nil
	case func(any) ([]string, error):
		return AsFunc(fn), nil
	case func(any) []string:
		return AsFunc(func(v any) ([]string, error) { return fn(v), nil }), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFormat, f)
	}
}

func mapping(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func funcName(fn Func) string {
	if fn == nil {
		return "nil"
	}
	return fmt.Sprintf("%p", fn)
}
