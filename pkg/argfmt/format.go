// SPDX-License-Identifier: MPL-2.0

package argfmt

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Strategy kinds. The set is closed; custom behavior goes through KindFunc.
const (
	KindBool       Kind = "bool"
	KindOption     Kind = "option"
	KindPositional Kind = "positional"
	KindList       Kind = "list"
	KindMap        Kind = "map"
	KindFunc       Kind = "func"
)

// Option styles for KindOption.
const (
	// StyleEquals emits "--name=value" as one token.
	StyleEquals OptionStyle = iota
	// StyleSeparate emits "--name" then "value" as two tokens.
	StyleSeparate
	// StyleConcat emits "-Nvalue" as one token with no separator.
	StyleConcat
)

var (
	// ErrNotSequence is returned when a sequence-only strategy receives a scalar.
	ErrNotSequence = errors.New("value is not a sequence")
	// ErrNotMapping is returned when UnpackKwargs receives a non-map value.
	ErrNotMapping = errors.New("value is not a mapping")
	// ErrUnmappedValue is the sentinel error wrapped by UnmappedValueError.
	ErrUnmappedValue = errors.New("value not in mapping")
	// ErrLength is the sentinel error wrapped by LengthError.
	ErrLength = errors.New("invalid number of values")
	// ErrUnsupportedFormat is returned by Normalize for values that are neither
	// an *ArgFormat nor a supported function type.
	ErrUnsupportedFormat = errors.New("unsupported argument format")
)

type (
	// Kind names the strategy behind an ArgFormat.
	Kind string

	// OptionStyle selects how an option and its value are joined.
	OptionStyle int

	// Func is the signature of custom formatting functions.
	Func func(value any) ([]string, error)

	// ArgFormat converts one parameter value into argv tokens.
	// The zero value is not usable; build one with the As* constructors.
	ArgFormat struct {
		strategy           strategy
		ignoreNone         bool
		ignoreMissingValue bool
	}

	// Opt tweaks the nil/missing handling of an ArgFormat.
	Opt func(*ArgFormat)

	// UnmappedValueError is returned when a map strategy has no entry for a
	// value and no default.
	UnmappedValueError struct {
		Value string
		Known []string
	}

	// LengthError is returned when a positional sequence is outside its bounds.
	LengthError struct {
		Len int
		Min int
		Max int
	}

	// strategy is the closed set of formatting behaviors.
	strategy interface {
		kind() Kind
		tokens(value any) ([]string, error)
		describe() string
	}

	boolStrategy struct {
		whenTrue  []string
		whenFalse []string
	}

	optionStrategy struct {
		name  string
		style OptionStyle
	}

	positionalStrategy struct {
		min int
		max int
	}

	listStrategy struct {
		inner *ArgFormat
	}

	mapStrategy struct {
		mapping    map[string][]string
		fallback   []string
		hasDefault bool
	}

	funcStrategy struct {
		fn       Func
		name     string
		constant []string
	}
)

// Error implements the error interface.
func (e *UnmappedValueError) Error() string {
	return fmt.Sprintf("value %q not in mapping (known: %s)", e.Value, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnmappedValue.
func (e *UnmappedValueError) Unwrap() error { return ErrUnmappedValue }

// Error implements the error interface.
func (e *LengthError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("got %d values, want between %d and %d", e.Len, e.Min, e.Max)
	}
	return fmt.Sprintf("got %d values, want at least %d", e.Len, e.Min)
}

// Unwrap returns ErrLength.
func (e *LengthError) Unwrap() error { return ErrLength }

// IgnoreNone controls whether a nil value yields no tokens.
func IgnoreNone(ignore bool) Opt {
	return func(f *ArgFormat) { f.ignoreNone = ignore }
}

// IgnoreMissingValue controls whether the parameter may be absent from both the
// explicit values and the named-parameter source.
func IgnoreMissingValue(ignore bool) Opt {
	return func(f *ArgFormat) { f.ignoreMissingValue = ignore }
}

func newFormat(s strategy, ignoreNone bool, opts []Opt) *ArgFormat {
	f := &ArgFormat{strategy: s, ignoreNone: ignoreNone}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts value into tokens.
func (f *ArgFormat) Format(value any) ([]string, error) {
	if value == nil && f.ignoreNone {
		return []string{}, nil
	}
	tokens, err := f.strategy.tokens(value)
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

// FormatMissing returns the tokens contributed when the parameter has no value
// at all. Only constant formats (AsFixed) contribute anything.
func (f *ArgFormat) FormatMissing() []string {
	if fs, ok := f.strategy.(*funcStrategy); ok && fs.constant != nil {
		return append([]string{}, fs.constant...)
	}
	return []string{}
}

func (f *ArgFormat) valid() bool { return f != nil && f.strategy != nil }

// Kind returns the strategy kind.
func (f *ArgFormat) Kind() Kind { return f.strategy.kind() }

// IgnoresNone reports whether nil values produce no tokens.
func (f *ArgFormat) IgnoresNone() bool { return f.ignoreNone }

// IgnoresMissingValue reports whether the parameter may be absent.
func (f *ArgFormat) IgnoresMissingValue() bool { return f.ignoreMissingValue }

// String identifies the format in error messages, e.g. "option(--answer=)".
func (f *ArgFormat) String() string {
	return string(f.strategy.kind()) + "(" + f.strategy.describe() + ")"
}

func (s *boolStrategy) kind() Kind { return KindBool }

func (s *boolStrategy) tokens(value any) ([]string, error) {
	if Truthy(value) {
		return append([]string{}, s.whenTrue...), nil
	}
	return append([]string{}, s.whenFalse...), nil
}

func (s *boolStrategy) describe() string {
	return strings.Join(s.whenTrue, " ") + "|" + strings.Join(s.whenFalse, " ")
}

func (s *optionStrategy) kind() Kind { return KindOption }

func (s *optionStrategy) tokens(value any) ([]string, error) {
	v := Stringify(value)
	switch s.style {
	case StyleSeparate:
		return []string{s.name, v}, nil
	case StyleConcat:
		return []string{s.name + v}, nil
	default:
		return []string{s.name + "=" + v}, nil
	}
}

func (s *optionStrategy) describe() string {
	switch s.style {
	case StyleSeparate:
		return s.name + " "
	case StyleConcat:
		return s.name
	default:
		return s.name + "="
	}
}

func (s *positionalStrategy) kind() Kind { return KindPositional }

func (s *positionalStrategy) tokens(value any) ([]string, error) {
	items, ok := sequence(value)
	if !ok {
		items = []any{value}
	}
	if len(items) < s.min || (s.max > 0 && len(items) > s.max) {
		return nil, &LengthError{Len: len(items), Min: s.min, Max: s.max}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, Stringify(item))
	}
	return out, nil
}

func (s *positionalStrategy) describe() string {
	if s.min == 0 && s.max == 0 {
		return ""
	}
	return fmt.Sprintf("%d..%d", s.min, s.max)
}

func (s *listStrategy) kind() Kind { return KindList }

func (s *listStrategy) tokens(value any) ([]string, error) {
	if !s.inner.valid() {
		return nil, fmt.Errorf("%w: stack without an inner format", ErrUnsupportedFormat)
	}
	items, ok := sequence(value)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotSequence, value)
	}
	var out []string
	for i, item := range items {
		if item == nil {
			continue
		}
		tokens, err := s.inner.Format(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, tokens...)
	}
	return out, nil
}

func (s *listStrategy) describe() string {
	if !s.inner.valid() {
		return "<nil>"
	}
	return s.inner.String()
}

func (s *mapStrategy) kind() Kind { return KindMap }

func (s *mapStrategy) tokens(value any) ([]string, error) {
	key := Stringify(value)
	if tokens, ok := s.mapping[key]; ok {
		return append([]string{}, tokens...), nil
	}
	if s.hasDefault {
		return append([]string{}, s.fallback...), nil
	}
	return nil, &UnmappedValueError{Value: key, Known: s.keys()}
}

func (s *mapStrategy) keys() []string {
	keys := make([]string, 0, len(s.mapping))
	for k := range s.mapping {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *mapStrategy) describe() string { return strings.Join(s.keys(), ",") }

func (s *funcStrategy) kind() Kind { return KindFunc }

func (s *funcStrategy) tokens(value any) ([]string, error) {
	if s.fn == nil {
		return nil, errors.New("nil format function")
	}
	return s.fn(value)
}

func (s *funcStrategy) describe() string { return s.name }

// Truthy reports whether value counts as "set" for flag formats:
// nil, false, zero numbers, empty strings and empty collections are false.
func Truthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}

// Stringify renders a scalar value as a single token.
func Stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// sequence returns the elements of slice/array values. Strings and byte
// slices are scalars.
func sequence(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	if items, ok := value.([]any); ok {
		return items, true
	}
	if _, ok := value.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
