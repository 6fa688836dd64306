// SPDX-License-Identifier: MPL-2.0

package toolfile

import (
	"fmt"
	"maps"
	"slices"
)

// Validate checks every tool and returns all problems found, in tool name
// order.
func (tf *Toolfile) Validate() ValidationErrors {
	var errs ValidationErrors
	for _, name := range tf.Names() {
		errs = append(errs, tf.Tools[name].Validate()...)
	}
	return errs
}

// Validate checks the tool's argument declarations and default order.
func (t *Tool) Validate() ValidationErrors {
	var errs ValidationErrors
	field := fmt.Sprintf("tool '%s'", t.Name)

	for _, name := range sortedKeys(t.Args) {
		argField := fmt.Sprintf("%s arg '%s'", field, name)
		for _, msg := range t.Args[name].problems(true) {
			errs = append(errs, ValidationError{Field: argField, Message: msg})
		}
	}

	for _, name := range t.DefaultOrder {
		if _, ok := t.Args[name]; !ok {
			errs = append(errs, ValidationError{
				Field:   field + " default_order",
				Message: fmt.Sprintf("no argument named %q (known: %v)", name, sortedKeys(t.Args)),
			})
		}
	}
	return errs
}

func (a *Arg) problems(top bool) []string {
	var msgs []string
	needOption := []FormatName{FormatOptEqVal, FormatOptVal, FormatOptConcat, FormatFlag}
	if slices.Contains(needOption, a.Format) && a.Option == "" {
		msgs = append(msgs, fmt.Sprintf("format %q requires option", a.Format))
	}
	switch a.Format {
	case FormatBool:
		if len(a.True) == 0 && len(a.False) == 0 {
			msgs = append(msgs, `format "bool" requires true or false tokens`)
		}
	case FormatBoolNot:
		if len(a.False) == 0 && a.Option == "" {
			msgs = append(msgs, `format "bool_not" requires false tokens or option`)
		}
	case FormatMap:
		if len(a.Map) == 0 {
			msgs = append(msgs, `format "map" requires map`)
		}
	case FormatFixed:
		if len(a.Tokens) == 0 {
			msgs = append(msgs, `format "fixed" requires tokens`)
		}
	case FormatStack:
		if !top {
			msgs = append(msgs, `format "stack" cannot be nested`)
		} else if a.Inner == nil {
			msgs = append(msgs, `format "stack" requires inner`)
		} else {
			for _, m := range a.Inner.problems(false) {
				msgs = append(msgs, "inner: "+m)
			}
		}
	case FormatList:
		if a.Max > 0 && a.Min > a.Max {
			msgs = append(msgs, fmt.Sprintf("min %d is greater than max %d", a.Min, a.Max))
		}
	}
	if a.Inner != nil && a.Format != FormatStack {
		msgs = append(msgs, fmt.Sprintf("inner is only valid with format %q", FormatStack))
	}
	return msgs
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
