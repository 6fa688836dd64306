// SPDX-License-Identifier: MPL-2.0

// Package argfmt turns a single parameter value into zero or more command-line tokens.
//
// Every ArgFormat wraps exactly one strategy from a closed set:
//
//   - bool: a fixed token list chosen by the truthiness of the value
//   - option: "--name=value", "--name value" or "-Nvalue"
//   - positional: the value (or each element of a sequence) with no leading flag
//   - list: an inner ArgFormat applied to each element of a sequence
//   - map: literal tokens looked up by value
//   - func: a caller-supplied function
//
// Formatting is pure. When a format ignores nil values (the default for most
// constructors), Format(nil) yields an empty token list regardless of strategy,
// which lets optional parameters drop out of a command line transparently.
//
//	f := argfmt.AsOptEqVal("--answer")
//	tokens, _ := f.Format(11) // ["--answer=11"]
package argfmt
