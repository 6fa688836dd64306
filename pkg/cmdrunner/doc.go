// SPDX-License-Identifier: MPL-2.0

// Package cmdrunner turns typed parameters into a safely ordered argument
// vector, runs it once, and keeps a diagnostic record of what happened.
//
// A Runner is built once per external tool. It resolves the executable eagerly,
// owns an immutable Registry mapping parameter names to argfmt formats, and
// carries defaults for parameter order, return-code checking, locale forcing and
// a base environment overlay.
//
// Each invocation goes through a single-use Context:
//
//	r, err := cmdrunner.New(ctx, "git",
//	    cmdrunner.WithFormats(map[string]any{
//	        "quiet": argfmt.AsFlag("--quiet"),
//	        "repo":  argfmt.AsList(),
//	    }),
//	    cmdrunner.WithLeadingArgs("clone"),
//	)
//	c, err := r.Context(cmdrunner.WithOrder("quiet repo"))
//	out, err := c.Run(ctx, cmdrunner.Values{"repo": "https://example.com/x.git"})
//	info, _ := c.RunInfo()
//
// Configuration errors surface before anything is spawned: unknown parameter
// names fail at Context, missing values and format failures fail at the start
// of Run. The error kinds are ExecutableNotFoundError, MissingArgumentFormatError,
// MissingArgumentValueError, FormatError, LaunchError and NonZeroExitError, each
// wrapping a matching Err* sentinel.
//
// NewInterpreter is the variant for scripts run through an interpreter,
// optionally inside a virtual environment.
package cmdrunner
