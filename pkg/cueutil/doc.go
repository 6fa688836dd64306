// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes user-supplied CUE documents against an embedded
// schema definition.
//
//	//go:embed toolfile_schema.cue
//	var schema []byte
//
//	res, err := cueutil.Decode[Toolfile](schema, data, "#Toolfile",
//	    cueutil.WithFilename("tools.cue"))
//
// Validation failures come back as *SchemaError, one Violation per CUE error,
// each carrying a JSON-style path such as "tools.ls.args.all.format".
package cueutil
