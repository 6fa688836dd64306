// SPDX-License-Identifier: MPL-2.0

// Package toolfile loads tool declarations from CUE files and builds
// cmdrunner runners from them.
//
// A toolfile declares named tools, each with an executable, per-parameter
// argument formats and the runner defaults:
//
//	tools: ls: {
//		command: "ls"
//		args: {
//			all:   {format: "flag", option: "-a"}
//			paths: {format: "list"}
//		}
//		default_order: ["all", "paths"]
//	}
package toolfile
