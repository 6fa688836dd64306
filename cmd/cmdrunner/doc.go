// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cmdrunner CLI commands.
package cmd
