// SPDX-License-Identifier: MPL-2.0

// Package config loads cmdrunner settings with Viper, using CUE as the file
// format.
//
// Settings are layered: built-in defaults, then config.cue from the
// configuration directory ($XDG_CONFIG_HOME/cmdrunner on Linux,
// ~/Library/Application Support/cmdrunner on macOS, %APPDATA%\cmdrunner on
// Windows) or the current directory, then CMDRUNNER_* environment variables
// (CMDRUNNER_CONTAINER_ENGINE for container.engine). Files are validated
// against the embedded #Config schema before they are merged.
package config
