// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetConfigHome points the platform configuration base directory at dir and
// returns a function restoring it. On Linux and other Unix systems that is
// XDG_CONFIG_HOME, on Windows APPDATA and on macOS HOME (the directory is then
// dir/Library/Application Support).
func SetConfigHome(t testing.TB, dir string) func() {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "APPDATA", dir)
	case "darwin":
		return MustSetenv(t, "HOME", dir)
	default:
		return MustSetenv(t, "XDG_CONFIG_HOME", dir)
	}
}
