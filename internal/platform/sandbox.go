// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

const (
	SandboxNone    SandboxType = ""
	SandboxFlatpak SandboxType = "flatpak"
	SandboxSnap    SandboxType = "snap"
)

// detectOnce caches detection for the process lifetime. detectSandboxFrom must
// not panic: sync.OnceValue re-panics on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in. Flatpak is
// recognized by /.flatpak-info and Snap by SNAP_NAME.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostSpawnPrefix returns the argv prefix that runs a command on the host from
// inside st, or nil when no escape exists. Only Flatpak offers one; strict Snap
// confinement does not.
func HostSpawnPrefix(st SandboxType) []string {
	if st == SandboxFlatpak {
		return []string{"flatpak-spawn", "--host"}
	}
	return nil
}

func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// Flatpak takes precedence.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
