// SPDX-License-Identifier: MPL-2.0

package cmdrunner

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// sbinDirs are searched after PATH, as admin tools often live there but are
// missing from unprivileged PATHs.
var sbinDirs = []string{"/sbin", "/usr/sbin", "/usr/local/sbin"}

type (
	// Resolver turns an executable name into an absolute path.
	Resolver interface {
		Resolve(name string, extraDirs []string) (string, error)
	}

	// PathResolver searches extra directories, then PATH, then the sbin
	// directories. Names that are absolute or contain a path separator are
	// returned unchanged.
	PathResolver struct {
		// Getenv reads environment variables; os.Getenv when nil.
		Getenv func(string) string
	}
)

// Resolve implements Resolver.
func (r PathResolver) Resolve(name string, extraDirs []string) (string, error) {
	if isPathLike(name) {
		return name, nil
	}

	dirs := r.searchDirs(extraDirs)
	for _, dir := range dirs {
		if path, err := exec.LookPath(candidatePath(dir, name)); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs, nil
			}
			return path, nil
		}
	}
	return "", &ExecutableNotFoundError{Name: name, SearchDirs: dirs}
}

// candidatePath joins dir and name, keeping a leading "./" so that LookPath
// checks the file itself instead of searching PATH.
func candidatePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if !strings.ContainsRune(candidate, filepath.Separator) {
		candidate = "." + string(filepath.Separator) + candidate
	}
	return candidate
}

func (r PathResolver) searchDirs(extraDirs []string) []string {
	getenv := os.Getenv
	if r.Getenv != nil {
		getenv = r.Getenv
	}

	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, d := range extraDirs {
		if d == "" {
			d = "."
		}
		add(d)
	}
	for _, d := range filepath.SplitList(getenv("PATH")) {
		add(d)
	}
	if runtime.GOOS != "windows" {
		for _, d := range sbinDirs {
			add(d)
		}
	}
	return dirs
}
