// SPDX-License-Identifier: MPL-2.0

package toolfile

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile parses the dotenv file at path and merges it into env, later
// keys overriding earlier ones. Relative paths resolve against baseDir. A
// trailing '?' marks the file optional: a missing optional file is skipped.
func LoadEnvFile(env map[string]string, path, baseDir string) error {
	optional := strings.HasSuffix(path, "?")
	path = strings.TrimSuffix(path, "?")
	full := resolvePath(path, baseDir)

	f, err := os.Open(full)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &EnvFileError{Path: path, Op: "read", Err: err}
	}
	defer f.Close()

	parsed, err := godotenv.Parse(f)
	if err != nil {
		return &EnvFileError{Path: path, Op: "parse", Err: err}
	}
	maps.Copy(env, parsed)
	return nil
}

// Environ builds the tool's environment overlay: env_files in declaration
// order, then inline env.
func (t *Tool) Environ() (map[string]string, error) {
	env := make(map[string]string)
	for _, path := range t.EnvFiles {
		if err := LoadEnvFile(env, path, t.Dir); err != nil {
			return nil, fmt.Errorf("tool %q: %w", t.Name, err)
		}
	}
	maps.Copy(env, t.Env)
	return env, nil
}

func resolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, filepath.FromSlash(path))
}
