// SPDX-License-Identifier: MPL-2.0

package toolfile

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/invowk/cmdrunner/pkg/cueutil"
)

// DefaultFileName is the toolfile looked up when none is configured.
const DefaultFileName = "toolfile.cue"

//go:embed toolfile_schema.cue
var toolfileSchema []byte

// Parse reads and parses the toolfile at path.
func Parse(path string) (*Toolfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toolfile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses toolfile content. path names the source in errors and
// anchors relative paths.
func ParseBytes(data []byte, path string) (*Toolfile, error) {
	result, err := cueutil.Decode[Toolfile](toolfileSchema, data, "#Toolfile", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	tf := result.Value
	tf.Path = path
	dir := filepath.Dir(path)
	if tf.Tools == nil {
		tf.Tools = map[string]*Tool{}
	}
	for name, tool := range tf.Tools {
		tool.Name = name
		tool.Dir = dir
	}

	if errs := tf.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return tf, nil
}

// Load parses every path and merges the tools. A tool declared in more than
// one file is an error.
func Load(paths ...string) (*Toolfile, error) {
	merged := &Toolfile{Tools: map[string]*Tool{}}
	origin := map[string]string{}
	for _, path := range paths {
		tf, err := Parse(path)
		if err != nil {
			return nil, err
		}
		for name, tool := range tf.Tools {
			if prev, ok := origin[name]; ok {
				return nil, fmt.Errorf("tool %q declared in both %s and %s", name, prev, path)
			}
			origin[name] = path
			merged.Tools[name] = tool
		}
		if merged.Path == "" {
			merged.Path = path
		}
	}
	return merged, nil
}

// Names returns the declared tool names in sorted order.
func (tf *Toolfile) Names() []string {
	return slices.Sorted(maps.Keys(tf.Tools))
}

// Tool returns the named tool.
func (tf *Toolfile) Tool(name string) (*Tool, error) {
	tool, ok := tf.Tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name, Known: tf.Names()}
	}
	return tool, nil
}
