// SPDX-License-Identifier: MPL-2.0

package toolfile

// Format names accepted in an argument's format field.
const (
	FormatFlag      FormatName = "flag"
	FormatBool      FormatName = "bool"
	FormatBoolNot   FormatName = "bool_not"
	FormatOptEqVal  FormatName = "opt_eq_val"
	FormatOptVal    FormatName = "opt_val"
	FormatOptConcat FormatName = "opt_concat"
	FormatList      FormatName = "list"
	FormatMap       FormatName = "map"
	FormatFixed     FormatName = "fixed"
	FormatStack     FormatName = "stack"
)

type (
	// FormatName names an argument format strategy.
	FormatName string

	// Toolfile is a parsed toolfile.
	Toolfile struct {
		Tools map[string]*Tool `json:"tools"`

		// Path is the file the declarations were read from. Relative paths
		// inside tools resolve against its directory.
		Path string `json:"-"`
	}

	// Tool declares one runner.
	Tool struct {
		// Name is the key under tools; filled in after decoding.
		Name string `json:"-"`
		// Dir is the directory of the declaring toolfile.
		Dir string `json:"-"`

		Command      string            `json:"command"`
		Description  string            `json:"description,omitempty"`
		LeadingArgs  []string          `json:"leading_args,omitempty"`
		Args         map[string]*Arg   `json:"args,omitempty"`
		DefaultOrder []string          `json:"default_order,omitempty"`
		CheckRC      bool              `json:"check_rc,omitempty"`
		ForceLang    *string           `json:"force_lang,omitempty"`
		PathPrefix   []string          `json:"path_prefix,omitempty"`
		Env          map[string]string `json:"env,omitempty"`
		EnvFiles     []string          `json:"env_files,omitempty"`
		Params       map[string]any    `json:"params,omitempty"`
		Interpreter  *Interpreter      `json:"interpreter,omitempty"`
	}

	// Arg declares the format of one parameter.
	Arg struct {
		Format             FormatName          `json:"format"`
		Option             string              `json:"option,omitempty"`
		True               []string            `json:"true,omitempty"`
		False              []string            `json:"false,omitempty"`
		Map                map[string][]string `json:"map,omitempty"`
		Default            []string            `json:"default,omitempty"`
		Inner              *Arg                `json:"inner,omitempty"`
		Min                int                 `json:"min,omitempty"`
		Max                int                 `json:"max,omitempty"`
		Tokens             []string            `json:"tokens,omitempty"`
		IgnoreNone         *bool               `json:"ignore_none,omitempty"`
		IgnoreMissingValue *bool               `json:"ignore_missing_value,omitempty"`
	}

	// Interpreter makes a tool run a script through an interpreter. Command is
	// then the script path.
	Interpreter struct {
		Name string `json:"name,omitempty"`
		Venv string `json:"venv,omitempty"`
	}
)
