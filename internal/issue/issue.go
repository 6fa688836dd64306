// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	ToolfileNotFoundId Id = iota + 1
	ToolfileInvalidId
	ToolNotFoundId
	ExecutableNotFoundId
	MissingArgumentFormatId
	MissingArgumentValueId
	ArgumentFormatId
	LaunchFailedId
	NonZeroExitId
	ConfigLoadFailedId
	ContainerEngineNotFoundId
	InvalidParameterId
	EnvFileId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guide as terminal Markdown with the glamour style at
// stylePath (a built-in style name such as "dark", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		var b strings.Builder
		b.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			b.WriteString("- <" + string(link) + ">\n")
		}
		md += b.String()
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	toolfileNotFoundIssue = &Issue{
		id: ToolfileNotFoundId,
		mdMsg: `
# No toolfile found!

cmdrunner looks for tool declarations in the files listed under ` + "`toolfiles`" + `
in your configuration, falling back to ` + "`toolfile.cue`" + ` in the current directory.

## Things you can try:
- Create a ` + "`toolfile.cue`" + ` next to your project:
~~~cue
tools: ls: {
	command: "ls"
	args: all: {format: "flag", option: "-a"}
	default_order: ["all"]
}
~~~

- Or point at an existing file:
~~~
$ cmdrunner run --toolfile ./ops/tools.cue ls
~~~`,
	}

	toolfileInvalidIssue = &Issue{
		id: ToolfileInvalidId,
		mdMsg: `
# Invalid toolfile!

The toolfile does not match the ` + "`#Toolfile`" + ` schema, or declares something that
cannot be turned into a runner.

## Common issues:
- Unknown ` + "`format`" + ` name (use flag, bool, bool_not, opt_eq_val, opt_val,
  opt_concat, list, map, fixed or stack)
- ` + "`opt_*`" + ` and ` + "`flag`" + ` formats without an ` + "`option`" + `
- ` + "`stack`" + ` without an ` + "`inner`" + ` format
- ` + "`default_order`" + ` naming an argument that is not declared

## Things you can try:
~~~
$ cmdrunner validate
~~~`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

No loaded toolfile declares a tool with that name.

## Things you can try:
- List the declared tools:
~~~
$ cmdrunner tools list
~~~`,
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Executable not found!

The tool's ` + "`command`" + ` could not be found in its ` + "`path_prefix`" + ` directories,
in ` + "`PATH`" + `, or in the sbin directories.

## Things you can try:
- Install the program, or add its directory to ` + "`path_prefix`" + `
- Use an absolute path in ` + "`command`" + `
- For interpreter tools, check the ` + "`venv`" + ` directory contains ` + "`bin/<interpreter>`",
	}

	missingArgumentFormatIssue = &Issue{
		id: MissingArgumentFormatId,
		mdMsg: `
# Unknown argument in order!

The requested parameter order names an argument that has no declared format.
Nothing was executed.

## Things you can try:
- Add the argument under the tool's ` + "`args`" + `
- Fix the spelling in ` + "`--order`" + ` or ` + "`default_order`",
	}

	missingArgumentValueIssue = &Issue{
		id: MissingArgumentValueId,
		mdMsg: `
# Missing argument value!

An argument in the order has neither an explicit value nor a declared parameter,
and its format does not tolerate missing values. Nothing was executed.

## Things you can try:
- Pass it on the command line:
~~~
$ cmdrunner run <tool> -p name=value
~~~

- Declare a value under the tool's ` + "`params`" + `
- Set ` + "`ignore_missing_value: true`" + ` on the argument`,
	}

	argumentFormatIssue = &Issue{
		id: ArgumentFormatId,
		mdMsg: `
# Argument could not be formatted!

A value was rejected by its argument format, for example a value missing from a
` + "`map`" + ` format without a ` + "`default`" + `, or a list outside its ` + "`min`/`max`" + ` bounds.
Nothing was executed.`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch the command!

The executable was found but the operating system refused to start it.

## Common causes:
- The file is not executable
- A script's interpreter line points at a missing program
- The container is not running (container executor)`,
	}

	nonZeroExitIssue = &Issue{
		id: NonZeroExitId,
		mdMsg: `
# Command failed!

The command exited with a non-zero status and return-code checking is enabled.
Its standard error is shown above.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see the exact command line
- Disable checking for this run with ` + "`--check-rc=false`",
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show where the configuration is read from:
~~~
$ cmdrunner config path
~~~

- Check the file against the schema; ` + "`executor`" + ` must be native, virtual or container`,
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# Container engine not found!

The container executor needs ` + "`docker`" + ` or ` + "`podman`" + ` on your PATH.

## Things you can try:
- Install Docker or Podman
- Set ` + "`container.engine`" + ` in your configuration
- Use the native executor instead:
~~~
$ cmdrunner run --executor native <tool>
~~~`,
	}

	invalidParameterIssue = &Issue{
		id: InvalidParameterId,
		mdMsg: `
# Invalid parameter!

Parameters are passed as ` + "`-p name=value`" + `. Values are decoded as JSON when
possible (` + "`-p files='[\"a\",\"b\"]'`" + `, ` + "`-p verbose=true`" + `) and taken as plain strings
otherwise.`,
	}

	envFileIssue = &Issue{
		id: EnvFileId,
		mdMsg: `
# Env file could not be loaded!

A tool lists an ` + "`env_files`" + ` entry that is missing or is not valid dotenv.
Relative paths are resolved against the toolfile's directory.

## Things you can try:
- Mark files that may be absent as optional with a trailing ` + "`?`" + `:
~~~cue
env_files: [".env", ".env.local?"]
~~~`,
	}

	issues = map[Id]*Issue{
		toolfileNotFoundIssue.Id():        toolfileNotFoundIssue,
		toolfileInvalidIssue.Id():         toolfileInvalidIssue,
		toolNotFoundIssue.Id():            toolNotFoundIssue,
		executableNotFoundIssue.Id():      executableNotFoundIssue,
		missingArgumentFormatIssue.Id():   missingArgumentFormatIssue,
		missingArgumentValueIssue.Id():    missingArgumentValueIssue,
		argumentFormatIssue.Id():          argumentFormatIssue,
		launchFailedIssue.Id():            launchFailedIssue,
		nonZeroExitIssue.Id():             nonZeroExitIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		invalidParameterIssue.Id():        invalidParameterIssue,
		envFileIssue.Id():                 envFileIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
