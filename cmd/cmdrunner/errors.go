// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/cmdrunner/internal/config"
	"github.com/invowk/cmdrunner/internal/container"
	"github.com/invowk/cmdrunner/internal/issue"
	"github.com/invowk/cmdrunner/internal/toolfile"
	"github.com/invowk/cmdrunner/pkg/cmdrunner"
	"github.com/invowk/cmdrunner/pkg/cueutil"
)

var errInvalidParameter = errors.New("invalid parameter")

// classifyError maps a failure to its issue catalog entry.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	var schemaErr *cueutil.SchemaError
	switch {
	case errors.Is(err, cmdrunner.ErrExecutableNotFound):
		return issue.ExecutableNotFoundId
	case errors.Is(err, cmdrunner.ErrMissingArgumentFormat):
		return issue.MissingArgumentFormatId
	case errors.Is(err, cmdrunner.ErrMissingArgumentValue):
		return issue.MissingArgumentValueId
	case errors.Is(err, cmdrunner.ErrFormat):
		return issue.ArgumentFormatId
	case errors.Is(err, cmdrunner.ErrLaunch):
		return issue.LaunchFailedId
	case errors.Is(err, cmdrunner.ErrNonZeroExit):
		return issue.NonZeroExitId
	case errors.Is(err, toolfile.ErrUnknownTool):
		return issue.ToolNotFoundId
	case errors.Is(err, toolfile.ErrEnvFile):
		return issue.EnvFileId
	case errors.Is(err, toolfile.ErrInvalidToolfile), errors.As(err, &schemaErr):
		return issue.ToolfileInvalidId
	case errors.Is(err, os.ErrNotExist):
		return issue.ToolfileNotFoundId
	case errors.Is(err, container.ErrEngineNotAvailable):
		return issue.ContainerEngineNotFoundId
	case errors.Is(err, config.ErrInvalidSetting):
		return issue.ConfigLoadFailedId
	case errors.Is(err, errInvalidParameter):
		return issue.InvalidParameterId
	}
	return 0
}

// exitCode is the process exit status for err: the command's own code for a
// checked non-zero exit, 1 otherwise.
func exitCode(err error) int {
	var nz *cmdrunner.NonZeroExitError
	if errors.As(err, &nz) && nz.RC > 0 {
		return nz.RC
	}
	return 1
}

// formatErrorForDisplay formats an error for the user. ActionableErrors use
// their own formatting; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// reportError wraps err in an ExitError for fang to print. In verbose mode
// the actionable details and the matching issue guide are written to w first.
func reportError(w io.Writer, err error, verbose bool, style string) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if verbose {
		fmt.Fprintln(w, VerboseStyle.Render(formatErrorForDisplay(err, true)))
		if guide := issue.Get(classifyError(err)); guide != nil {
			if rendered, renderErr := guide.Render(style); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
	}
	return &ExitError{Code: exitCode(err), Err: err}
}
