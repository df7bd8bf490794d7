package cli

import (
	"context"
	"errors"
	"os/exec"

	"github.com/kcmaker-dev/kcmaker/internal/customize"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/scaffold"
	"github.com/kcmaker-dev/kcmaker/internal/webpack"
)

// ExitCode maps a command error to a process exit code. Cancellation by the
// user is a clean exit.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled), errors.Is(err, context.Canceled):
		return 0
	default:
		return 1
	}
}

// Hint returns a remediation suggestion for err, or "".
func Hint(err error) string {
	var (
		regParse     *registry.ParseError
		profParse    *profile.ParseError
		appMissing   *registry.AppNotFoundError
		invalidMode  *webpack.InvalidModeError
		batchFailure *customize.BatchError
	)
	switch {
	case errors.As(err, &batchFailure):
		return "The remaining apps were processed. Re-run the command for the failed apps."
	case errors.Is(err, profile.ErrNotFound):
		return "Run " + commandLine("setup") + " first."
	case errors.Is(err, registry.ErrConfigNotFound), errors.Is(err, customize.ErrNoApps):
		return "Run " + commandLine("app") + " to register an app for this environment first."
	case errors.As(err, &appMissing):
		return "Run " + commandLine("app") + " to register the app, or check the app name."
	case errors.As(err, &regParse):
		return "Fix " + regParse.Path + " or re-create it with " + commandLine("app") + "."
	case errors.As(err, &profParse):
		return "Fix " + profParse.Path + " or re-create it with " + commandLine("setup") + "."
	case errors.Is(err, customize.ErrProxyNotConfigured):
		return "Add a proxy to the profile with " + commandLine("setup --proxy <url>") + "."
	case errors.As(err, &invalidMode):
		return "Use --mode development or --mode production."
	case errors.Is(err, exec.ErrNotFound):
		return "Install the project dependencies with `npm install`, then run " + commandLine("doctor") + "."
	case errors.Is(err, scaffold.ErrDirNotEmpty):
		return "Choose an empty directory or pass --overwrite empty|ignore."
	}
	return ""
}
