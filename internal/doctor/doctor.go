package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/platform"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
)

// Minimum supported tool versions.
const (
	MinNodeVersion    = "18.0.0"
	MinWebpackVersion = "5.0.0"
)

// Status is the outcome of a single check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusMiss
	StatusFail
)

func (s Status) marker() string {
	switch s {
	case StatusOK:
		return output.Status(true, false)
	case StatusWarn:
		return output.Status(false, true)
	case StatusFail:
		return output.Fail()
	default:
		return output.Status(false, false)
	}
}

// Check is one line of the report.
type Check struct {
	Section string
	Status  Status
	Message string
}

// Report collects the checks of one run.
type Report struct {
	Checks []Check
}

func (r *Report) add(section string, status Status, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Section: section, Status: status, Message: fmt.Sprintf(format, args...)})
}

// Healthy reports whether no check missed or failed.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status == StatusMiss || c.Status == StatusFail {
			return false
		}
	}
	return true
}

// Write prints the report grouped by section.
func (r *Report) Write(w io.Writer) {
	section := ""
	for _, c := range r.Checks {
		if c.Section != section {
			section = c.Section
			output.Title(w, section+" check:")
		}
		fmt.Fprintf(w, "  %s %s\n", c.Status.marker(), c.Message)
	}
}

// Doctor runs the health checks for one project.
type Doctor struct {
	Runner   runtime.Runner
	Layout   *project.Layout
	Settings *config.Settings
	// LookPath resolves binaries. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

func (d *Doctor) lookPath(name string) (string, error) {
	if d.LookPath != nil {
		return d.LookPath(name)
	}
	return exec.LookPath(name)
}

// Run executes every check. It only returns an error when ctx is cancelled.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	r := &Report{}
	if err := d.checkProject(ctx, r); err != nil {
		return nil, err
	}
	d.checkVersion(ctx, r, "Node.js", d.Settings.NodeBin, []string{"--version"}, "", MinNodeVersion)
	d.checkVersion(ctx, r, "webpack", "npx", []string{"--no-install", "webpack", "--version"}, "webpack", MinWebpackVersion)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.checkBinary(r, d.Settings.UploaderBin)
	d.checkBinary(r, d.Settings.DtsBin)
	d.checkProfiles(r)
	d.checkRegistries(r)
	return r, nil
}

func (d *Doctor) checkProject(ctx context.Context, r *Report) error {
	const section = "Project"
	paths := []string{config.FilePath(d.Layout.Root), d.Layout.ProfilesPath}
	found, err := profile.Exists(ctx, paths...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.add(section, StatusFail, "%v", err)
		return nil
	}
	for i, path := range paths {
		if found[i] {
			r.add(section, StatusOK, "%s exists", d.Layout.Rel(path))
		} else {
			r.add(section, StatusWarn, "%s does not exist", d.Layout.Rel(path))
		}
	}
	return nil
}

func (d *Doctor) checkVersion(ctx context.Context, r *Report, label, bin string, args []string, tool, minimum string) {
	const section = "Runtime"
	if _, err := d.lookPath(bin); err != nil {
		r.add(section, StatusMiss, "%s not found (%s)", label, bin)
		return
	}
	out, err := d.Runner.Run(ctx, runtime.Command{Name: bin, Args: args, Dir: d.Layout.Root, Quiet: true})
	if err != nil {
		ctxlog.FromContext(ctx).Debug("version probe failed", "tool", label, "error", err)
		r.add(section, StatusMiss, "%s not available: %v", label, err)
		return
	}
	version, ok := ExtractVersion(out.Stdout, tool)
	if !ok {
		r.add(section, StatusWarn, "%s version could not be determined", label)
		return
	}
	fresh, err := AtLeast(version, minimum)
	if err != nil {
		r.add(section, StatusWarn, "%s version %q: %v", label, version, err)
		return
	}
	if !fresh {
		r.add(section, StatusFail, "%s %s is older than %s", label, version, minimum)
		return
	}
	r.add(section, StatusOK, "%s %s", label, version)
}

func (d *Doctor) checkBinary(r *Report, name string) {
	path, err := d.lookPath(name)
	if err != nil {
		r.add("Tools", StatusMiss, "%s not found (install dev dependencies with npm install)", name)
		return
	}
	r.add("Tools", StatusOK, "%s found at %s", name, path)
}

func (d *Doctor) checkProfiles(r *Report) {
	const section = "Profiles"
	rel := d.Layout.Rel(d.Layout.ProfilesPath)
	profiles, err := profile.Load(d.Layout)
	if errors.Is(err, profile.ErrNotFound) {
		r.add(section, StatusMiss, "%s does not exist (run setup)", rel)
		return
	}
	if err != nil {
		r.add(section, StatusFail, "%v", err)
		return
	}
	if perm, exposed := platform.Exposed(d.Layout.ProfilesPath); exposed {
		r.add(section, StatusWarn, "%s is readable by others (permissions %o)", rel, perm)
	}
	for _, env := range environment.All() {
		p, ok := profiles[env]
		if !ok {
			r.add(section, StatusWarn, "%s: not configured", env)
			continue
		}
		if err := p.Validate(); err != nil {
			r.add(section, StatusFail, "%s: %v", env, err)
			continue
		}
		r.add(section, StatusOK, "%s: %s", env, p.BaseURL)
	}
}

func (d *Doctor) checkRegistries(r *Report) {
	const section = "Registry"
	store := registry.NewStore(d.Layout, d.Settings.RegistryBaseName)
	for _, env := range environment.All() {
		rel := d.Layout.Rel(store.Path(env))
		apps, err := store.Load(env)
		switch {
		case errors.Is(err, registry.ErrConfigNotFound):
			r.add(section, StatusWarn, "%s does not exist", rel)
		case err != nil:
			r.add(section, StatusFail, "%v", err)
		default:
			r.add(section, StatusOK, "%s (%d apps)", rel, len(apps))
		}
	}
}
