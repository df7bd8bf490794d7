package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/scaffold"
)

// ErrCancelled is returned when the user aborts a form.
var ErrCancelled = errors.New("operation cancelled")

// AllApps is the pseudo-selection that stands for every configured app.
const AllApps = "ALL"

// DefaultBaseURL is prefilled in the setup form.
const DefaultBaseURL = "https://example.cybozu.com"

// NonEmpty returns a validator that rejects blank input for field.
func NonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// PositiveInt rejects anything that is not a whole number greater than zero.
func PositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

// AppName rejects names that cannot be used as an app directory.
func AppName(s string) error {
	return project.ValidateAppName(strings.TrimSpace(s))
}

// run executes form and maps an aborted form to ErrCancelled.
func run(form *huh.Form) error {
	err := form.WithTheme(huh.ThemeBase()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

func environmentOptions(envs []environment.Environment) []huh.Option[string] {
	if len(envs) == 0 {
		envs = environment.All()
	}
	opts := make([]huh.Option[string], 0, len(envs))
	for _, e := range envs {
		opts = append(opts, huh.NewOption(e.String(), e.String()))
	}
	return opts
}

// appOptions lists names and, when allowAll is set and there is more than one
// app, a leading AllApps entry.
func appOptions(names []string, allowAll bool) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(names)+1)
	if allowAll && len(names) > 1 {
		opts = append(opts, huh.NewOption("All apps", AllApps))
	}
	for _, n := range names {
		opts = append(opts, huh.NewOption(n, n))
	}
	return opts
}

// Setup asks for the credentials of one environment.
func Setup() (profile.Profile, error) {
	var (
		env      = environment.Development.String()
		baseURL  = DefaultBaseURL
		username string
		password string
	)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Environment").
			Options(environmentOptions(nil)...).
			Value(&env),
		huh.NewInput().
			Title("Base URL").
			Value(&baseURL).
			Validate(NonEmpty("base URL")),
		huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(NonEmpty("username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(NonEmpty("password")),
	).Title("Environment profile"))
	if err := run(form); err != nil {
		return profile.Profile{}, err
	}
	return profile.Profile{
		Env:      environment.Environment(env),
		BaseURL:  strings.TrimSpace(baseURL),
		Username: strings.TrimSpace(username),
		Password: password,
	}, nil
}

// Credentials asks for the connection details of env.
func Credentials(env environment.Environment) (profile.Profile, error) {
	var (
		baseURL  = DefaultBaseURL
		username string
		password string
	)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Base URL").
			Value(&baseURL).
			Validate(NonEmpty("base URL")),
		huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(NonEmpty("username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(NonEmpty("password")),
	).Title(fmt.Sprintf("Credentials for %s", env)))
	if err := run(form); err != nil {
		return profile.Profile{}, err
	}
	return profile.Profile{
		Env:      env,
		BaseURL:  strings.TrimSpace(baseURL),
		Username: strings.TrimSpace(username),
		Password: password,
	}, nil
}

// AppAnswers is the result of the App form.
type AppAnswers struct {
	Env   environment.Environment
	Name  string
	AppID int
}

// App asks for a new app's environment, name and numeric id.
func App(envs []environment.Environment) (AppAnswers, error) {
	var env, name, id string
	if len(envs) > 0 {
		env = envs[0].String()
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Environment").
			Options(environmentOptions(envs)...).
			Value(&env),
		huh.NewInput().
			Title("App name").
			Value(&name).
			Validate(AppName),
		huh.NewInput().
			Title("App ID").
			Value(&id).
			Validate(PositiveInt),
	))
	if err := run(form); err != nil {
		return AppAnswers{}, err
	}
	appID, _ := strconv.Atoi(strings.TrimSpace(id))
	return AppAnswers{Env: environment.Environment(env), Name: strings.TrimSpace(name), AppID: appID}, nil
}

// SelectEnvironment asks for one of envs, or any environment when envs is empty.
func SelectEnvironment(envs []environment.Environment) (environment.Environment, error) {
	var env string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Environment").
			Options(environmentOptions(envs)...).
			Value(&env),
	))
	if err := run(form); err != nil {
		return "", err
	}
	return environment.Environment(env), nil
}

// SelectApps asks for a single app. Picking AllApps expands to every name.
func SelectApps(names []string, allowAll bool) ([]string, error) {
	if len(names) == 0 {
		return nil, errors.New("no apps configured")
	}
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("App").
			Options(appOptions(names, allowAll)...).
			Value(&choice),
	))
	if err := run(form); err != nil {
		return nil, err
	}
	return ExpandSelection([]string{choice}, names), nil
}

// MultiSelectApps asks for any number of apps.
func MultiSelectApps(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, errors.New("no apps configured")
	}
	var chosen []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Apps").
			Options(appOptions(names, false)...).
			Value(&chosen).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return errors.New("select at least one app")
				}
				return nil
			}),
	))
	if err := run(form); err != nil {
		return nil, err
	}
	return chosen, nil
}

// ExpandSelection replaces an AllApps choice with every name.
func ExpandSelection(chosen, names []string) []string {
	for _, c := range chosen {
		if c == AllApps {
			return append([]string(nil), names...)
		}
	}
	return chosen
}

// ChooseOverwrite asks what to do with a non-empty target directory.
func ChooseOverwrite(dir string) (scaffold.OverwriteMode, error) {
	mode := scaffold.OverwriteFail
	target := "Current directory"
	if dir != "." {
		target = fmt.Sprintf("Target directory %q", dir)
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[scaffold.OverwriteMode]().
			Title(target+" is not empty. Please choose how to proceed:").
			Options(
				huh.NewOption("Cancel operation", scaffold.OverwriteFail),
				huh.NewOption("Remove existing files and continue", scaffold.OverwriteEmpty),
				huh.NewOption("Ignore files and continue", scaffold.OverwriteIgnore),
			).
			Value(&mode),
	))
	if err := run(form); err != nil {
		return scaffold.OverwriteFail, err
	}
	return mode, nil
}

// ProjectName asks for the target directory of a new project.
func ProjectName() (string, error) {
	name := scaffold.DefaultProjectName
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Project name").
			Value(&name).
			Validate(NonEmpty("project name")),
	))
	if err := run(form); err != nil {
		return "", err
	}
	return scaffold.FormatTargetDir(name), nil
}

// PackageName asks for an npm package name, suggesting a sanitized default.
func PackageName(suggested string) (string, error) {
	name := scaffold.ToValidPackageName(suggested)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Package name").
			Value(&name).
			Validate(ValidPackageName),
	))
	if err := run(form); err != nil {
		return "", err
	}
	return name, nil
}

// ValidPackageName rejects names npm would refuse.
func ValidPackageName(s string) error {
	if !scaffold.IsValidPackageName(s) {
		return errors.New("invalid package.json name")
	}
	return nil
}

// Template asks for a project template.
func Template() (string, error) {
	choice := scaffold.DefaultTemplate
	opts := make([]huh.Option[string], 0, len(scaffold.Templates()))
	for _, t := range scaffold.Templates() {
		opts = append(opts, huh.NewOption(t.Display, t.Name))
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Select a template").
			Options(opts...).
			Value(&choice),
	))
	if err := run(form); err != nil {
		return "", err
	}
	return choice, nil
}
