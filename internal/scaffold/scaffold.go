package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/branding"
	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"go.yaml.in/yaml/v3"
)

//go:embed all:templates
var templateFS embed.FS

const (
	projectTemplates = "templates/project"
	appTemplates     = "templates/app"

	// DefaultProjectName is suggested when the user gives no project name.
	DefaultProjectName = "my-kintone-app"
	// DefaultTemplate is used when no template is chosen.
	DefaultTemplate = "vanilla-ts"

	templatePrefix = "customize/"
)

// ErrDirNotEmpty is returned by GenerateProject when the target directory has
// content and the mode is OverwriteFail.
var ErrDirNotEmpty = errors.New("target directory is not empty")

// OverwriteMode controls what GenerateProject does with a non-empty target.
type OverwriteMode int

const (
	// OverwriteFail aborts the operation.
	OverwriteFail OverwriteMode = iota
	// OverwriteEmpty removes existing files (except .git) before generating.
	OverwriteEmpty
	// OverwriteIgnore writes over the existing tree, keeping unrelated files.
	OverwriteIgnore
)

// Template describes one selectable project template.
type Template struct {
	Name    string // e.g. "vanilla-ts"
	Display string // e.g. "TypeScript"
}

// Templates returns the available project templates.
func Templates() []Template {
	return []Template{
		{Name: "vanilla-ts", Display: "TypeScript"},
		{Name: "vanilla-js", Display: "JavaScript"},
	}
}

// LookupTemplate resolves a template name. The "customize/" prefix used by
// older versions of the create command is accepted.
func LookupTemplate(name string) (Template, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), templatePrefix)
	for _, t := range Templates() {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q", name)
}

// ProjectData holds the template variables of a new project.
type ProjectData struct {
	ProjectName string
	PackageName string
	Template    string
	CLIName     string
}

// NewProjectData derives the template variables for a project. An empty
// packageName falls back to the sanitized project name.
func NewProjectData(projectName, packageName, templateName string) *ProjectData {
	if packageName == "" {
		packageName = ToValidPackageName(projectName)
	}
	return &ProjectData{
		ProjectName: projectName,
		PackageName: packageName,
		Template:    templateName,
		CLIName:     branding.CLIName(),
	}
}

// AppData holds the template variables of a new app directory.
type AppData struct {
	AppName string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Created   bool
}

var (
	validPackageName = regexp.MustCompile(`^(?:@[a-z\d\-*~][a-z\d\-*._~]*/)?[a-z\d\-~][a-z\d\-._~]*$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	leadingDotOrUnd  = regexp.MustCompile(`^[._]`)
	invalidRun       = regexp.MustCompile(`[^a-z\d\-~]+`)
)

// IsValidPackageName reports whether name is a valid npm package name.
func IsValidPackageName(name string) bool {
	return validPackageName.MatchString(name)
}

// ToValidPackageName turns an arbitrary project name into an npm package name.
func ToValidPackageName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = leadingDotOrUnd.ReplaceAllString(s, "")
	return invalidRun.ReplaceAllString(s, "-")
}

// FormatTargetDir trims whitespace and trailing slashes from a target dir.
func FormatTargetDir(dir string) string {
	return strings.TrimRight(strings.TrimSpace(dir), "/")
}

// IsEmptyDir reports whether dir is missing, empty, or contains only .git.
func IsEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) == 0 || (len(entries) == 1 && entries[0].Name() == ".git"), nil
}

// emptyDir removes everything in dir except .git.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}

// GenerateProject creates a new customization project in dir. The embedded
// app template matching the project language is copied unrendered to
// templates/app so that later "app" invocations can be customized, and a
// kcmaker.yaml with default settings is written.
func GenerateProject(templateName string, data *ProjectData, dir string, mode OverwriteMode) (*Result, error) {
	tmpl, err := LookupTemplate(templateName)
	if err != nil {
		return nil, err
	}
	data.Template = tmpl.Name

	empty, err := IsEmptyDir(dir)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", dir, err)
	}
	if !empty {
		switch mode {
		case OverwriteFail:
			return nil, fmt.Errorf("%w: %s", ErrDirNotEmpty, dir)
		case OverwriteEmpty:
			if err := emptyDir(dir); err != nil {
				return nil, err
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files, err := renderTree(templateFS, path.Join(projectTemplates, tmpl.Name), dir, data)
	if err != nil {
		return nil, err
	}

	appDir := filepath.Join(dir, filepath.FromSlash(config.Defaults()[config.KeyAppTemplateDir].(string)))
	if err := copyTree(templateFS, path.Join(appTemplates, tmpl.Name), appDir); err != nil {
		return nil, fmt.Errorf("copying app template: %w", err)
	}

	settings, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(config.FilePath(dir), settings, 0644); err != nil {
		return nil, fmt.Errorf("writing settings: %w", err)
	}
	files = append(files, filepath.Base(config.FilePath(dir)))
	sort.Strings(files)

	return &Result{OutputDir: dir, Files: files, Created: true}, nil
}

// CreateApp creates the source directory of a new app. The project's own app
// template directory wins over the embedded one; without it the embedded
// TypeScript template is used when tsconfig.json exists and the JavaScript one
// otherwise. An existing app directory is left untouched.
func CreateApp(layout *project.Layout, name string) (*Result, error) {
	if err := project.ValidateAppName(name); err != nil {
		return nil, err
	}
	dst := layout.AppDir(name)
	if _, err := os.Stat(dst); err == nil {
		return &Result{OutputDir: dst}, nil
	}

	var (
		fsys fs.FS
		root string
	)
	if info, err := os.Stat(layout.AppTemplateDir); err == nil && info.IsDir() {
		fsys, root = os.DirFS(layout.AppTemplateDir), "."
	} else {
		fsys, root = templateFS, path.Join(appTemplates, embeddedAppTemplate(layout.Root))
	}

	files, err := renderTree(fsys, root, dst, &AppData{AppName: name})
	if err != nil {
		os.RemoveAll(dst)
		return nil, fmt.Errorf("creating app %s: %w", name, err)
	}
	sort.Strings(files)
	return &Result{OutputDir: dst, Files: files, Created: true}, nil
}

func embeddedAppTemplate(root string) string {
	if _, err := os.Stat(filepath.Join(root, "tsconfig.json")); err == nil {
		return "vanilla-ts"
	}
	return "vanilla-js"
}
