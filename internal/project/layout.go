package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/branding"
	"github.com/kcmaker-dev/kcmaker/internal/config"
)

// File names fixed by the platform tooling.
const (
	ManifestFile = "customize-manifest.json"
	ProfilesFile = "profiles.json"
	TypesDir     = "types"
	TypesFile    = "kintone.d.ts"
)

// Permission constants for credential files.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// ErrInvalidAppName is wrapped by ValidateAppName failures.
var ErrInvalidAppName = errors.New("invalid app name")

// ValidateAppName checks that name can serve as a single directory under the
// apps directory, which is also the first segment of its entry keys.
func ValidateAppName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidAppName)
	case name != strings.TrimSpace(name):
		return fmt.Errorf("%w %q: leading or trailing spaces", ErrInvalidAppName, name)
	case name == "." || name == "..":
		return fmt.Errorf("%w %q", ErrInvalidAppName, name)
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return fmt.Errorf("%w %q: must not contain path separators", ErrInvalidAppName, name)
	}
	return nil
}

// Layout holds absolute paths for one project.
type Layout struct {
	Root           string
	ConfigDir      string
	SecretDir      string
	AppsDir        string
	DistDir        string
	AppTemplateDir string
	WorkDir        string
	ManifestPath   string
	ProfilesPath   string
}

// New builds a Layout for root using the given settings. Relative settings
// are resolved against root.
func New(root string, s *config.Settings) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %s: %w", root, err)
	}
	if s == nil {
		s, err = config.Load(abs)
		if err != nil {
			return nil, err
		}
	}
	join := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(abs, filepath.FromSlash(p))
	}
	secretDir := join(s.SecretDir)
	return &Layout{
		Root:           abs,
		ConfigDir:      join(s.ConfigDir),
		SecretDir:      secretDir,
		AppsDir:        join(s.AppsDir),
		DistDir:        join(s.DistDir),
		AppTemplateDir: join(s.AppTemplateDir),
		WorkDir:        filepath.Join(abs, branding.WorkDir()),
		ManifestPath:   filepath.Join(abs, ManifestFile),
		ProfilesPath:   filepath.Join(secretDir, ProfilesFile),
	}, nil
}

// AppDir returns the source directory for an app.
func (l *Layout) AppDir(name string) string {
	return filepath.Join(l.AppsDir, name)
}

// DistAppDir returns the bundler output directory for an app.
func (l *Layout) DistAppDir(name string) string {
	return filepath.Join(l.DistDir, name)
}

// TypesFilePath returns where generated type definitions for an app go.
func (l *Layout) TypesFilePath(name string) string {
	return filepath.Join(l.AppDir(name), TypesDir, TypesFile)
}

// Rel returns path relative to the project root with forward slashes, the
// form recorded in cdn lists and the upload manifest.
func (l *Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// SubdirectoryNames returns the sorted names of the immediate
// subdirectories of dir. It fails when dir is missing or has none.
func SubdirectoryNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("required directory not found: %s", dir)
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no subdirectories found in %s", dir)
	}
	sort.Strings(names)
	return names, nil
}
