package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/platform"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/schema"
)

// DefaultBaseName is the registry file name stem.
const DefaultBaseName = "apps"

// Path returns {configDir}/{baseName}.{suffix}.json.
func Path(configDir, baseName string, env environment.Environment) string {
	return filepath.Join(configDir, fmt.Sprintf("%s.%s.json", baseName, env.FileSuffix()))
}

// Store reads and writes registry files for one project.
type Store struct {
	Layout   *project.Layout
	BaseName string
	// Marker identifies CDN entries produced by earlier builds. Entries
	// starting with Marker are replaced on every UpdateCDN. Empty disables
	// the filter.
	Marker string
	Logger *slog.Logger
}

// NewStore returns a Store whose marker is the project's dist directory.
func NewStore(layout *project.Layout, baseName string) *Store {
	if baseName == "" {
		baseName = DefaultBaseName
	}
	return &Store{
		Layout:   layout,
		BaseName: baseName,
		Marker:   strings.TrimSuffix(layout.Rel(layout.DistDir), "/") + "/",
	}
}

func (s *Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Path returns the registry file for env.
func (s *Store) Path(env environment.Environment) string {
	return Path(s.Layout.ConfigDir, s.BaseName, env)
}

// Load reads and validates the registry for env. A missing file yields a
// *ConfigNotFoundError; malformed content yields a *ParseError.
func (s *Store) Load(env environment.Environment) (AppsConfig, error) {
	path := s.Path(env)
	s.logger().Debug("loading app configuration", "env", env, "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigNotFoundError{Env: env, Path: path}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := schema.Validate(schema.KindApps, data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !res.Valid {
		return nil, &ParseError{Path: path, Err: res, Issues: res.Issues}
	}

	apps, err := decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return apps, nil
}

// loadOrEmpty is Load with a missing file treated as an empty registry.
func (s *Store) loadOrEmpty(env environment.Environment) (AppsConfig, error) {
	apps, err := s.Load(env)
	if errors.Is(err, ErrConfigNotFound) {
		return AppsConfig{}, nil
	}
	return apps, err
}

// AppNames returns the configured app names for env in lexical order.
func (s *Store) AppNames(env environment.Environment) ([]string, error) {
	apps, err := s.Load(env)
	if err != nil {
		return nil, err
	}
	return apps.Names(), nil
}

// Upsert sets the entry for name, creating the registry file and its
// directory when absent. The previous entry is replaced wholesale.
func (s *Store) Upsert(env environment.Environment, name string, cfg AppConfig) error {
	apps, err := s.loadOrEmpty(env)
	if err != nil {
		return err
	}
	cfg.normalize()
	apps[name] = cfg
	if err := s.write(env, apps); err != nil {
		return err
	}
	s.logger().Debug("app configuration saved", "env", env, "app", name, "app_id", cfg.AppID)
	return nil
}

// UpdateCDN prepends the given asset paths to each of the app's four lists.
// Existing entries equal to a new path, or starting with the store's marker,
// are dropped first. The registry must exist and contain name.
func (s *Store) UpdateCDN(env environment.Environment, name string, assets CDN) error {
	apps, err := s.Load(env)
	if err != nil {
		return err
	}
	cfg, ok := apps[name]
	if !ok {
		return &AppNotFoundError{Env: env, App: name}
	}

	cfg.CDN.Desktop.JS = s.prepend(assets.Desktop.JS, cfg.CDN.Desktop.JS)
	cfg.CDN.Desktop.CSS = s.prepend(assets.Desktop.CSS, cfg.CDN.Desktop.CSS)
	cfg.CDN.Mobile.JS = s.prepend(assets.Mobile.JS, cfg.CDN.Mobile.JS)
	cfg.CDN.Mobile.CSS = s.prepend(assets.Mobile.CSS, cfg.CDN.Mobile.CSS)
	apps[name] = cfg

	if err := s.write(env, apps); err != nil {
		return err
	}
	s.logger().Debug("cdn lists updated", "env", env, "app", name)
	return nil
}

func (s *Store) prepend(fresh, existing []string) []string {
	out := make([]string, 0, len(fresh)+len(existing))
	seen := make(map[string]bool, len(fresh))
	for _, p := range fresh {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, p := range existing {
		if seen[p] {
			continue
		}
		if s.Marker != "" && strings.HasPrefix(p, s.Marker) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) write(env environment.Environment, apps AppsConfig) error {
	if err := os.MkdirAll(s.Layout.ConfigDir, project.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	for name, cfg := range apps {
		cfg.normalize()
		apps[name] = cfg
	}
	return platform.WriteJSONAtomic(s.Path(env), apps, project.FilePermNormal)
}
