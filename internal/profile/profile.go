package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/platform"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/schema"
)

// ErrNotFound is returned by Load when the profiles file does not exist.
var ErrNotFound = errors.New("profiles not found")

// Profile holds the connection settings for one environment.
type Profile struct {
	Env      environment.Environment `json:"env"`
	BaseURL  string                  `json:"baseUrl"`
	Username string                  `json:"username"`
	Password string                  `json:"password"`
	Proxy    string                  `json:"proxy,omitempty"`
}

// Validate checks that the profile can be used to reach the platform.
func (p Profile) Validate() error {
	if !p.Env.Valid() {
		return fmt.Errorf("invalid environment %q", p.Env)
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("%s: base URL is required", p.Env)
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: base URL %q must be an absolute URL", p.Env, p.BaseURL)
	}
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("%s: username is required", p.Env)
	}
	if p.Password == "" {
		return fmt.Errorf("%s: password is required", p.Env)
	}
	return nil
}

// Profiles maps each configured environment to its profile.
type Profiles map[environment.Environment]Profile

// Environments returns the configured environments in display order.
func (p Profiles) Environments() []environment.Environment {
	var out []environment.Environment
	for _, env := range environment.All() {
		if _, ok := p[env]; ok {
			out = append(out, env)
		}
	}
	return out
}

// Get returns the profile for env or an error naming the remedy.
func (p Profiles) Get(env environment.Environment) (Profile, error) {
	prof, ok := p[env]
	if !ok {
		return Profile{}, fmt.Errorf("no profile for %s: %w", env, ErrNotFound)
	}
	if prof.Env == "" {
		prof.Env = env
	}
	return prof, nil
}

// ParseError reports a profiles file that is not valid JSON or violates the
// profiles schema.
type ParseError struct {
	Path   string
	Err    error
	Issues []schema.Issue
}

func (e *ParseError) Error() string {
	if len(e.Issues) > 0 {
		parts := make([]string, len(e.Issues))
		for i, is := range e.Issues {
			parts[i] = is.String()
		}
		return fmt.Sprintf("invalid profiles %s: %s", e.Path, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("parsing profiles %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the profiles file for the project.
func Load(layout *project.Layout) (Profiles, error) {
	path := layout.ProfilesPath
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := schema.Validate(schema.KindProfiles, data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !res.Valid {
		return nil, &ParseError{Path: path, Err: res, Issues: res.Issues}
	}

	var profiles Profiles
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	for env, p := range profiles {
		if p.Env == "" {
			p.Env = env
			profiles[env] = p
		}
	}
	return profiles, nil
}

// loadOrEmpty is Load with a missing file treated as no profiles.
func loadOrEmpty(layout *project.Layout) (Profiles, error) {
	profiles, err := Load(layout)
	if errors.Is(err, ErrNotFound) {
		return Profiles{}, nil
	}
	return profiles, err
}

// Save writes profiles to the secret directory with owner-only permissions.
func Save(layout *project.Layout, profiles Profiles) error {
	if err := platform.SecureDir(layout.SecretDir, project.DirPermSecure); err != nil {
		return err
	}
	return platform.WriteJSONAtomic(layout.ProfilesPath, profiles, project.FilePermSecure)
}

// Set validates p and stores it, replacing any profile for the same
// environment.
func Set(layout *project.Layout, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	profiles, err := loadOrEmpty(layout)
	if err != nil {
		return err
	}
	profiles[p.Env] = p
	return Save(layout, profiles)
}

// SaveAll validates every profile concurrently and, when all pass, stores
// them with a single write.
func SaveAll(ctx context.Context, layout *project.Layout, ps []Profile) error {
	g, _ := errgroup.WithContext(ctx)
	for _, p := range ps {
		g.Go(p.Validate)
	}
	if err := g.Wait(); err != nil {
		return err
	}

	profiles, err := loadOrEmpty(layout)
	if err != nil {
		return err
	}
	for _, p := range ps {
		profiles[p.Env] = p
	}
	return Save(layout, profiles)
}

// Exists stats every path concurrently and reports, in argument order,
// whether each one exists.
func Exists(ctx context.Context, paths ...string) ([]bool, error) {
	found := make([]bool, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := os.Stat(path)
			switch {
			case err == nil:
				found[i] = true
			case errors.Is(err, fs.ErrNotExist):
			default:
				return fmt.Errorf("checking %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}
