package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/schema"
)

// ErrConfigNotFound is matched by *ConfigNotFoundError.
var ErrConfigNotFound = errors.New("app configuration not found")

// ConfigNotFoundError reports a missing registry file.
type ConfigNotFoundError struct {
	Env  environment.Environment
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("app configuration for %s not found: %s", e.Env, e.Path)
}

// Is reports whether target is ErrConfigNotFound.
func (e *ConfigNotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// ParseError reports a registry file that is not valid JSON or does not
// match the registry schema.
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
		return fmt.Sprintf("invalid app configuration %s: %s", e.Path, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("parsing app configuration %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AppNotFoundError reports an app name absent from the registry.
type AppNotFoundError struct {
	Env environment.Environment
	App string
}

func (e *AppNotFoundError) Error() string {
	if e.Env == "" {
		return fmt.Sprintf("app %q is not configured", e.App)
	}
	return fmt.Sprintf("app %q is not configured for %s", e.App, e.Env)
}
