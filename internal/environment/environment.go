package environment

import (
	"fmt"
	"strings"
)

// Environment is a deployment target. Every persisted registry and profile
// entry is keyed by exactly one Environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

var suffixes = map[Environment]string{
	Development: "dev",
	Staging:     "stg",
	Production:  "prod",
}

// All returns every environment in display order.
func All() []Environment {
	return []Environment{Development, Staging, Production}
}

// Names returns the string form of All, for flag help and completions.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = string(e)
	}
	return names
}

// Parse converts s into an Environment. The file suffixes (dev, stg, prod)
// are accepted as aliases.
func Parse(s string) (Environment, error) {
	v := Environment(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := suffixes[v]; ok {
		return v, nil
	}
	for env, suffix := range suffixes {
		if string(v) == suffix {
			return env, nil
		}
	}
	return "", fmt.Errorf("invalid environment %q: must be one of %s", s, strings.Join(Names(), ", "))
}

// Valid reports whether e is one of the known environments.
func (e Environment) Valid() bool {
	_, ok := suffixes[e]
	return ok
}

// FileSuffix returns the infix used to namespace persisted documents.
func (e Environment) FileSuffix() string {
	return suffixes[e]
}

func (e Environment) String() string { return string(e) }

// BuildMode selects minification or source maps. It is independent of
// Environment: a production registry can be bundled in development mode.
type BuildMode string

const (
	ModeDevelopment BuildMode = "development"
	ModeProduction  BuildMode = "production"
)

// ParseBuildMode converts s into a BuildMode.
func ParseBuildMode(s string) (BuildMode, error) {
	switch m := BuildMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDevelopment, ModeProduction:
		return m, nil
	default:
		return "", fmt.Errorf("invalid build mode %q: must be %q or %q", s, ModeDevelopment, ModeProduction)
	}
}

func (m BuildMode) String() string { return string(m) }
