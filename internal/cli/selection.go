package cli

import (
	"fmt"
	"slices"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
)

// selectProfile resolves the target environment from flag or a prompt over
// the configured profiles, and returns its profile.
func selectProfile(flag string) (profile.Profile, error) {
	profiles, err := profile.Load(ws.layout)
	if err != nil {
		return profile.Profile{}, err
	}
	var env environment.Environment
	if flag != "" {
		if env, err = environment.Parse(flag); err != nil {
			return profile.Profile{}, err
		}
	} else if env, err = prompt.SelectEnvironment(profiles.Environments()); err != nil {
		return profile.Profile{}, err
	}
	return profiles.Get(env)
}

// requireKnown fails when any of requested is not in names.
func requireKnown(requested, names []string) error {
	for _, r := range requested {
		if !slices.Contains(names, r) {
			return fmt.Errorf("unknown app %q (available: %v)", r, names)
		}
	}
	return nil
}
