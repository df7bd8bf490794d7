package environment

import (
	"github.com/caarlos0/env/v11"
)

// runtimeVars are the variables that may name the active environment.
// The CLI-specific variable wins over the NODE_ENV convention used by the
// project's JavaScript tooling.
type runtimeVars struct {
	Env     string `env:"KCMAKER_ENV"`
	NodeEnv string `env:"NODE_ENV"`
}

// FromEnv returns the environment named by KCMAKER_ENV or NODE_ENV,
// defaulting to Development when neither is set or recognized.
func FromEnv() Environment {
	var vars runtimeVars
	if err := env.Parse(&vars); err != nil {
		return Development
	}
	for _, candidate := range []string{vars.Env, vars.NodeEnv} {
		if candidate == "" {
			continue
		}
		if e, err := Parse(candidate); err == nil {
			return e
		}
	}
	return Development
}
