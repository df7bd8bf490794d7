// Package config manages project-level settings stored at <root>/kcmaker.yaml.
// Every key can be overridden with a KCMAKER_<KEY> environment variable.
package config
