// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; editing it and rebuilding is
// enough to rename the binary, its environment prefix, or the platform tools
// it drives.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	WorkDir       string `yaml:"work_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	PlatformName  string `yaml:"platform_name"`
	UploaderBin   string `yaml:"uploader_bin"`
	DtsBin        string `yaml:"dts_bin"`
	RuntimeGlobal string `yaml:"runtime_global"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "kcmaker",
			DisplayName:   "kcmaker",
			Description:   "Scaffold, build and launch kintone customizations",
			WorkDir:       ".kcmaker",
			EnvPrefix:     "KCMAKER",
			PlatformName:  "kintone",
			UploaderBin:   "kintone-customize-uploader",
			DtsBin:        "kintone-dts-gen",
			RuntimeGlobal: "APPS_CONFIG",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "kcmaker").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// WorkDir returns the per-project scratch directory name (e.g., ".kcmaker")
// where generated bundler files are written.
func WorkDir() string { load(); return defaults.WorkDir }

// EnvPrefix returns the environment variable prefix (e.g., "KCMAKER").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PlatformName returns the name of the SaaS platform being customized.
func PlatformName() string { load(); return defaults.PlatformName }

// UploaderBin returns the default manifest uploader executable.
func UploaderBin() string { load(); return defaults.UploaderBin }

// DtsBin returns the default type-definition generator executable.
func DtsBin() string { load(); return defaults.DtsBin }

// RuntimeGlobal returns the identifier under which the registry is injected
// into bundled application code.
func RuntimeGlobal() string { load(); return defaults.RuntimeGlobal }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("ENV") → "KCMAKER_ENV".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
