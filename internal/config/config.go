package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kcmaker-dev/kcmaker/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "kcmaker"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyConfigDir        = "config_dir"
	KeySecretDir        = "secret_dir"
	KeyAppsDir          = "apps_dir"
	KeyDistDir          = "dist_dir"
	KeyAppTemplateDir   = "app_template_dir"
	KeyRegistryBaseName = "registry_base_name"
	KeyUploaderBin      = "uploader_bin"
	KeyDtsBin           = "dts_bin"
	KeyNodeBin          = "node_bin"
	KeyWatchAggregateMS = "watch_aggregate_ms"
	KeyDefaultProxy     = "default_proxy"
)

// Settings holds the resolved project settings.
type Settings struct {
	ConfigDir        string `mapstructure:"config_dir"`
	SecretDir        string `mapstructure:"secret_dir"`
	AppsDir          string `mapstructure:"apps_dir"`
	DistDir          string `mapstructure:"dist_dir"`
	AppTemplateDir   string `mapstructure:"app_template_dir"`
	RegistryBaseName string `mapstructure:"registry_base_name"`
	UploaderBin      string `mapstructure:"uploader_bin"`
	DtsBin           string `mapstructure:"dts_bin"`
	NodeBin          string `mapstructure:"node_bin"`
	WatchAggregateMS int    `mapstructure:"watch_aggregate_ms"`
	DefaultProxy     string `mapstructure:"default_proxy"`
}

// Defaults returns the settings used when kcmaker.yaml is absent.
func Defaults() map[string]any {
	return map[string]any{
		KeyConfigDir:        "config",
		KeySecretDir:        ".secret",
		KeyAppsDir:          "src/apps",
		KeyDistDir:          "dist",
		KeyAppTemplateDir:   "templates/app",
		KeyRegistryBaseName: "apps",
		KeyUploaderBin:      branding.UploaderBin(),
		KeyDtsBin:           branding.DtsBin(),
		KeyNodeBin:          "node",
		KeyWatchAggregateMS: 300,
		KeyDefaultProxy:     "http://localhost:8000",
	}
}

// Keys returns every known setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Defaults()))
	for k := range Defaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilePath returns the settings file path for a project root.
func FilePath(root string) string {
	return filepath.Join(root, fileName+"."+fileType)
}

// Store wraps a viper instance bound to one project's settings file.
type Store struct {
	v    *viper.Viper
	path string
}

// Open initializes viper to read from the project settings file and the
// environment. A missing settings file is not an error.
func Open(root string) (*Store, error) {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}
	path := FilePath(root)
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}
	return &Store{v: v, path: path}, nil
}

// Settings decodes the current values.
func (s *Store) Settings() (*Settings, error) {
	var out Settings
	if err := s.v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &out, nil
}

// Get returns a setting by key. Returns empty string if not set.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Set writes a key-value pair and saves the settings file.
func (s *Store) Set(key, value string) error {
	if _, known := Defaults()[key]; !known {
		return fmt.Errorf("unknown setting %q", key)
	}
	s.v.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("creating settings file %s: %w", s.path, err)
		}
		f.Close()
	}

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// Load is a shortcut for Open followed by Settings.
func Load(root string) (*Settings, error) {
	s, err := Open(root)
	if err != nil {
		return nil, err
	}
	return s.Settings()
}
