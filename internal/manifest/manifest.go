package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/platform"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/schema"
)

// New builds the manifest for an app's registry entry.
func New(cfg registry.AppConfig, scope Scope) *Manifest {
	return &Manifest{
		App:   cfg.AppID,
		Scope: scope,
		Desktop: Assets{
			JS:  nonNil(cfg.CDN.Desktop.JS),
			CSS: nonNil(cfg.CDN.Desktop.CSS),
		},
		Mobile: Assets{
			JS:  nonNil(cfg.CDN.Mobile.JS),
			CSS: nonNil(cfg.CDN.Mobile.CSS),
		},
	}
}

func nonNil(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Write validates m and writes it to path with two-space indentation.
func Write(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	res, err := schema.Validate(schema.KindManifest, data)
	if err != nil {
		return fmt.Errorf("validating manifest: %w", err)
	}
	if !res.Valid {
		return fmt.Errorf("invalid manifest: %w", res)
	}
	return platform.WriteFileAtomic(path, append(data, '\n'), 0644)
}

// Read parses a manifest file, validating it first.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	res, err := schema.Validate(schema.KindManifest, data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if !res.Valid {
		msgs := make([]string, len(res.Issues))
		for i, is := range res.Issues {
			msgs[i] = is.String()
		}
		return nil, fmt.Errorf("invalid manifest %s: %s", path, strings.Join(msgs, "; "))
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
