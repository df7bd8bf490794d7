package registry

import (
	"encoding/json"
	"strings"
)

// legacyAppConfig accepts every shape older generators wrote. The reno
// variant kept the upload scope under cdn and had no mobile stylesheets.
type legacyAppConfig struct {
	AppID     int               `json:"appId"`
	APITokens map[string]string `json:"apiTokens"`
	ViewID    map[string]any    `json:"viewId"`
	Scope     string            `json:"scope"`
	CDN       struct {
		Scope   string `json:"scope"`
		Desktop Assets `json:"desktop"`
		Mobile  Assets `json:"mobile"`
	} `json:"cdn"`
}

func (l legacyAppConfig) current() AppConfig {
	cfg := AppConfig{
		AppID:     l.AppID,
		APITokens: l.APITokens,
		ViewID:    l.ViewID,
		Scope:     strings.ToUpper(l.Scope),
		CDN: CDN{
			Desktop: l.CDN.Desktop,
			Mobile:  l.CDN.Mobile,
		},
	}
	if cfg.Scope == "" {
		cfg.Scope = strings.ToUpper(l.CDN.Scope)
	}
	cfg.normalize()
	return cfg
}

// decode parses a registry document, migrating legacy entries in memory.
func decode(data []byte) (AppsConfig, error) {
	var raw map[string]legacyAppConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	apps := make(AppsConfig, len(raw))
	for name, entry := range raw {
		apps[name] = entry.current()
	}
	return apps, nil
}
