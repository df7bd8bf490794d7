package registry

import "sort"

// Assets lists the script and stylesheet references for one platform.
// Order matters: the platform loads them in list order.
type Assets struct {
	JS  []string `json:"js"`
	CSS []string `json:"css"`
}

// CDN groups asset lists by platform.
type CDN struct {
	Desktop Assets `json:"desktop"`
	Mobile  Assets `json:"mobile"`
}

// AppConfig is one registry entry.
type AppConfig struct {
	AppID     int               `json:"appId"`
	APITokens map[string]string `json:"apiTokens"`
	ViewID    map[string]any    `json:"viewId"`
	// Scope is the upload scope recorded by older project layouts. Empty
	// means the caller decides.
	Scope string `json:"scope,omitempty"`
	CDN   CDN    `json:"cdn"`
}

// AppsConfig is the whole registry for one environment, keyed by app name.
type AppsConfig map[string]AppConfig

// DefaultAppConfig returns a fresh entry for appID with empty token and view
// maps and empty asset lists.
func DefaultAppConfig(appID int) AppConfig {
	return AppConfig{
		AppID:     appID,
		APITokens: map[string]string{},
		ViewID:    map[string]any{},
		CDN: CDN{
			Desktop: Assets{JS: []string{}, CSS: []string{}},
			Mobile:  Assets{JS: []string{}, CSS: []string{}},
		},
	}
}

// Names returns the app names in lexical order.
func (a AppsConfig) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the entry for name or an *AppNotFoundError.
func Lookup(apps AppsConfig, name string) (AppConfig, error) {
	cfg, ok := apps[name]
	if !ok {
		return AppConfig{}, &AppNotFoundError{App: name}
	}
	return cfg, nil
}

// normalize fills nil maps and slices so that serialized entries always carry
// every field.
func (c *AppConfig) normalize() {
	if c.APITokens == nil {
		c.APITokens = map[string]string{}
	}
	if c.ViewID == nil {
		c.ViewID = map[string]any{}
	}
	for _, a := range []*Assets{&c.CDN.Desktop, &c.CDN.Mobile} {
		if a.JS == nil {
			a.JS = []string{}
		}
		if a.CSS == nil {
			a.CSS = []string{}
		}
	}
}
