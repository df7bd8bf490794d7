package manifest

import (
	"fmt"
	"strings"
)

// Scope controls which users receive an uploaded customization.
type Scope string

const (
	ScopeAll   Scope = "ALL"
	ScopeAdmin Scope = "ADMIN"
	ScopeNone  Scope = "NONE"
)

// Scopes returns every scope in display order.
func Scopes() []Scope {
	return []Scope{ScopeAll, ScopeAdmin, ScopeNone}
}

// ParseScope accepts a scope name in any case.
func ParseScope(s string) (Scope, error) {
	v := Scope(strings.ToUpper(strings.TrimSpace(s)))
	for _, sc := range Scopes() {
		if v == sc {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid scope %q: must be one of all, admin, none", s)
}

func (s Scope) String() string { return string(s) }

// Assets lists scripts and stylesheets for one platform.
type Assets struct {
	JS  []string `json:"js"`
	CSS []string `json:"css"`
}

// Manifest is the uploader input document.
type Manifest struct {
	App     int    `json:"app"`
	Scope   Scope  `json:"scope"`
	Desktop Assets `json:"desktop"`
	Mobile  Assets `json:"mobile"`
}
