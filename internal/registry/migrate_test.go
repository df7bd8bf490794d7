package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
)

func TestLoadMigratesLegacyShape(t *testing.T) {
	s := newTestStore(t)
	env := environment.Development
	writeRegistry(t, s, env, `{
  "orders": {
    "appId": 12,
    "cdn": {
      "scope": "ADMIN",
      "desktop": {"js": ["https://cdn.example.com/a.js"], "css": []},
      "mobile": {"js": []}
    }
  }
}`)

	apps, err := s.Load(env)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := DefaultAppConfig(12)
	want.Scope = "ADMIN"
	want.CDN.Desktop.JS = []string{"https://cdn.example.com/a.js"}
	if diff := cmp.Diff(want, apps["orders"]); diff != "" {
		t.Errorf("migrated entry mismatch (-want +got):\n%s", diff)
	}
}

func TestTopLevelScopeWins(t *testing.T) {
	apps, err := decode([]byte(`{"a": {"appId": 1, "scope": "NONE", "cdn": {"scope": "ALL"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if apps["a"].Scope != "NONE" {
		t.Errorf("Scope = %q, want NONE", apps["a"].Scope)
	}
}

func TestMigratedFileRewrittenInCurrentShape(t *testing.T) {
	s := newTestStore(t)
	env := environment.Development
	writeRegistry(t, s, env, `{"a": {"appId": 1, "cdn": {"scope": "ALL", "desktop": {"js": [], "css": []}, "mobile": {"js": []}}}}`)

	if err := s.UpdateCDN(env, "a", CDN{Mobile: Assets{JS: []string{"dist/a/customize.mobile.js"}}}); err != nil {
		t.Fatalf("UpdateCDN() error: %v", err)
	}
	apps, err := s.Load(env)
	if err != nil {
		t.Fatal(err)
	}
	got := apps["a"]
	if got.Scope != "ALL" {
		t.Errorf("Scope = %q, want ALL", got.Scope)
	}
	if got.CDN.Mobile.CSS == nil {
		t.Error("mobile.css should be an empty list after migration")
	}
	if diff := cmp.Diff([]string{"dist/a/customize.mobile.js"}, got.CDN.Mobile.JS); diff != "" {
		t.Errorf("mobile.js mismatch (-want +got):\n%s", diff)
	}
}
