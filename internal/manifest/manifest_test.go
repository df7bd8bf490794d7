package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kcmaker-dev/kcmaker/internal/registry"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"all", ScopeAll, false},
		{"ADMIN", ScopeAdmin, false},
		{" None ", ScopeNone, false},
		{"everyone", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScope(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseScope(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScope(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := registry.DefaultAppConfig(42)
	cfg.CDN.Desktop.JS = []string{"dist/a/customize.desktop.js", "https://cdn.example.com/lib.js"}
	cfg.CDN.Mobile.CSS = []string{"dist/a/customize.mobile.css"}

	got := New(cfg, ScopeAdmin)
	want := &Manifest{
		App:     42,
		Scope:   ScopeAdmin,
		Desktop: Assets{JS: cfg.CDN.Desktop.JS, CSS: []string{}},
		Mobile:  Assets{JS: []string{}, CSS: cfg.CDN.Mobile.CSS},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}

	got.Desktop.JS[0] = "changed"
	if cfg.CDN.Desktop.JS[0] == "changed" {
		t.Error("New() should copy asset lists")
	}
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customize-manifest.json")
	cfg := registry.DefaultAppConfig(3)
	cfg.CDN.Desktop.JS = []string{"dist/a/customize.desktop.js"}
	m := New(cfg, ScopeAll)

	if err := Write(path, m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "app": 3,
  "scope": "ALL",
  "desktop": {
    "js": [
      "dist/a/customize.desktop.js"
    ],
    "css": []
  },
  "mobile": {
    "js": [],
    "css": []
  }
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}

	back, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if diff := cmp.Diff(m, back); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customize-manifest.json")
	m := New(registry.DefaultAppConfig(1), Scope("everyone"))
	if err := Write(path, m); err == nil {
		t.Fatal("Write() expected error for invalid scope")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid manifest should not be written")
	}
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customize-manifest.json")
	if err := os.WriteFile(path, []byte(`{"app": 1, "scope": "all"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read() expected error")
	}
}
