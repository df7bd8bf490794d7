package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.ConfigDir != "config" {
		t.Errorf("ConfigDir = %q, want %q", s.ConfigDir, "config")
	}
	if s.AppsDir != "src/apps" {
		t.Errorf("AppsDir = %q, want %q", s.AppsDir, "src/apps")
	}
	if s.RegistryBaseName != "apps" {
		t.Errorf("RegistryBaseName = %q, want %q", s.RegistryBaseName, "apps")
	}
	if s.WatchAggregateMS != 300 {
		t.Errorf("WatchAggregateMS = %d, want 300", s.WatchAggregateMS)
	}
	if s.UploaderBin != "kintone-customize-uploader" {
		t.Errorf("UploaderBin = %q", s.UploaderBin)
	}
}

func TestLoadFromFile(t *testing.T) {
	root := t.TempDir()
	content := "dist_dir: build\nregistry_base_name: registry\n"
	if err := os.WriteFile(FilePath(root), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.DistDir != "build" {
		t.Errorf("DistDir = %q, want %q", s.DistDir, "build")
	}
	if s.RegistryBaseName != "registry" {
		t.Errorf("RegistryBaseName = %q, want %q", s.RegistryBaseName, "registry")
	}
	if s.ConfigDir != "config" {
		t.Errorf("ConfigDir default lost: %q", s.ConfigDir)
	}
}

func TestEnvOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("KCMAKER_DTS_BIN", "/opt/bin/dts")
	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.DtsBin != "/opt/bin/dts" {
		t.Errorf("DtsBin = %q, want env override", s.DtsBin)
	}
}

func TestSetPersists(t *testing.T) {
	root := t.TempDir()
	st, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set(KeyDistDir, "out"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, err := os.Stat(FilePath(root)); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	reloaded, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.DistDir != "out" {
		t.Errorf("DistDir = %q after reload, want %q", reloaded.DistDir, "out")
	}
}

func TestSetUnknownKey(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set("nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}
