//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/scaffold"
)

// testEnv is a freshly scaffolded project.
type testEnv struct {
	Root   string
	Layout *project.Layout
	Store  *registry.Store
}

// setupProject scaffolds a TypeScript project in a temp directory and
// resolves its layout from the generated settings file.
func setupProject(t *testing.T) *testEnv {
	t.Helper()

	root := filepath.Join(t.TempDir(), "customize")
	data := scaffold.NewProjectData("customize", "", "")
	if _, err := scaffold.GenerateProject("vanilla-ts", data, root, scaffold.OverwriteFail); err != nil {
		t.Fatalf("GenerateProject: %v", err)
	}

	settings, err := config.Load(root)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	layout, err := project.New(root, settings)
	if err != nil {
		t.Fatalf("project.New: %v", err)
	}
	return &testEnv{
		Root:   root,
		Layout: layout,
		Store:  registry.NewStore(layout, settings.RegistryBaseName),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q", path, substr)
	}
}
