package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/project"
)

func TestIsValidPackageName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"my-app", true},
		{"@scope/my-app", true},
		{"app.v2", true},
		{"My-App", false},
		{"my app", false},
		{".hidden", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPackageName(tt.name); got != tt.want {
				t.Errorf("IsValidPackageName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestToValidPackageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My App", "my-app"},
		{"  spaced  out ", "spaced-out"},
		{".dotted", "dotted"},
		{"_under", "under"},
		{"weird!!name", "weird-name"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ToValidPackageName(tt.in)
			if got != tt.want {
				t.Errorf("ToValidPackageName(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !IsValidPackageName(got) {
				t.Errorf("result %q is not a valid package name", got)
			}
		})
	}
}

func TestFormatTargetDir(t *testing.T) {
	if got := FormatTargetDir("  my-app// "); got != "my-app" {
		t.Errorf("FormatTargetDir = %q, want %q", got, "my-app")
	}
}

func TestLookupTemplate(t *testing.T) {
	for _, name := range []string{"vanilla-ts", "customize/vanilla-ts"} {
		tmpl, err := LookupTemplate(name)
		if err != nil {
			t.Fatalf("LookupTemplate(%q) error: %v", name, err)
		}
		if tmpl.Display != "TypeScript" {
			t.Errorf("Display = %q, want TypeScript", tmpl.Display)
		}
	}
	if _, err := LookupTemplate("react"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestIsEmptyDir(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsEmptyDir(filepath.Join(dir, "missing"))
	if err != nil || !empty {
		t.Errorf("missing dir: empty=%v err=%v", empty, err)
	}

	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	empty, _ = IsEmptyDir(dir)
	if !empty {
		t.Error("dir with only .git should count as empty")
	}

	os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644)
	empty, _ = IsEmptyDir(dir)
	if empty {
		t.Error("dir with README.md should not be empty")
	}
}

func TestGenerateProjectTypeScript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-app")

	result, err := GenerateProject("vanilla-ts", NewProjectData("My App", "", ""), dir, OverwriteFail)
	if err != nil {
		t.Fatalf("GenerateProject() error: %v", err)
	}

	assertFiles(t, result, []string{
		".gitignore",
		"config/.gitkeep",
		"kcmaker.yaml",
		"package.json",
		"src/global/appConfig.ts",
		"src/global/types/appConfig.d.ts",
		"tsconfig.json",
	})

	pkg := readGenerated(t, dir, "package.json")
	assertContains(t, pkg, `"name": "my-app"`)
	assertContains(t, pkg, `"dev": "kcmaker dev"`)
	assertContains(t, pkg, "tsconfig-paths-webpack-plugin")
	assertNotContains(t, pkg, "{{")

	accessor := readGenerated(t, dir, "src/global/appConfig.ts")
	assertContains(t, accessor, "APPS_CONFIG")

	// The app template is copied unrendered for later customization.
	appTmpl := readGenerated(t, dir, "templates/app/desktop/index.ts.tmpl")
	assertContains(t, appTmpl, "{{.AppName}}")

	settings, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	if settings.AppsDir != "src/apps" {
		t.Errorf("AppsDir = %q, want src/apps", settings.AppsDir)
	}
}

func TestGenerateProjectJavaScript(t *testing.T) {
	dir := t.TempDir()

	result, err := GenerateProject("customize/vanilla-js", NewProjectData("app", "app", ""), dir, OverwriteFail)
	if err != nil {
		t.Fatalf("GenerateProject() error: %v", err)
	}
	for _, f := range result.Files {
		if f == "tsconfig.json" {
			t.Error("JavaScript project should not have tsconfig.json")
		}
	}
	pkg := readGenerated(t, dir, "package.json")
	assertNotContains(t, pkg, "ts-loader")
}

func TestGenerateProjectNonEmptyDir(t *testing.T) {
	tests := []struct {
		name     string
		mode     OverwriteMode
		wantErr  bool
		keepFile bool
	}{
		{"fail", OverwriteFail, true, true},
		{"empty", OverwriteEmpty, false, false},
		{"ignore", OverwriteIgnore, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			existing := filepath.Join(dir, "notes.txt")
			os.WriteFile(existing, []byte("keep?"), 0644)

			_, err := GenerateProject("vanilla-ts", NewProjectData("p", "", ""), dir, tt.mode)
			if tt.wantErr {
				if !errors.Is(err, ErrDirNotEmpty) {
					t.Fatalf("err = %v, want ErrDirNotEmpty", err)
				}
			} else if err != nil {
				t.Fatalf("GenerateProject() error: %v", err)
			}

			_, statErr := os.Stat(existing)
			if kept := statErr == nil; kept != tt.keepFile {
				t.Errorf("notes.txt kept = %v, want %v", kept, tt.keepFile)
			}
		})
	}
}

func TestCreateAppFromProjectTemplate(t *testing.T) {
	root := t.TempDir()
	if _, err := GenerateProject("vanilla-ts", NewProjectData("p", "", ""), root, OverwriteFail); err != nil {
		t.Fatal(err)
	}
	layout := newLayout(t, root)

	// Customize the project template; CreateApp must prefer it.
	custom := filepath.Join(layout.AppTemplateDir, "README.md.tmpl")
	os.WriteFile(custom, []byte("# {{.AppName}}\n"), 0644)

	result, err := CreateApp(layout, "orders")
	if err != nil {
		t.Fatalf("CreateApp() error: %v", err)
	}
	if !result.Created {
		t.Error("Created = false, want true")
	}
	assertFiles(t, result, []string{
		"README.md",
		"desktop/index.ts",
		"desktop/style.scss",
		"mobile/index.ts",
		"mobile/style.scss",
	})

	appDir := layout.AppDir("orders")
	assertContains(t, readGenerated(t, appDir, "README.md"), "# orders")
	assertContains(t, readGenerated(t, appDir, "desktop/index.ts"), `const APP_NAME = "orders";`)
	assertContains(t, readGenerated(t, appDir, "mobile/index.ts"), "mobile.app.record.index.show")
}

func TestCreateAppRejectsEscapingName(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "proj")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	layout := newLayout(t, root)

	_, err := CreateApp(layout, "../../../escaped")
	if !errors.Is(err, project.ErrInvalidAppName) {
		t.Fatalf("CreateApp() err = %v, want ErrInvalidAppName", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "escaped")); !os.IsNotExist(err) {
		t.Errorf("app directory created outside the project: %v", err)
	}
}

func TestCreateAppEmbeddedFallback(t *testing.T) {
	root := t.TempDir()
	layout := newLayout(t, root)

	result, err := CreateApp(layout, "crm")
	if err != nil {
		t.Fatalf("CreateApp() error: %v", err)
	}
	assertFiles(t, result, []string{
		"desktop/index.js",
		"desktop/style.scss",
		"mobile/index.js",
		"mobile/style.scss",
	})

	os.WriteFile(filepath.Join(root, "tsconfig.json"), []byte("{}"), 0644)
	result, err = CreateApp(layout, "sales")
	if err != nil {
		t.Fatalf("CreateApp() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(result.OutputDir, "desktop", "index.ts")); err != nil {
		t.Errorf("expected TypeScript entry: %v", err)
	}
}

func TestCreateAppExisting(t *testing.T) {
	layout := newLayout(t, t.TempDir())
	dir := layout.AppDir("crm")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "custom.js"), []byte("x"), 0644)

	result, err := CreateApp(layout, "crm")
	if err != nil {
		t.Fatalf("CreateApp() error: %v", err)
	}
	if result.Created {
		t.Error("Created = true for existing app dir")
	}
	if _, err := os.Stat(filepath.Join(dir, "desktop")); err == nil {
		t.Error("existing app dir must not be modified")
	}
}

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"node_modules", true},
		{".git", true},
		{".DS_Store", true},
		{"package.json.tmpl", false},
		{"_gitignore", false},
		{"src", false},
	}
	for _, tt := range tests {
		if got := shouldExclude(tt.name); got != tt.want {
			t.Errorf("shouldExclude(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"_gitignore":        ".gitignore",
		"_gitkeep":          ".gitkeep",
		"package.json.tmpl": "package.json",
		"style.scss":        "style.scss",
	}
	for in, want := range tests {
		if got := outputName(in); got != want {
			t.Errorf("outputName(%q) = %q, want %q", in, got, want)
		}
	}
}

// --- helpers ---

func newLayout(t *testing.T, root string) *project.Layout {
	t.Helper()
	settings, err := config.Load(root)
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	l, err := project.New(root, settings)
	if err != nil {
		t.Fatalf("project.New() error: %v", err)
	}
	return l
}

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if diff := cmp.Diff(expected, result.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q", substr)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("expected content NOT to contain %q", substr)
	}
}
