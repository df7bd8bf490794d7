package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
)

type versionRunner struct {
	outputs map[string]string
}

func (r *versionRunner) Run(_ context.Context, c runtime.Command) (*runtime.Output, error) {
	out, ok := r.outputs[c.Name]
	if !ok {
		return nil, &runtime.ExitError{Name: c.Name, Code: 1}
	}
	return &runtime.Output{Stdout: out}, nil
}

func testSettings() *config.Settings {
	return &config.Settings{
		ConfigDir:        "config",
		SecretDir:        ".secret",
		AppsDir:          "src/apps",
		DistDir:          "dist",
		AppTemplateDir:   "templates/app",
		RegistryBaseName: "apps",
		UploaderBin:      "kintone-customize-uploader",
		DtsBin:           "kintone-dts-gen",
		NodeBin:          "node",
	}
}

func newDoctor(t *testing.T, runner runtime.Runner, found ...string) *Doctor {
	t.Helper()
	settings := testSettings()
	layout, err := project.New(t.TempDir(), settings)
	if err != nil {
		t.Fatal(err)
	}
	available := map[string]bool{}
	for _, f := range found {
		available[f] = true
	}
	return &Doctor{
		Runner:   runner,
		Layout:   layout,
		Settings: settings,
		LookPath: func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
	}
}

func findCheck(r *Report, section, substr string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Section == section && strings.Contains(c.Message, substr) {
			return c, true
		}
	}
	return Check{}, false
}

func TestRunHealthyProject(t *testing.T) {
	runner := &versionRunner{outputs: map[string]string{
		"node": "v20.11.1\n",
		"npx":  "webpack: 5.97.1\nwebpack-cli: 6.0.1\n",
	}}
	d := newDoctor(t, runner, "node", "npx", "kintone-customize-uploader", "kintone-dts-gen")

	var ps []profile.Profile
	for _, env := range environment.All() {
		ps = append(ps, profile.Profile{Env: env, BaseURL: "https://example.cybozu.com", Username: "u", Password: "p"})
	}
	if err := profile.SaveAll(context.Background(), d.Layout, ps); err != nil {
		t.Fatal(err)
	}
	store := registry.NewStore(d.Layout, "apps")
	for _, env := range environment.All() {
		if err := store.Upsert(env, "crm", registry.DefaultAppConfig(1)); err != nil {
			t.Fatal(err)
		}
	}

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.Healthy() {
		var buf bytes.Buffer
		report.Write(&buf)
		t.Fatalf("expected healthy report:\n%s", buf.String())
	}
	if c, ok := findCheck(report, "Runtime", "webpack 5.97.1"); !ok || c.Status != StatusOK {
		t.Errorf("webpack check = %+v, found %v", c, ok)
	}
}

func TestRunOutdatedNode(t *testing.T) {
	runner := &versionRunner{outputs: map[string]string{"node": "v16.20.2\n"}}
	d := newDoctor(t, runner, "node")

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	c, ok := findCheck(report, "Runtime", "older than")
	if !ok || c.Status != StatusFail {
		t.Errorf("node check = %+v, found %v", c, ok)
	}
	if c, ok := findCheck(report, "Runtime", "webpack not found"); !ok || c.Status != StatusMiss {
		t.Errorf("webpack check = %+v, found %v", c, ok)
	}
	if report.Healthy() {
		t.Error("report should not be healthy")
	}
}

func TestRunMissingDocuments(t *testing.T) {
	d := newDoctor(t, &versionRunner{})

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := findCheck(report, "Profiles", "does not exist"); !ok || c.Status != StatusMiss {
		t.Errorf("profiles check = %+v, found %v", c, ok)
	}
	if c, ok := findCheck(report, "Registry", "apps.dev.json"); ok && c.Status != StatusWarn {
		t.Errorf("registry check = %+v", c)
	}
	if c, ok := findCheck(report, "Tools", "kintone-dts-gen"); !ok || c.Status != StatusMiss {
		t.Errorf("dts check = %+v, found %v", c, ok)
	}
}

func TestRunInvalidRegistry(t *testing.T) {
	d := newDoctor(t, &versionRunner{})
	path := registry.NewStore(d.Layout, "apps").Path(environment.Production)
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte(`{"crm": {"appId": "not-a-number"}}`), 0644)

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range report.Checks {
		if c.Section == "Registry" && c.Status == StatusFail {
			found = true
		}
	}
	if !found {
		t.Error("expected a failed registry check")
	}
}

func TestRunCancelled(t *testing.T) {
	d := newDoctor(t, &versionRunner{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestReportWrite(t *testing.T) {
	r := &Report{}
	r.add("Tools", StatusOK, "node found")
	r.add("Tools", StatusMiss, "npx not found")
	var buf bytes.Buffer
	r.Write(&buf)
	out := buf.String()
	for _, want := range []string{"Tools check:", "[ OK ]", "[MISS]", "npx not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunProjectFiles(t *testing.T) {
	d := newDoctor(t, &versionRunner{})
	os.WriteFile(config.FilePath(d.Layout.Root), []byte("dist_dir: dist\n"), 0644)

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := findCheck(report, "Project", "kcmaker.yaml exists"); !ok || c.Status != StatusOK {
		t.Errorf("settings check = %+v, found %v", c, ok)
	}
	if c, ok := findCheck(report, "Project", "profiles.json does not exist"); !ok || c.Status != StatusWarn {
		t.Errorf("profiles check = %+v, found %v", c, ok)
	}
}
