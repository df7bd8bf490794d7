package customize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
)

// TypeGenerator writes field type definitions for an app.
type TypeGenerator struct {
	Runner runtime.Runner
	Bin    string
	Layout *project.Layout
}

// Generate runs the generator into <app>/types/kintone.d.ts. The app source
// directory must already exist.
func (g *TypeGenerator) Generate(ctx context.Context, app string, cfg registry.AppConfig, p profile.Profile, useProxy bool) error {
	appDir := g.Layout.AppDir(app)
	info, err := os.Stat(appDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("app folder %q does not exist: %s", app, appDir)
	}

	out := g.Layout.TypesFilePath(app)
	args, err := TypeGenArgs(p, cfg.AppID, out, useProxy)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), project.DirPermNormal); err != nil {
		return fmt.Errorf("creating types directory: %w", err)
	}
	if _, err := g.Runner.Run(ctx, runtime.Command{Name: g.Bin, Args: args, Dir: g.Layout.Root}); err != nil {
		return fmt.Errorf("generating types for %s: %w", app, err)
	}
	return nil
}
