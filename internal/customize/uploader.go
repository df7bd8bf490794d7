package customize

import (
	"context"
	"fmt"

	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/manifest"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
)

// Uploader pushes an app's customization with the platform uploader.
type Uploader struct {
	Runner runtime.Runner
	Bin    string
	Layout *project.Layout
}

// Upload regenerates the manifest for cfg and runs the uploader against it.
func (u *Uploader) Upload(ctx context.Context, app string, cfg registry.AppConfig, p profile.Profile, scope manifest.Scope, useProxy bool) error {
	path := u.Layout.ManifestPath
	args, err := UploadArgs(p, path, useProxy)
	if err != nil {
		return err
	}
	if err := manifest.Write(path, manifest.New(cfg, scope)); err != nil {
		return fmt.Errorf("writing manifest for %s: %w", app, err)
	}

	ctxlog.FromContext(ctx).Debug("uploading customization", "app", app, "app_id", cfg.AppID, "scope", scope)
	if _, err := u.Runner.Run(ctx, runtime.Command{Name: u.Bin, Args: args, Dir: u.Layout.Root}); err != nil {
		return fmt.Errorf("uploading %s: %w", app, err)
	}
	return nil
}
