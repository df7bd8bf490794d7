package customize

import (
	"context"
	"fmt"
	"io"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/manifest"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/webpack"
)

// LaunchOptions configures a build-and-upload run.
type LaunchOptions struct {
	Store   *registry.Store
	Env     environment.Environment
	Profile profile.Profile
	Apps    []string
	// Scope overrides every app's upload scope. Empty uses the scope
	// recorded in the registry entry, or ALL.
	Scope    manifest.Scope
	UseProxy bool

	// Bundler builds the project into the layout's dist directory before
	// uploading. Nil skips the build.
	Bundler *webpack.Bundler
	Mode    environment.BuildMode

	Uploader *Uploader
	Out      io.Writer
}

// Launch optionally builds the project, then for each app records the
// freshly built bundles in the registry and uploads the customization.
func Launch(ctx context.Context, opts LaunchOptions) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if len(opts.Apps) == 0 {
		return ErrNoApps
	}

	if opts.Bundler != nil {
		output.Step(out, "Building with webpack (%s)", opts.Mode)
		cfg, err := webpack.Assemble(ctx, webpack.Options{
			Layout: opts.Bundler.Layout,
			Store:  opts.Store,
			Env:    opts.Env,
			Mode:   opts.Mode,
		})
		if err != nil {
			return err
		}
		res, err := opts.Bundler.Build(ctx, cfg)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			output.Warning(out, "%s", w)
		}
		output.Success(out, "Webpack build completed.")
	}

	return RunBatch(ctx, opts.Apps, func(ctx context.Context, app string) error {
		output.Step(out, "Uploading customizations for app: %q", app)
		if err := launchApp(ctx, opts, app); err != nil {
			if len(opts.Apps) > 1 {
				output.Error(out, "Error processing app %s: %v", app, err)
			}
			return err
		}
		output.Success(out, "Upload completed successfully for app: %q", app)
		return nil
	})
}

func launchApp(ctx context.Context, opts LaunchOptions, app string) error {
	layout := opts.Uploader.Layout
	assets, err := DistAssets(layout, app)
	if err != nil {
		return err
	}
	if err := opts.Store.UpdateCDN(opts.Env, app, assets); err != nil {
		return err
	}

	apps, err := opts.Store.Load(opts.Env)
	if err != nil {
		return err
	}
	cfg, err := registry.Lookup(apps, app)
	if err != nil {
		return err
	}

	scope, err := ResolveScope(opts.Scope, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", app, err)
	}
	return opts.Uploader.Upload(ctx, app, cfg, opts.Profile, scope, opts.UseProxy)
}

// ResolveScope picks the upload scope: an explicit choice wins, then the
// scope recorded for the app, then ALL.
func ResolveScope(explicit manifest.Scope, cfg registry.AppConfig) (manifest.Scope, error) {
	if explicit != "" {
		return explicit, nil
	}
	if cfg.Scope != "" {
		return manifest.ParseScope(cfg.Scope)
	}
	return manifest.ScopeAll, nil
}
