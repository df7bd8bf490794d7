package webpack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kcmaker-dev/kcmaker/internal/branding"
	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
)

// InvalidModeError reports a build mode other than development or
// production.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode: %s", e.Mode)
}

// Options selects what to assemble.
type Options struct {
	Layout *project.Layout
	Store  *registry.Store
	Env    environment.Environment
	Mode   environment.BuildMode
	// OutDir is the bundle output directory. Relative paths are resolved
	// against the project root; empty means the layout's dist directory.
	OutDir string
}

// Config is an assembled webpack configuration.
type Config struct {
	Env     environment.Environment
	Mode    environment.BuildMode
	OutDir  string
	Entries *Entries
	Values  Object
}

// Assemble builds the webpack configuration for opts. The registry for
// opts.Env is loaded first, so an uninitialized environment fails before
// any other work.
func Assemble(ctx context.Context, opts Options) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	apps, err := opts.Store.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	override, err := modeConfig(opts.Mode)
	if err != nil {
		return nil, err
	}

	layout := opts.Layout
	entries, err := Discover(layout.AppsDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("entries discovered", "count", entries.Len(), "apps_dir", layout.AppsDir)

	outDir := opts.OutDir
	switch {
	case outDir == "":
		outDir = layout.DistDir
	case !filepath.IsAbs(outDir):
		outDir = filepath.Join(layout.Root, filepath.FromSlash(outDir))
	}

	appsJSON, err := json.Marshal(apps)
	if err != nil {
		return nil, fmt.Errorf("encoding app configuration: %w", err)
	}

	common := commonConfig(layout, opts.Mode, entries, outDir, string(appsJSON))
	return &Config{
		Env:     opts.Env,
		Mode:    opts.Mode,
		OutDir:  outDir,
		Entries: entries,
		Values:  Merge(common, override),
	}, nil
}

func modeConfig(mode environment.BuildMode) (Object, error) {
	switch mode {
	case environment.ModeProduction:
		return Object{
			"optimization": Object{
				"minimize": true,
				"minimizer": []any{
					Plugin{
						Package: "terser-webpack-plugin",
						Options: Object{
							"terserOptions":   Object{"format": Object{"comments": false}},
							"extractComments": false,
						},
					},
				},
			},
		}, nil
	case environment.ModeDevelopment:
		return Object{"devtool": "inline-source-map"}, nil
	default:
		return nil, &InvalidModeError{Mode: string(mode)}
	}
}

func commonConfig(layout *project.Layout, mode environment.BuildMode, entries *Entries, outDir, appsJSON string) Object {
	resolve := Object{
		"extensions": []any{".ts", ".tsx", ".js", ".jsx", ".json"},
	}
	var rules []any

	tsconfig := filepath.Join(layout.Root, "tsconfig.json")
	if _, err := os.Stat(tsconfig); err == nil {
		resolve["plugins"] = []any{
			Plugin{
				Package: "tsconfig-paths-webpack-plugin",
				Export:  "TsconfigPathsPlugin",
				Options: Object{"configFile": tsconfig},
			},
		}
		rules = append(rules, Object{
			"test":    Regexp{Source: `\.tsx?$`},
			"exclude": Regexp{Source: `node_modules`},
			"loader":  "ts-loader",
		})
	} else {
		src := filepath.Join(layout.Root, "src")
		resolve["alias"] = Object{
			"@":          src,
			"Config":     layout.ConfigDir,
			"Components": filepath.Join(src, "components"),
			"Constants":  filepath.Join(src, "constants"),
			"Global":     filepath.Join(src, "global"),
			"Utils":      filepath.Join(src, "utils"),
		}
		rules = append(rules, Object{
			"test":    Regexp{Source: `\.jsx?$`},
			"exclude": Regexp{Source: `node_modules`},
		})
	}

	rules = append(rules, Object{
		"test": Regexp{Source: `\.(sa|sc|c)ss$`},
		"use": []any{
			Expr(`require("mini-css-extract-plugin").loader`),
			"css-loader",
			Object{
				"loader":  "sass-loader",
				"options": Object{"sassOptions": Object{"outputStyle": "expanded"}},
			},
		},
	})

	return Object{
		"mode":    string(mode),
		"context": layout.Root,
		"target":  []any{"web", "es2023"},
		"entry":   entries,
		"output": Object{
			"filename": "[name].js",
			"path":     outDir,
		},
		"cache":   Object{"type": "filesystem"},
		"resolve": resolve,
		"module":  Object{"rules": rules},
		"plugins": []any{
			Plugin{Package: "clean-webpack-plugin", Export: "CleanWebpackPlugin"},
			Plugin{Package: "mini-css-extract-plugin", Options: Object{"filename": "[name].css"}},
			Plugin{
				Package: "webpack",
				Export:  "DefinePlugin",
				Options: Object{branding.RuntimeGlobal(): appsJSON},
			},
		},
	}
}
