package cli

import (
	"context"

	"github.com/kcmaker-dev/kcmaker/internal/customize"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/spf13/cobra"
)

var (
	dtsAll   bool
	dtsProxy bool
	dtsEnv   string
	dtsApps  []string
)

func init() {
	dtsCmd.Flags().BoolVar(&dtsAll, "all", false, "Generate for every app")
	dtsCmd.Flags().BoolVar(&dtsProxy, "proxy", false, "Connect through the profile's proxy")
	dtsCmd.Flags().StringVarP(&dtsEnv, "env", "e", "", "Environment to read field definitions from")
	dtsCmd.Flags().StringArrayVar(&dtsApps, "app", nil, "App to generate for (repeatable)")
	rootCmd.AddCommand(dtsCmd)
}

var dtsCmd = &cobra.Command{
	Use:   "dts",
	Short: "Generate field type definitions for apps",
	Long: `Run the type definition generator for the selected apps, writing
src/apps/<app>/types/kintone.d.ts. With --all every app directory is processed
in turn and failures are reported at the end.`,
	Args: cobra.NoArgs,
	RunE: runDts,
}

func runDts(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	names, err := project.SubdirectoryNames(ws.layout.AppsDir)
	if err != nil {
		return err
	}

	p, err := selectProfile(dtsEnv)
	if err != nil {
		return err
	}

	var apps []string
	switch {
	case dtsAll:
		apps = names
	case len(dtsApps) > 0:
		if err := requireKnown(dtsApps, names); err != nil {
			return err
		}
		apps = dtsApps
	default:
		if apps, err = prompt.MultiSelectApps(names); err != nil {
			return err
		}
	}

	configs, err := ws.store.Load(p.Env)
	if err != nil {
		return err
	}

	gen := &customize.TypeGenerator{Runner: ws.runner, Bin: ws.settings.DtsBin, Layout: ws.layout}
	return customize.RunBatch(cmd.Context(), apps, func(ctx context.Context, app string) error {
		output.Step(out, "Generating type definitions for app: %q", app)
		err := generateTypes(ctx, gen, configs, app, p)
		if err != nil {
			if len(apps) > 1 {
				output.Error(out, "Error processing app %q: %v", app, err)
			}
			return err
		}
		output.Success(out, "Type definitions written to %s", ws.layout.Rel(ws.layout.TypesFilePath(app)))
		return nil
	})
}

func generateTypes(ctx context.Context, gen *customize.TypeGenerator, configs registry.AppsConfig, app string, p profile.Profile) error {
	cfg, err := registry.Lookup(configs, app)
	if err != nil {
		return err
	}
	return gen.Generate(ctx, app, cfg, p, dtsProxy)
}
