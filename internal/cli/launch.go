package cli

import (
	"github.com/kcmaker-dev/kcmaker/internal/customize"
	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/manifest"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	launchAll       bool
	launchProxy     bool
	launchEnv       string
	launchMode      string
	launchScope     string
	launchSkipBuild bool
	launchApps      []string
)

func init() {
	launchCmd.Flags().BoolVar(&launchAll, "all", false, "Upload every app")
	launchCmd.Flags().BoolVar(&launchProxy, "proxy", false, "Connect through the profile's proxy")
	launchCmd.Flags().StringVarP(&launchEnv, "env", "e", "", "Target environment")
	launchCmd.Flags().StringVarP(&launchMode, "mode", "m", string(environment.ModeProduction), "Build mode (development, production)")
	launchCmd.Flags().StringVarP(&launchScope, "scope", "s", "", "Upload scope (all, admin, none); defaults to the app's recorded scope or ALL")
	launchCmd.Flags().BoolVar(&launchSkipBuild, "skip-build", false, "Upload the existing dist output without building")
	launchCmd.Flags().StringArrayVar(&launchApps, "app", nil, "App to upload (repeatable)")
	rootCmd.AddCommand(launchCmd)
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Build and upload customizations",
	Long: `Build the project for the target environment, record each app's bundles
in the registry, regenerate customize-manifest.json and run the uploader.
With --all every app is processed in turn and failures are reported at the
end.`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	var scope manifest.Scope
	if launchScope != "" {
		s, err := manifest.ParseScope(launchScope)
		if err != nil {
			return err
		}
		scope = s
	}

	p, err := selectProfile(launchEnv)
	if err != nil {
		return err
	}

	names, err := launchCandidates(p.Env)
	if err != nil {
		return err
	}

	var apps []string
	switch {
	case launchAll:
		apps = names
	case len(launchApps) > 0:
		if err := requireKnown(launchApps, names); err != nil {
			return err
		}
		apps = launchApps
	default:
		if apps, err = prompt.SelectApps(names, true); err != nil {
			return err
		}
	}

	opts := customize.LaunchOptions{
		Store:    ws.store,
		Env:      p.Env,
		Profile:  p,
		Apps:     apps,
		Scope:    scope,
		UseProxy: launchProxy,
		Mode:     environment.BuildMode(launchMode),
		Uploader: &customize.Uploader{Runner: ws.runner, Bin: ws.settings.UploaderBin, Layout: ws.layout},
		Out:      cmd.OutOrStdout(),
	}
	if !launchSkipBuild {
		opts.Bundler = ws.bundler()
	}
	return customize.Launch(cmd.Context(), opts)
}

// launchCandidates lists the apps that can be uploaded: the built app
// directories when the build is skipped, otherwise every registered app.
func launchCandidates(env environment.Environment) ([]string, error) {
	if launchSkipBuild {
		return project.SubdirectoryNames(ws.layout.DistDir)
	}
	return ws.store.AppNames(env)
}
