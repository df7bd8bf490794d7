package cli

import (
	"io"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/webpack"
	"github.com/spf13/cobra"
)

var (
	buildMode   string
	buildOutDir string
	buildEnv    string
)

func init() {
	buildCmd.Flags().StringVarP(&buildMode, "mode", "m", string(environment.ModeDevelopment), "Build mode (development, production)")
	buildCmd.Flags().StringVarP(&buildOutDir, "outdir", "o", "", "Output directory (defaults to the dist_dir setting)")
	buildCmd.Flags().StringVarP(&buildEnv, "env", "e", "", "Environment whose app configuration is injected (defaults to KCMAKER_ENV / NODE_ENV)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle every app with webpack",
	Long: `Assemble the webpack configuration for the project and run one build.

Every src/apps/<app>/{desktop,mobile}/index.* file becomes an entry point and
the environment's app configuration is injected as a global constant.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

// resolveEnv parses flag, falling back to the runtime-mode variables.
func resolveEnv(flag string) (environment.Environment, error) {
	if flag == "" {
		return environment.FromEnv(), nil
	}
	return environment.Parse(flag)
}

func runBuild(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	env, err := resolveEnv(buildEnv)
	if err != nil {
		return err
	}

	cfg, err := webpack.Assemble(cmd.Context(), webpack.Options{
		Layout: ws.layout,
		Store:  ws.store,
		Env:    env,
		Mode:   environment.BuildMode(buildMode),
		OutDir: buildOutDir,
	})
	if err != nil {
		return err
	}

	output.Step(out, "Building %d entries for %s (%s)", cfg.Entries.Len(), env, cfg.Mode)
	res, err := ws.bundler().Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	reportResult(out, res)
	return nil
}

// reportResult prints the outcome of one compilation.
func reportResult(out io.Writer, res *webpack.Result) {
	for _, w := range res.Warnings {
		output.Warning(out, "%s", w)
	}
	if res.HasErrors {
		for _, e := range res.Errors {
			output.Error(out, "%s", e)
		}
		return
	}
	output.Success(out, "Webpack build completed (%d assets).", len(res.Assets))
}
