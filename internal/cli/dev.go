package cli

import (
	"context"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/webpack"
	"github.com/spf13/cobra"
)

var (
	devOutDir string
	devEnv    string
)

func init() {
	devCmd.Flags().StringVarP(&devOutDir, "outdir", "o", "", "Output directory (defaults to the dist_dir setting)")
	devCmd.Flags().StringVarP(&devEnv, "env", "e", "", "Environment whose app configuration is injected (defaults to KCMAKER_ENV / NODE_ENV)")
	rootCmd.AddCommand(devCmd)
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Rebuild in development mode on every change",
	Long: `Run webpack in watch mode. Each rebuild is reported as it finishes.
Changes to the environment's app registry restart the watcher so the
injected configuration stays current. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runDev,
}

func runDev(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	env, err := resolveEnv(devEnv)
	if err != nil {
		return err
	}

	assemble := func(ctx context.Context) (*webpack.Config, error) {
		return webpack.Assemble(ctx, webpack.Options{
			Layout: ws.layout,
			Store:  ws.store,
			Env:    env,
			Mode:   environment.ModeDevelopment,
			OutDir: devOutDir,
		})
	}

	output.Step(out, "Watching for changes (%s)", env)
	return ws.bundler().Serve(cmd.Context(), ws.store.Path(env), assemble, func(res *webpack.Result) {
		reportResult(out, res)
	})
}
