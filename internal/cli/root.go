package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kcmaker-dev/kcmaker/internal/branding"
	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
	"github.com/kcmaker-dev/kcmaker/internal/webpack"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootDir   string
	verbose   bool
	logFormat string
)

// workspace is the project state resolved once per invocation.
type workspace struct {
	settings *config.Settings
	layout   *project.Layout
	store    *registry.Store
	runner   *runtime.ExecRunner
}

var ws *workspace

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds and manages customization projects for ` + branding.PlatformName() + `:
environment profiles, per-environment app registries, webpack builds,
customization uploads, and type definition generation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := ctxlog.New(cmd.ErrOrStderr(), verbose, logFormat)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(ctxlog.WithLogger(ctx, logger))

		settings, err := config.Load(rootDir)
		if err != nil {
			return err
		}
		layout, err := project.New(rootDir, settings)
		if err != nil {
			return err
		}
		store := registry.NewStore(layout, settings.RegistryBaseName)
		store.Logger = logger
		ws = &workspace{
			settings: settings,
			layout:   layout,
			store:    store,
			runner: &runtime.ExecRunner{
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
				BinDirs: []string{filepath.Join(layout.Root, "node_modules", ".bin")},
			},
		}
		logger.Debug("resolved project", "root", layout.Root, "config", layout.ConfigDir)
		return nil
	},
}

func (w *workspace) bundler() *webpack.Bundler {
	return &webpack.Bundler{
		Runner:           w.runner,
		NodeBin:          w.settings.NodeBin,
		Layout:           w.layout,
		AggregateTimeout: time.Duration(w.settings.WatchAggregateMS) * time.Millisecond,
	}
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed with a remediation hint before being returned.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && ExitCode(err) != 0 {
		out := rootCmd.ErrOrStderr()
		output.Error(out, "%v", err)
		if hint := Hint(err); hint != "" {
			output.Hint(out, "%s", hint)
		}
	}
	return err
}

func commandLine(sub string) string {
	return fmt.Sprintf("`%s %s`", branding.CLIName(), sub)
}
