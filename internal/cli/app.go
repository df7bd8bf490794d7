package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
	"github.com/kcmaker-dev/kcmaker/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	appEnv  string
	appName string
	appID   int

	appListEnv string
)

func init() {
	appCmd.Flags().StringVarP(&appEnv, "env", "e", "", "Environment the app ID belongs to")
	appCmd.Flags().StringVar(&appName, "name", "", "App directory name")
	appCmd.Flags().IntVar(&appID, "id", 0, "Platform app ID")
	appListCmd.Flags().StringVarP(&appListEnv, "env", "e", "", "Only list this environment")
	appCmd.AddCommand(appListCmd)
	rootCmd.AddCommand(appCmd)
}

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Create an app directory and register its configuration",
	Long: `Create src/apps/<name> from the project's app template and record the
app's ID in the registry of the chosen environment. An existing app directory
is left untouched; the registry entry is always replaced.`,
	Args: cobra.NoArgs,
	RunE: runApp,
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered apps",
	Args:  cobra.NoArgs,
	RunE:  runAppList,
}

func runApp(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var answers prompt.AppAnswers
	if appEnv != "" && appName != "" && appID > 0 {
		env, err := environment.Parse(appEnv)
		if err != nil {
			return err
		}
		if err := project.ValidateAppName(appName); err != nil {
			return err
		}
		answers = prompt.AppAnswers{Env: env, Name: appName, AppID: appID}
	} else {
		profiles, err := profile.Load(ws.layout)
		if err != nil {
			return err
		}
		if answers, err = prompt.App(profiles.Environments()); err != nil {
			return err
		}
	}

	result, err := scaffold.CreateApp(ws.layout, answers.Name)
	if err != nil {
		return err
	}
	if result.Created {
		output.Success(out, "The directory '%s' has been created.", answers.Name)
	} else {
		output.Info(out, "The directory '%s' already exists.", answers.Name)
	}

	if err := ws.store.Upsert(answers.Env, answers.Name, registry.DefaultAppConfig(answers.AppID)); err != nil {
		return err
	}
	output.Success(out, "Configuration for app '%s' has been saved.", answers.Name)
	return nil
}

func runAppList(cmd *cobra.Command, args []string) error {
	envs := environment.All()
	if appListEnv != "" {
		env, err := environment.Parse(appListEnv)
		if err != nil {
			return err
		}
		envs = []environment.Environment{env}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENV\tAPP\tAPP ID\tSCOPE")
	rows := 0
	for _, env := range envs {
		apps, err := ws.store.Load(env)
		if errors.Is(err, registry.ErrConfigNotFound) && appListEnv == "" {
			continue
		}
		if err != nil {
			return err
		}
		for _, name := range apps.Names() {
			cfg := apps[name]
			scope := cfg.Scope
			if scope == "" {
				scope = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", env, name, cfg.AppID, scope)
			rows++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if rows == 0 {
		output.Hint(cmd.OutOrStdout(), "No apps registered. Run %s to add one.", commandLine("app"))
	}
	return nil
}
