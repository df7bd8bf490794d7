package cli

import (
	"errors"
	"fmt"

	"github.com/kcmaker-dev/kcmaker/internal/environment"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/profile"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	setupEnv      string
	setupBaseURL  string
	setupUsername string
	setupPassword string
	setupProxy    string
	setupAll      bool
)

func init() {
	setupCmd.Flags().StringVarP(&setupEnv, "env", "e", "", "Environment (development, staging, production)")
	setupCmd.Flags().StringVar(&setupBaseURL, "base-url", "", "Platform base URL")
	setupCmd.Flags().StringVar(&setupUsername, "username", "", "Login name")
	setupCmd.Flags().StringVar(&setupPassword, "password", "", "Password")
	setupCmd.Flags().StringVar(&setupProxy, "proxy", "", "Proxy URL (defaults to the default_proxy setting)")
	setupCmd.Flags().BoolVar(&setupAll, "all", false, "Prompt for every environment that has no profile yet")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Add an environment profile",
	Long: `Record the base URL and credentials used to reach one environment.

With --env, --base-url, --username and --password the profile is written
without prompting. Profiles are stored with owner-only permissions in the
secret directory.`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	proxy := setupProxy
	if proxy == "" {
		proxy = ws.settings.DefaultProxy
	}

	if setupAll {
		return setupMissing(cmd, proxy)
	}

	var p profile.Profile
	if setupEnv != "" && setupBaseURL != "" && setupUsername != "" && setupPassword != "" {
		env, err := environment.Parse(setupEnv)
		if err != nil {
			return err
		}
		p = profile.Profile{Env: env, BaseURL: setupBaseURL, Username: setupUsername, Password: setupPassword}
	} else {
		var err error
		if p, err = prompt.Setup(); err != nil {
			return err
		}
	}
	p.Proxy = proxy

	if err := profile.Set(ws.layout, p); err != nil {
		return err
	}
	output.Success(out, "Profile %q has been saved.", p.Env)
	return nil
}

func setupMissing(cmd *cobra.Command, proxy string) error {
	existing, err := profile.Load(ws.layout)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return err
	}

	var missing []environment.Environment
	for _, env := range environment.All() {
		if _, ok := existing[env]; !ok {
			missing = append(missing, env)
		}
	}
	if len(missing) == 0 {
		return fmt.Errorf("profiles already exist for every environment")
	}

	ps := make([]profile.Profile, 0, len(missing))
	for _, env := range missing {
		p, err := prompt.Credentials(env)
		if err != nil {
			return err
		}
		p.Proxy = proxy
		ps = append(ps, p)
	}
	if err := profile.SaveAll(cmd.Context(), ws.layout, ps); err != nil {
		return err
	}
	for _, p := range ps {
		output.Success(cmd.OutOrStdout(), "Profile %q has been saved.", p.Env)
	}
	return nil
}
