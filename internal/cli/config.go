package cli

import (
	"fmt"

	"github.com/kcmaker-dev/kcmaker/internal/config"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage project settings",
	Long:  `Read and write project settings stored in kcmaker.yaml at the project root.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a project setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(ws.layout.Root)
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := store.Set(key, value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		output.Success(cmd.OutOrStdout(), "Set %s = %s", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a project setting, or every setting when no key is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(ws.layout.Root)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			fmt.Fprintln(out, store.Get(args[0]))
			return nil
		}
		for _, key := range config.Keys() {
			fmt.Fprintf(out, "%s = %s\n", key, store.Get(key))
		}
		return nil
	},
}
