package cli

import (
	"encoding/json"
	"fmt"

	"github.com/kcmaker-dev/kcmaker/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

// versionInfo identifies the build and the external tools it drives.
type versionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Platform string `json:"platform"`
	Uploader string `json:"uploader"`
	DtsGen   string `json:"dtsGen"`
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		info := versionInfo{
			Version:  buildVersion,
			Commit:   buildCommit,
			Date:     buildDate,
			Platform: branding.PlatformName(),
			Uploader: branding.UploaderBin(),
			DtsGen:   branding.DtsBin(),
		}
		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(out, "%s %s (commit %s, built %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
		fmt.Fprintf(out, "%s customization toolkit; drives %s and %s\n", info.Platform, info.Uploader, info.DtsGen)
		return nil
	},
}
