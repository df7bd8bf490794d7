package cli

import (
	"errors"

	"github.com/kcmaker-dev/kcmaker/internal/doctor"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("doctor found problems")

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the project toolchain",
	Long: `Check Node.js and webpack versions, the uploader and type generator
binaries, and the validity of the profiles and app registries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor.Doctor{
			Runner:   ws.runner,
			Layout:   ws.layout,
			Settings: ws.settings,
			LookPath: ws.runner.LookPath,
		}
		report, err := d.Run(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		report.Write(out)
		if !report.Healthy() {
			return errUnhealthy
		}
		output.Success(out, "Everything looks good.")
		return nil
	},
}
