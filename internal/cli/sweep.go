package cli

import (
	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Session expiry sweep",
}

var sweepRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Expire stale sessions once and notify their owners",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SweepAdapter().Run(cmd.Context())
	},
}

// SweepCmd returns the sweep command
func SweepCmd() *cobra.Command {
	sweepCmd.AddCommand(sweepRunCmd)
	return sweepCmd
}
