package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/cli"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/version"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "lifeassist",
		Short:   "lifeassist - chores, daily task sessions and reminders",
		Version: version.String(),
		Long: `lifeassist tracks recurring chores and daily task lists for a user.
Unfinished task lists are closed out after 16 hours with a push reminder.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			path, _ := cmd.Flags().GetString("config")
			wire.SetConfigPath(path)
		},
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.lifeassist/config.yaml)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "Acting user's public key (default identity.user_id)")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.VersionCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.ChoreCmd())
	rootCmd.AddCommand(cli.SessionCmd())
	rootCmd.AddCommand(cli.SweepCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
