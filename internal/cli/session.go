package cli

import (
	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"memory"},
	Short:   "Manage daily task sessions",
	Long:    "Start a task list, tick tasks off, and review past sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start [task...]",
	Short: "Start a session with the given tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		return wire.SessionAdapter().Start(ctx, userID, args)
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SessionAdapter().Show(cmd.Context(), args[0])
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		status, _ := cmd.Flags().GetString("status")
		return wire.SessionAdapter().List(ctx, userID, status)
	},
}

var sessionToggleCmd = &cobra.Command{
	Use:   "toggle [session-id] [task]",
	Short: "Tick or untick a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SessionAdapter().Toggle(actorContext(cmd), args[0], args[1])
	},
}

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	sessionListCmd.Flags().StringP("status", "s", "", "Filter by status (active, finished)")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionToggleCmd)

	return sessionCmd
}
