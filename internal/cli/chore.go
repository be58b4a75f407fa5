package cli

import (
	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

var choreCmd = &cobra.Command{
	Use:   "chore",
	Short: "Manage recurring chores",
	Long:  "Add chores, see which one is due next, and mark them done",
}

var choreAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a recurring chore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		every, _ := cmd.Flags().GetInt("every")
		return wire.ChoreAdapter().Add(ctx, userID, args[0], every)
	},
}

var choreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's chores",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		return wire.ChoreAdapter().List(ctx, userID)
	},
}

var choreNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the chore that is due first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		return wire.ChoreAdapter().Next(ctx, userID)
	},
}

var choreCompleteCmd = &cobra.Command{
	Use:   "complete [chore-id]",
	Short: "Mark a chore done and show what is next",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ChoreAdapter().Complete(actorContext(cmd), args[0])
	},
}

var choreDeleteCmd = &cobra.Command{
	Use:   "delete [chore-id]",
	Short: "Delete a chore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ChoreAdapter().Delete(actorContext(cmd), args[0])
	},
}

// ChoreCmd returns the chore command
func ChoreCmd() *cobra.Command {
	choreAddCmd.Flags().IntP("every", "e", 7, "Interval in days")

	choreCmd.AddCommand(choreAddCmd)
	choreCmd.AddCommand(choreListCmd)
	choreCmd.AddCommand(choreNextCmd)
	choreCmd.AddCommand(choreCompleteCmd)
	choreCmd.AddCommand(choreDeleteCmd)

	return choreCmd
}
