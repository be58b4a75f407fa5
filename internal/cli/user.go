package cli

import (
	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/context"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user profiles",
	Long:  "Register users, edit profiles, and manage push destinations",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register [public-key]",
	Short: "Register a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		ctx := context.WithActorID(cmd.Context(), args[0])
		return wire.UserAdapter().Register(ctx, args[0], name)
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show [public-key]",
	Short: "Show a user profile (defaults to the current user)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return wire.UserAdapter().Show(cmd.Context(), args[0])
		}
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		return wire.UserAdapter().Show(ctx, userID)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		pushOnly, _ := cmd.Flags().GetBool("push")
		return wire.UserAdapter().List(cmd.Context(), pushOnly)
	},
}

var userProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update profile fields of the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		goals, _ := cmd.Flags().GetString("goals")
		diet, _ := cmd.Flags().GetString("diet")
		responsibilities, _ := cmd.Flags().GetString("responsibilities")
		finances, _ := cmd.Flags().GetString("finances")

		return wire.UserAdapter().UpdateProfile(ctx, primary.UpdateProfileRequest{
			UserID:           userID,
			DisplayName:      name,
			Goals:            goals,
			Diet:             diet,
			Responsibilities: responsibilities,
			Finances:         finances,
		})
	},
}

var userPushTokenCmd = &cobra.Command{
	Use:   "push-token [token]",
	Short: "Register (or with --clear, remove) the current user's push token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		clearToken, _ := cmd.Flags().GetBool("clear")
		token := ""
		if !clearToken {
			if len(args) == 0 {
				return cmd.Usage()
			}
			token = args[0]
		}
		return wire.UserAdapter().SetPushToken(ctx, userID, token)
	},
}

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	// Add flags
	userRegisterCmd.Flags().StringP("name", "n", "", "Display name")
	userListCmd.Flags().Bool("push", false, "Only users with a push token")
	userProfileCmd.Flags().StringP("name", "n", "", "Display name")
	userProfileCmd.Flags().String("goals", "", "Goals")
	userProfileCmd.Flags().String("diet", "", "Diet")
	userProfileCmd.Flags().String("responsibilities", "", "Responsibilities")
	userProfileCmd.Flags().String("finances", "", "Finances")
	userPushTokenCmd.Flags().Bool("clear", false, "Remove the registered token")

	// Add subcommands
	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userProfileCmd)
	userCmd.AddCommand(userPushTokenCmd)

	return userCmd
}
