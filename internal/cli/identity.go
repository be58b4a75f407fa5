package cli

import (
	gocontext "context"

	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/context"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

// requireUser resolves the acting user from --user or the configured
// identity and returns a context carrying it.
func requireUser(cmd *cobra.Command) (gocontext.Context, string, error) {
	flagValue, _ := cmd.Flags().GetString("user")
	return context.ForUser(cmd.Context(), flagValue, wire.Config())
}

// actorContext attaches the acting user when one is known. Commands that
// address an entity by ID do not need one.
func actorContext(cmd *cobra.Command) gocontext.Context {
	ctx, _, err := requireUser(cmd)
	if err != nil {
		return cmd.Context()
	}
	return ctx
}
