package context

import (
	gocontext "context"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ctxutil"
)

// WithActorID returns a context with the actor ID embedded.
// Actor ID is the acting user's public key, or ctxutil.SweepActor for the sweep.
// This is a convenience wrapper around ctxutil.WithActorID.
func WithActorID(ctx gocontext.Context, actorID string) gocontext.Context {
	return ctxutil.WithActorID(ctx, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
// This is a convenience wrapper around ctxutil.ActorFromContext.
func ActorFromContext(ctx gocontext.Context) string {
	return ctxutil.ActorFromContext(ctx)
}
