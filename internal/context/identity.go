package context

import (
	gocontext "context"
	"errors"
	"strings"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/config"
)

// ErrNoIdentity is returned when neither a flag nor the config names a user.
var ErrNoIdentity = errors.New("no user given: pass --user or set identity.user_id in config")

// ResolveUserID picks the acting user: the explicit flag value first, then
// the configured identity.
func ResolveUserID(flagValue string, cfg *config.Config) (string, error) {
	if id := strings.TrimSpace(flagValue); id != "" {
		return id, nil
	}
	if cfg != nil {
		if id := strings.TrimSpace(cfg.Identity.UserID); id != "" {
			return id, nil
		}
	}
	return "", ErrNoIdentity
}

// ForUser resolves the acting user and returns a context carrying it as actor.
func ForUser(ctx gocontext.Context, flagValue string, cfg *config.Config) (gocontext.Context, string, error) {
	id, err := ResolveUserID(flagValue, cfg)
	if err != nil {
		return ctx, "", err
	}
	return WithActorID(ctx, id), id, nil
}
