package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// UserAdapter is a thin adapter that translates CLI operations to UserService calls.
type UserAdapter struct {
	service primary.UserService
	out     io.Writer
}

// NewUserAdapter creates a new UserAdapter with the given service.
func NewUserAdapter(service primary.UserService, out io.Writer) *UserAdapter {
	return &UserAdapter{
		service: service,
		out:     out,
	}
}

// Register creates a user profile.
func (a *UserAdapter) Register(ctx context.Context, userID, displayName string) error {
	user, err := a.service.RegisterUser(ctx, primary.RegisterUserRequest{
		UserID:      userID,
		DisplayName: displayName,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered user %s\n", user.ID)
	return nil
}

// Show displays a user profile.
func (a *UserAdapter) Show(ctx context.Context, userID string) error {
	user, err := a.service.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	fmt.Fprintf(a.out, "\nUser: %s\n", user.ID)
	if user.DisplayName != "" {
		fmt.Fprintf(a.out, "Name: %s\n", user.DisplayName)
	}
	for _, field := range []struct{ label, value string }{
		{"Goals", user.Goals},
		{"Diet", user.Diet},
		{"Responsibilities", user.Responsibilities},
		{"Finances", user.Finances},
	} {
		if field.value != "" {
			fmt.Fprintf(a.out, "%s: %s\n", field.label, field.value)
		}
	}
	push := "not registered"
	if user.HasPushToken {
		push = "registered"
	}
	fmt.Fprintf(a.out, "Push: %s\n\n", push)
	return nil
}

// List lists users.
func (a *UserAdapter) List(ctx context.Context, withPushToken bool) error {
	users, err := a.service.ListUsers(ctx, primary.UserFilters{WithPushToken: withPushToken})
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return nil
	}

	for _, u := range users {
		push := " "
		if u.HasPushToken {
			push = "✉"
		}
		fmt.Fprintf(a.out, "%s %-24s %s\n", push, u.ID, u.DisplayName)
	}
	return nil
}

// UpdateProfile updates the given profile fields.
func (a *UserAdapter) UpdateProfile(ctx context.Context, req primary.UpdateProfileRequest) error {
	if req.DisplayName == "" && req.Goals == "" && req.Diet == "" && req.Responsibilities == "" && req.Finances == "" {
		return fmt.Errorf("must specify at least one profile field")
	}
	if err := a.service.UpdateProfile(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Profile for %s updated\n", req.UserID)
	return nil
}

// SetPushToken registers a push destination; an empty token clears it.
func (a *UserAdapter) SetPushToken(ctx context.Context, userID, token string) error {
	if token == "" {
		if err := a.service.ClearPushToken(ctx, userID); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Push token cleared for %s\n", userID)
		return nil
	}
	if err := a.service.SetPushToken(ctx, userID, token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Push token registered for %s\n", userID)
	return nil
}
