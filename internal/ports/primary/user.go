package primary

import (
	"context"
	"time"
)

// UserService defines the primary port for user profile operations.
type UserService interface {
	// RegisterUser creates a profile for a locally held public key.
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// ListUsers lists users, optionally only those with a push destination.
	ListUsers(ctx context.Context, filters UserFilters) ([]*User, error)

	// UpdateProfile updates the non-empty profile fields.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error

	// SetPushToken registers the user's push destination.
	SetPushToken(ctx context.Context, userID, token string) error

	// ClearPushToken removes the user's push destination.
	ClearPushToken(ctx context.Context, userID string) error
}

// RegisterUserRequest contains parameters for registering a user.
type RegisterUserRequest struct {
	UserID      string
	DisplayName string
}

// UpdateProfileRequest contains profile fields; empty fields are left untouched.
type UpdateProfileRequest struct {
	UserID           string
	DisplayName      string
	Goals            string
	Diet             string
	Responsibilities string
	Finances         string
}

// User represents a user at the port boundary.
type User struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"display_name"`
	Goals            string    `json:"goals,omitempty"`
	Diet             string    `json:"diet,omitempty"`
	Responsibilities string    `json:"responsibilities,omitempty"`
	Finances         string    `json:"finances,omitempty"`
	HasPushToken     bool      `json:"has_push_token"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserFilters contains filter options for listing users.
type UserFilters struct {
	WithPushToken bool
}
