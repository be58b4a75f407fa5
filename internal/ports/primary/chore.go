package primary

import (
	"context"
	"time"
)

// ChoreService defines the primary port for recurring chore operations.
type ChoreService interface {
	// CreateChore creates a recurring chore for a user.
	CreateChore(ctx context.Context, req CreateChoreRequest) (*Chore, error)

	// GetChore retrieves a chore by ID.
	GetChore(ctx context.Context, choreID string) (*Chore, error)

	// ListChores lists a user's chores in creation order.
	ListChores(ctx context.Context, userID string) ([]*Chore, error)

	// NextChore returns the user's most overdue chore, or nil if the user has none.
	NextChore(ctx context.Context, userID string) (*DueChore, error)

	// CompleteChore stamps the chore as completed now, then returns the
	// owner's next chore computed over the refreshed set.
	CompleteChore(ctx context.Context, choreID string) (*DueChore, error)

	// DeleteChore removes a chore.
	DeleteChore(ctx context.Context, choreID string) error
}

// CreateChoreRequest contains parameters for creating a chore.
type CreateChoreRequest struct {
	UserID       string
	Name         string
	IntervalDays int
}

// Chore represents a chore at the port boundary.
type Chore struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Name            string     `json:"name"`
	IntervalDays    int        `json:"interval_days"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DueChore is a chore with its computed next due time.
type DueChore struct {
	Chore     *Chore    `json:"chore"`
	NextDueAt time.Time `json:"next_due_at"`
	Overdue   bool      `json:"overdue"`
}
