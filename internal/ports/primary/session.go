package primary

import (
	"context"
	"time"
)

// SessionService defines the primary port for task session ("memory") operations.
type SessionService interface {
	// StartSession creates a new active task list for a user.
	StartSession(ctx context.Context, req StartSessionRequest) (*Session, error)

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// ListSessions lists sessions with optional filters, oldest first.
	ListSessions(ctx context.Context, filters SessionFilters) ([]*Session, error)

	// ToggleTask flips a task's completion. Completing the last task
	// finishes the session.
	ToggleTask(ctx context.Context, req ToggleTaskRequest) (*Session, error)
}

// StartSessionRequest contains parameters for starting a session.
type StartSessionRequest struct {
	UserID string
	Tasks  []string
}

// ToggleTaskRequest identifies a task within a session.
type ToggleTaskRequest struct {
	SessionID string
	Task      string
}

// Session represents a task session at the port boundary.
type Session struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Tasks           []string   `json:"tasks"`
	Completed       []string   `json:"completed"`
	Status          string     `json:"status"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	FinishedBy      string     `json:"finished_by,omitempty"`
	CompletionScore *int       `json:"completion_score,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SessionFilters contains filter options for listing sessions.
type SessionFilters struct {
	UserID string
	Status string // "", SessionStatusActive or SessionStatusFinished
}

// Session status constants.
const (
	SessionStatusActive   = "active"
	SessionStatusFinished = "finished"
)
