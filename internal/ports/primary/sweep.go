package primary

import (
	"context"
	"time"
)

// SweepService defines the primary port for the session expiry job.
type SweepService interface {
	// RunSweep expires stale sessions for every user with a push destination.
	// Per-session failures are logged and reported, not returned; the error
	// is non-nil only when the user list itself cannot be read.
	RunSweep(ctx context.Context) (*SweepReport, error)
}

// SweepReport summarizes one sweep run.
type SweepReport struct {
	RunID             string         `json:"run_id"`
	StartedAt         time.Time      `json:"started_at"`
	Cutoff            time.Time      `json:"cutoff"`
	UsersScanned      int            `json:"users_scanned"`
	SessionsExpired   int            `json:"sessions_expired"`
	NotificationsSent int            `json:"notifications_sent"`
	DispatchFailures  int            `json:"dispatch_failures"`
	Failures          []SweepFailure `json:"failures,omitempty"`
}

// SweepFailure records one unit of work the sweep could not complete.
type SweepFailure struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error"`
}
