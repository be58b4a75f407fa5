// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by ID (public key).
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// Exists reports whether a user exists.
	Exists(ctx context.Context, id string) (bool, error)

	// List retrieves users matching the given filters, ordered by ID.
	// Undecodable rows are skipped: the decodable records are returned
	// together with an error joining one *RecordError per skipped row.
	List(ctx context.Context, filters UserFilters) ([]*UserRecord, error)

	// UpdateProfile overwrites the non-empty profile fields of the record.
	UpdateProfile(ctx context.Context, user *UserRecord) error

	// SetPushToken sets the push destination; an empty token clears it.
	SetPushToken(ctx context.Context, id, token string, at time.Time) error
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID               string
	DisplayName      string
	Goals            string
	Diet             string
	Responsibilities string
	Finances         string
	PushToken        string // Empty string means null
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserFilters contains filter options for querying users.
type UserFilters struct {
	WithPushToken bool
}

// ChoreRepository defines the secondary port for chore persistence.
type ChoreRepository interface {
	// Create persists a new chore.
	Create(ctx context.Context, chore *ChoreRecord) error

	// GetByID retrieves a chore by its ID.
	GetByID(ctx context.Context, id string) (*ChoreRecord, error)

	// ListByUser retrieves a user's chores in creation order.
	ListByUser(ctx context.Context, userID string) ([]*ChoreRecord, error)

	// SetLastCompleted stamps the chore's last completion time.
	SetLastCompleted(ctx context.Context, id string, at time.Time) error

	// Delete removes a chore from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available chore ID.
	GetNextID(ctx context.Context) (string, error)
}

// ChoreRecord represents a chore as stored in persistence.
type ChoreRecord struct {
	ID              string
	UserID          string
	Name            string
	IntervalDays    int
	LastCompletedAt *time.Time // nil means never completed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionRepository defines the secondary port for task session ("memory") persistence.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *SessionRecord) error

	// GetByID retrieves a session by its ID.
	GetByID(ctx context.Context, id string) (*SessionRecord, error)

	// List retrieves sessions matching the given filters, oldest first.
	// Rows that cannot be decoded are skipped: the decodable records are
	// returned together with an error joining one *RecordError per skipped row.
	List(ctx context.Context, filters SessionFilters) ([]*SessionRecord, error)

	// ListExpired retrieves a user's unfinished sessions created at or before
	// cutoff. Undecodable rows are skipped as in List.
	ListExpired(ctx context.Context, userID string, cutoff time.Time) ([]*SessionRecord, error)

	// SetCompleted replaces the completed list of an unfinished session.
	SetCompleted(ctx context.Context, id string, completed []string, at time.Time) error

	// MarkFinished finishes a session if it is still unfinished.
	// Returns false when the session was already finished (no change made).
	MarkFinished(ctx context.Context, update FinishUpdate) (bool, error)

	// GetNextID returns the next available session ID.
	GetNextID(ctx context.Context) (string, error)
}

// SessionRecord represents a task session as stored in persistence.
type SessionRecord struct {
	ID              string
	UserID          string
	Tasks           []string
	Completed       []string
	Finished        bool
	FinishedAt      *time.Time
	FinishedBy      string // "user" or "sweep"; empty while active
	CompletionScore *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionFilters contains filter options for querying sessions.
type SessionFilters struct {
	UserID   string
	Finished *bool // nil means any
}

// FinishUpdate carries the fields written when a session finishes.
type FinishUpdate struct {
	ID         string
	FinishedAt time.Time
	Score      int
	FinishedBy string
}

// ActivityLogRepository defines the secondary port for the audit trail.
type ActivityLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, entry *ActivityLogRecord) error

	// ListByEntity retrieves entries for one entity, oldest first.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*ActivityLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)
}

// ActivityLogRecord represents an audit log entry as stored in persistence.
type ActivityLogRecord struct {
	ID         string
	ActorID    string
	EntityType string // "user", "chore", "memory"
	EntityID   string
	Action     string // "create", "update", "delete"
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}
