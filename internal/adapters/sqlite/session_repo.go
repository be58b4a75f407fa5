package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
// Sessions live in the memories table.
type SessionRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewSessionRepository creates a new SQLite session repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewSessionRepository(db *sql.DB, logWriter secondary.LogWriter) *SessionRepository {
	return &SessionRepository{db: db, logWriter: logWriter}
}

const sessionSelectCols = "id, user_id, tasks, completed, finished, finished_at, finished_by, completion_score, created_at, updated_at"

// scanSession scans a memories row into a SessionRecord.
func scanSession(scanner interface {
	Scan(dest ...any) error
}) (*secondary.SessionRecord, error) {
	var (
		tasksJSON     string
		completedJSON string
		finishedAt    sql.NullString
		finishedBy    sql.NullString
		score         sql.NullInt64
		createdAt     string
		updatedAt     string
	)

	record := &secondary.SessionRecord{}
	err := scanner.Scan(
		&record.ID, &record.UserID, &tasksJSON, &completedJSON,
		&record.Finished, &finishedAt, &finishedBy, &score, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tasksJSON), &record.Tasks); err != nil {
		return nil, corrupt(record.ID, "tasks", err)
	}
	if err := json.Unmarshal([]byte(completedJSON), &record.Completed); err != nil {
		return nil, corrupt(record.ID, "completed", err)
	}

	record.FinishedBy = finishedBy.String
	if score.Valid {
		s := int(score.Int64)
		record.CompletionScore = &s
	}
	if record.FinishedAt, err = parseNullTime(finishedAt); err != nil {
		return nil, corrupt(record.ID, "finished_at", err)
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, corrupt(record.ID, "created_at", err)
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, corrupt(record.ID, "updated_at", err)
	}

	return record, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	tasks, err := encodeList(session.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	completed, err := encodeList(session.Completed)
	if err != nil {
		return fmt.Errorf("failed to encode completed list: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO memories (id, user_id, tasks, completed, finished, created_at, updated_at) VALUES (?, ?, ?, ?, 0, ?, ?)",
		session.ID, session.UserID, tasks, completed,
		formatTime(session.CreatedAt), formatTime(session.CreatedAt),
	)
	if err != nil {
		return storageErr("create memory", err)
	}

	// Log create operation
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, secondary.AuditMemory, session.ID)
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+sessionSelectCols+" FROM memories WHERE id = ?", id)

	record, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("memory", id)
	}
	if err != nil {
		return nil, readErr("get memory", err)
	}

	return record, nil
}

// List retrieves sessions matching the given filters.
func (r *SessionRepository) List(ctx context.Context, filters secondary.SessionFilters) ([]*secondary.SessionRecord, error) {
	query := "SELECT " + sessionSelectCols + " FROM memories WHERE 1=1"
	args := []any{}

	if filters.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filters.UserID)
	}

	if filters.Finished != nil {
		query += " AND finished = ?"
		args = append(args, *filters.Finished)
	}

	query += " ORDER BY created_at ASC, id ASC"

	return r.query(ctx, "list memories", query, args...)
}

// ListExpired retrieves a user's unfinished sessions created at or before cutoff.
func (r *SessionRepository) ListExpired(ctx context.Context, userID string, cutoff time.Time) ([]*secondary.SessionRecord, error) {
	return r.query(ctx, "list expired memories",
		"SELECT "+sessionSelectCols+" FROM memories WHERE user_id = ? AND finished = 0 AND created_at <= ? ORDER BY created_at ASC, id ASC",
		userID, formatTime(cutoff),
	)
}

func (r *SessionRepository) query(ctx context.Context, op, query string, args ...any) ([]*secondary.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var (
		sessions []*secondary.SessionRecord
		skipped  []error
	)
	for rows.Next() {
		record, err := scanSession(rows)
		var recErr *secondary.RecordError
		if errors.As(err, &recErr) {
			skipped = append(skipped, recErr)
			continue
		}
		if err != nil {
			return nil, storageErr("scan memory", err)
		}
		sessions = append(sessions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}

	return sessions, errors.Join(skipped...)
}

// SetCompleted replaces the completed list of an unfinished session.
func (r *SessionRepository) SetCompleted(ctx context.Context, id string, completed []string, at time.Time) error {
	encoded, err := encodeList(completed)
	if err != nil {
		return fmt.Errorf("failed to encode completed list: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE memories SET completed = ?, updated_at = ? WHERE id = ? AND finished = 0",
		encoded, formatTime(at), id,
	)
	if err != nil {
		return storageErr("update memory", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return r.missOrConflict(ctx, id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, secondary.AuditMemory, id, "completed", "", encoded)
	}

	return nil
}

// MarkFinished finishes a session if it is still unfinished.
func (r *SessionRepository) MarkFinished(ctx context.Context, update secondary.FinishUpdate) (bool, error) {
	stamp := formatTime(update.FinishedAt)
	result, err := r.db.ExecContext(ctx,
		"UPDATE memories SET finished = 1, finished_at = ?, finished_by = ?, completion_score = ?, updated_at = ? WHERE id = ? AND finished = 0",
		stamp, update.FinishedBy, update.Score, stamp, update.ID,
	)
	if err != nil {
		return false, storageErr("finish memory", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		if r.logWriter != nil {
			_ = r.logWriter.LogUpdate(ctx, secondary.AuditMemory, update.ID, "finished", "false", "true")
			_ = r.logWriter.LogUpdate(ctx, secondary.AuditMemory, update.ID, "completion_score", "", strconv.Itoa(update.Score))
		}
		return true, nil
	}

	if err := r.missOrConflict(ctx, update.ID); errors.Is(err, secondary.ErrConflict) {
		return false, nil
	} else {
		return false, err
	}
}

// missOrConflict explains a conditional update that touched no rows.
func (r *SessionRepository) missOrConflict(ctx context.Context, id string) error {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM memories WHERE id = ?", id).Scan(&count)
	if err != nil {
		return storageErr("check memory", err)
	}
	if count == 0 {
		return notFound("memory", id)
	}
	return fmt.Errorf("memory %s is already finished: %w", id, secondary.ErrConflict)
}

// GetNextID returns the next available session ID.
func (r *SessionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM memories",
	).Scan(&maxID)
	if err != nil {
		return "", storageErr("get next memory ID", err)
	}

	return fmt.Sprintf("MEM-%03d", maxID+1), nil
}

// Ensure SessionRepository implements the interface
var _ secondary.SessionRepository = (*SessionRepository)(nil)
