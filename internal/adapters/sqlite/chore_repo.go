package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// ChoreRepository implements secondary.ChoreRepository with SQLite.
type ChoreRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewChoreRepository creates a new SQLite chore repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewChoreRepository(db *sql.DB, logWriter secondary.LogWriter) *ChoreRepository {
	return &ChoreRepository{db: db, logWriter: logWriter}
}

const choreSelectCols = "id, user_id, name, interval_days, last_completed_at, created_at, updated_at"

// scanChore scans a chore row into a ChoreRecord.
func scanChore(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ChoreRecord, error) {
	var (
		lastCompletedAt sql.NullString
		createdAt       string
		updatedAt       string
	)

	record := &secondary.ChoreRecord{}
	err := scanner.Scan(
		&record.ID, &record.UserID, &record.Name, &record.IntervalDays,
		&lastCompletedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if record.LastCompletedAt, err = parseNullTime(lastCompletedAt); err != nil {
		return nil, corrupt(record.ID, "last_completed_at", err)
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, corrupt(record.ID, "created_at", err)
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, corrupt(record.ID, "updated_at", err)
	}

	return record, nil
}

// Create persists a new chore.
func (r *ChoreRepository) Create(ctx context.Context, chore *secondary.ChoreRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chores (id, user_id, name, interval_days, last_completed_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		chore.ID, chore.UserID, chore.Name, chore.IntervalDays,
		nullTime(chore.LastCompletedAt), formatTime(chore.CreatedAt), formatTime(chore.CreatedAt),
	)
	if err != nil {
		return storageErr("create chore", err)
	}

	// Log create operation
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, secondary.AuditChore, chore.ID)
	}

	return nil
}

// GetByID retrieves a chore by its ID.
func (r *ChoreRepository) GetByID(ctx context.Context, id string) (*secondary.ChoreRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+choreSelectCols+" FROM chores WHERE id = ?", id)

	record, err := scanChore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("chore", id)
	}
	if err != nil {
		return nil, readErr("get chore", err)
	}

	return record, nil
}

// ListByUser retrieves a user's chores in creation order.
func (r *ChoreRepository) ListByUser(ctx context.Context, userID string) ([]*secondary.ChoreRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+choreSelectCols+" FROM chores WHERE user_id = ? ORDER BY created_at ASC, id ASC",
		userID,
	)
	if err != nil {
		return nil, storageErr("list chores", err)
	}
	defer rows.Close()

	var chores []*secondary.ChoreRecord
	for rows.Next() {
		record, err := scanChore(rows)
		if err != nil {
			return nil, readErr("scan chore", err)
		}
		chores = append(chores, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list chores", err)
	}

	return chores, nil
}

// SetLastCompleted stamps the chore's last completion time.
func (r *ChoreRepository) SetLastCompleted(ctx context.Context, id string, at time.Time) error {
	stamp := formatTime(at)
	result, err := r.db.ExecContext(ctx,
		"UPDATE chores SET last_completed_at = ?, updated_at = ? WHERE id = ?",
		stamp, stamp, id,
	)
	if err != nil {
		return storageErr("complete chore", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("chore", id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, secondary.AuditChore, id, "last_completed_at", "", stamp)
	}

	return nil
}

// Delete removes a chore from persistence.
func (r *ChoreRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM chores WHERE id = ?", id)
	if err != nil {
		return storageErr("delete chore", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("chore", id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, secondary.AuditChore, id)
	}

	return nil
}

// GetNextID returns the next available chore ID.
func (r *ChoreRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 7) AS INTEGER)), 0) FROM chores",
	).Scan(&maxID)
	if err != nil {
		return "", storageErr("get next chore ID", err)
	}

	return fmt.Sprintf("CHORE-%03d", maxID+1), nil
}

// Ensure ChoreRepository implements the interface
var _ secondary.ChoreRepository = (*ChoreRepository)(nil)
