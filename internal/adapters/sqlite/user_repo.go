// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewUserRepository creates a new SQLite user repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewUserRepository(db *sql.DB, logWriter secondary.LogWriter) *UserRepository {
	return &UserRepository{db: db, logWriter: logWriter}
}

const userSelectCols = "id, display_name, goals, diet, responsibilities, finances, push_token, created_at, updated_at"

// scanUser scans a user row into a UserRecord.
func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UserRecord, error) {
	var (
		pushToken sql.NullString
		createdAt string
		updatedAt string
	)

	record := &secondary.UserRecord{}
	err := scanner.Scan(
		&record.ID, &record.DisplayName, &record.Goals, &record.Diet, &record.Responsibilities, &record.Finances,
		&pushToken, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.PushToken = pushToken.String
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, corrupt(record.ID, "created_at", err)
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, corrupt(record.ID, "updated_at", err)
	}

	return record, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	var pushToken sql.NullString
	if user.PushToken != "" {
		pushToken = sql.NullString{String: user.PushToken, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, display_name, goals, diet, responsibilities, finances, push_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.DisplayName, user.Goals, user.Diet, user.Responsibilities, user.Finances,
		pushToken, formatTime(user.CreatedAt), formatTime(user.CreatedAt),
	)
	if err != nil {
		return storageErr("create user", err)
	}

	// Log create operation
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, secondary.AuditUser, user.ID)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userSelectCols+" FROM users WHERE id = ?", id)

	record, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, readErr("get user", err)
	}

	return record, nil
}

// Exists reports whether a user exists.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, storageErr("check user", err)
	}
	return count > 0, nil
}

// List retrieves users matching the given filters.
func (r *UserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	query := "SELECT " + userSelectCols + " FROM users WHERE 1=1"

	if filters.WithPushToken {
		query += " AND push_token IS NOT NULL AND push_token != ''"
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	var (
		users   []*secondary.UserRecord
		skipped []error
	)
	for rows.Next() {
		record, err := scanUser(rows)
		var recErr *secondary.RecordError
		if errors.As(err, &recErr) {
			skipped = append(skipped, recErr)
			continue
		}
		if err != nil {
			return nil, storageErr("scan user", err)
		}
		users = append(users, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list users", err)
	}

	return users, errors.Join(skipped...)
}

// UpdateProfile overwrites the non-empty profile fields of the record.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *secondary.UserRecord) error {
	query := "UPDATE users SET updated_at = ?"
	args := []any{formatTime(user.UpdatedAt)}

	fields := []struct {
		column string
		value  string
	}{
		{"display_name", user.DisplayName},
		{"goals", user.Goals},
		{"diet", user.Diet},
		{"responsibilities", user.Responsibilities},
		{"finances", user.Finances},
	}
	for _, f := range fields {
		if f.value != "" {
			query += ", " + f.column + " = ?"
			args = append(args, f.value)
		}
	}

	query += " WHERE id = ?"
	args = append(args, user.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storageErr("update user", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("user", user.ID)
	}

	if r.logWriter != nil {
		for _, f := range fields {
			if f.value != "" {
				_ = r.logWriter.LogUpdate(ctx, secondary.AuditUser, user.ID, f.column, "", f.value)
			}
		}
	}

	return nil
}

// SetPushToken sets or clears the user's push destination.
func (r *UserRepository) SetPushToken(ctx context.Context, id, token string, at time.Time) error {
	var pushToken sql.NullString
	if token != "" {
		pushToken = sql.NullString{String: token, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET push_token = ?, updated_at = ? WHERE id = ?",
		pushToken, formatTime(at), id,
	)
	if err != nil {
		return storageErr("set push token", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("user", id)
	}

	// The token itself stays out of the audit trail
	if r.logWriter != nil {
		change := "set"
		if token == "" {
			change = "cleared"
		}
		_ = r.logWriter.LogUpdate(ctx, secondary.AuditUser, id, "push_token", "", change)
	}

	return nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
