package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// timeLayout is fixed-width and always UTC, so TEXT comparison in SQL
// orders the same way as the instants it encodes.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// storageErr wraps a driver failure so callers can match ErrStorageUnavailable.
func storageErr(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, secondary.ErrStorageUnavailable, err)
}

// readErr classifies a row read failure: undecodable data stays a corrupt
// record, anything else came from the driver.
func readErr(op string, err error) error {
	if errors.Is(err, secondary.ErrCorruptRecord) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return storageErr(op, err)
}

// corrupt reports a column of row id that holds undecodable data.
func corrupt(id, column string, err error) error {
	return &secondary.RecordError{
		ID:  id,
		Err: fmt.Errorf("invalid %s: %w: %w", column, secondary.ErrCorruptRecord, err),
	}
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s %w", entity, id, secondary.ErrNotFound)
}
