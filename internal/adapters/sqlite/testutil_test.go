// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/db"
)

// testLayout matches the adapter's on-disk timestamp layout.
const testLayout = "2006-01-02T15:04:05.000000000Z07:00"

// baseTime is the fixed "now" used across repository tests.
var baseTime = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id, pushToken string) string {
	t.Helper()
	if id == "" {
		id = "npub-alice"
	}
	var token sql.NullString
	if pushToken != "" {
		token = sql.NullString{String: pushToken, Valid: true}
	}
	stamp := baseTime.Format(testLayout)
	_, err := db.Exec(
		"INSERT INTO users (id, display_name, push_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		id, "Test User", token, stamp, stamp,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedSession inserts an unfinished session created at createdAt and returns its ID.
func seedSession(t *testing.T, db *sql.DB, id, userID string, createdAt time.Time) string {
	t.Helper()
	if id == "" {
		id = "MEM-001"
	}
	if userID == "" {
		userID = "npub-alice"
	}
	stamp := createdAt.UTC().Format(testLayout)
	_, err := db.Exec(
		`INSERT INTO memories (id, user_id, tasks, completed, finished, created_at, updated_at) VALUES (?, ?, '["a","b","c","d"]', '["a","b"]', 0, ?, ?)`,
		id, userID, stamp, stamp,
	)
	if err != nil {
		t.Fatalf("failed to seed memory: %v", err)
	}
	return id
}
