// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/minutes/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// Foreign keys are enabled to match production cascade behavior.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedMeeting inserts a test meeting and returns its ID.
func seedMeeting(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "MEET-001"
	}
	if name == "" {
		name = "Platform sync"
	}
	_, err := db.Exec("INSERT INTO meetings (id, name, type) VALUES (?, ?, 'recurring')", id, name)
	if err != nil {
		t.Fatalf("failed to seed meeting: %v", err)
	}
	return id
}

// seedBatch inserts a test note batch and returns its ID.
func seedBatch(t *testing.T, db *sql.DB, id, meetingID, day string) string {
	t.Helper()
	if id == "" {
		id = "batch-1"
	}
	if meetingID == "" {
		meetingID = "MEET-001"
	}
	if day == "" {
		day = "2025-06-01"
	}
	_, err := db.Exec("INSERT INTO note_batches (id, meeting_id, day) VALUES (?, ?, ?)", id, meetingID, day)
	if err != nil {
		t.Fatalf("failed to seed batch: %v", err)
	}
	return id
}

// testTime returns a fixed UTC timestamp offset by the given seconds.
func testTime(offsetSeconds int) time.Time {
	return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(offsetSeconds) * time.Second)
}
