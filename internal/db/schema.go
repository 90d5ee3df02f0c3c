package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. Tests load it
// via GetSchemaSQL() so repository code and test databases cannot drift.
// When changing columns, add a migration in migrations.go and update this
// constant to match the post-migration state.
const SchemaSQL = `
-- Meeting series
CREATE TABLE IF NOT EXISTS meetings (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('1:1', 'recurring', 'adhoc')) DEFAULT 'adhoc',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One batch of notes per meeting per calendar day
CREATE TABLE IF NOT EXISTS note_batches (
	id TEXT PRIMARY KEY,
	meeting_id TEXT NOT NULL,
	day DATE NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE,
	UNIQUE(meeting_id, day)
);

-- Notes have no surrogate key; they are positional rows within a batch and
-- are matched by (text, created_at)
CREATE TABLE IF NOT EXISTS notes (
	batch_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME,
	action_status TEXT NOT NULL CHECK(action_status IN ('unprocessed', 'in_progress', 'completed', 'failed')) DEFAULT 'unprocessed',
	PRIMARY KEY (batch_id, position),
	FOREIGN KEY (batch_id) REFERENCES note_batches(id) ON DELETE CASCADE
);

-- Action items, deduplicated by exact text within a meeting
CREATE TABLE IF NOT EXISTS action_items (
	id TEXT PRIMARY KEY,
	meeting_id TEXT,
	batch_id TEXT,
	text TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('open', 'closed')) DEFAULT 'open',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	closed_at DATETIME,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

-- Standing agenda items per meeting
CREATE TABLE IF NOT EXISTS agenda_items (
	id TEXT PRIMARY KEY,
	meeting_id TEXT NOT NULL,
	text TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('open', 'closed')) DEFAULT 'open',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	closed_at DATETIME,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

-- Extraction status ledger, one row per meeting
CREATE TABLE IF NOT EXISTS extraction_status (
	meeting_id TEXT PRIMARY KEY,
	status TEXT NOT NULL CHECK(status IN ('completed', 'failed')),
	last_extracted_at DATETIME,
	processed_note_ids TEXT NOT NULL DEFAULT '[]',
	retry_count INTEGER NOT NULL DEFAULT 0,
	last_error TEXT,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

-- Pending-extraction markers for debounce recovery across sessions
CREATE TABLE IF NOT EXISTS pending_extractions (
	meeting_id TEXT PRIMARY KEY,
	last_note_time_ms INTEGER NOT NULL,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_note_batches_meeting ON note_batches(meeting_id);
CREATE INDEX IF NOT EXISTS idx_action_items_meeting ON action_items(meeting_id);
CREATE INDEX IF NOT EXISTS idx_agenda_items_meeting ON agenda_items(meeting_id);
`

// InitSchema creates the schema on a fresh database and applies pending
// migrations on an existing one.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := RunMigrations(conn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema for test databases.
func GetSchemaSQL() string {
	return SchemaSQL
}
