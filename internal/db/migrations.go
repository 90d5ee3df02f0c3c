package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "backfill_note_action_status",
		Up:      migrationV1,
	},
}

// migrationV1 normalizes legacy note rows that predate the processing
// status field: anything NULL or empty becomes 'unprocessed' so the status
// is a required enum from here on and no read site needs an absence check.
func migrationV1(conn *sql.DB) error {
	_, err := conn.Exec(`UPDATE notes SET action_status = 'unprocessed' WHERE action_status IS NULL OR action_status = ''`)
	if err != nil {
		return fmt.Errorf("failed to backfill action_status: %w", err)
	}
	return nil
}

// RunMigrations applies all pending migrations in order.
func RunMigrations(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		if err := migration.Up(conn); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
