// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/minutes/internal/models"
)

const dayFormat = "2006-01-02"

// NoteRepository implements secondary.NoteRepository with SQLite.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new SQLite note repository.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// CreateBatch persists a new empty-or-seeded batch and its notes.
func (r *NoteRepository) CreateBatch(ctx context.Context, batch *models.NoteBatch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO note_batches (id, meeting_id, day) VALUES (?, ?, ?)",
		batch.ID, batch.MeetingID, batch.Date.Format(dayFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	if err := insertNotes(ctx, tx, batch.ID, batch.Notes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// GetBatchByDate retrieves the batch for a meeting on a calendar day.
// Returns nil when no batch exists for that day.
func (r *NoteRepository) GetBatchByDate(ctx context.Context, meetingID string, day time.Time) (*models.NoteBatch, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, meeting_id, day, created_at FROM note_batches WHERE meeting_id = ? AND day = ?",
		meetingID, day.Format(dayFormat),
	)

	batch, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	if err := r.loadNotes(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// ListBatches retrieves all batches for a meeting, newest day first.
func (r *NoteRepository) ListBatches(ctx context.Context, meetingID string) ([]*models.NoteBatch, error) {
	return r.queryBatches(ctx,
		"SELECT id, meeting_id, day, created_at FROM note_batches WHERE meeting_id = ? ORDER BY day DESC",
		meetingID,
	)
}

// ListAllBatches retrieves every batch across all meetings.
func (r *NoteRepository) ListAllBatches(ctx context.Context) ([]*models.NoteBatch, error) {
	return r.queryBatches(ctx,
		"SELECT id, meeting_id, day, created_at FROM note_batches ORDER BY meeting_id, day DESC",
	)
}

// ReplaceNotes overwrites the full note slice of a batch in one
// transaction (copy-on-write of the whole batch).
func (r *NoteRepository) ReplaceNotes(ctx context.Context, batchID string, notes []models.Note) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE batch_id = ?", batchID); err != nil {
		return fmt.Errorf("failed to clear batch notes: %w", err)
	}
	if err := insertNotes(ctx, tx, batchID, notes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notes: %w", err)
	}
	return nil
}

func insertNotes(ctx context.Context, tx *sql.Tx, batchID string, notes []models.Note) error {
	for i, note := range notes {
		status := note.Status
		if status == "" {
			status = models.NoteUnprocessed
		}
		var updatedAt sql.NullTime
		if note.UpdatedAt != nil {
			updatedAt = sql.NullTime{Time: *note.UpdatedAt, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO notes (batch_id, position, text, created_at, updated_at, action_status) VALUES (?, ?, ?, ?, ?, ?)",
			batchID, i, note.Text, note.CreatedAt, updatedAt, string(status),
		)
		if err != nil {
			return fmt.Errorf("failed to insert note %d: %w", i, err)
		}
	}
	return nil
}

func (r *NoteRepository) queryBatches(ctx context.Context, query string, args ...any) ([]*models.NoteBatch, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.NoteBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}

	for _, batch := range batches {
		if err := r.loadNotes(ctx, batch); err != nil {
			return nil, err
		}
	}
	return batches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*models.NoteBatch, error) {
	var batch models.NoteBatch
	// day is declared DATE, so the driver hands it back as a time.Time.
	if err := row.Scan(&batch.ID, &batch.MeetingID, &batch.Date, &batch.CreatedAt); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *NoteRepository) loadNotes(ctx context.Context, batch *models.NoteBatch) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT text, created_at, updated_at, action_status FROM notes WHERE batch_id = ? ORDER BY position",
		batch.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			note      models.Note
			updatedAt sql.NullTime
			status    string
		)
		if err := rows.Scan(&note.Text, &note.CreatedAt, &updatedAt, &status); err != nil {
			return fmt.Errorf("failed to scan note: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			note.UpdatedAt = &t
		}
		note.Status = models.NoteStatus(status)
		batch.Notes = append(batch.Notes, note)
	}
	return rows.Err()
}
