package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/minutes/internal/models"
)

// LedgerRepository implements secondary.LedgerRepository with SQLite.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new SQLite extraction status repository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Get retrieves the extraction status record for a meeting. Returns nil
// when the meeting was never extracted.
func (r *LedgerRepository) Get(ctx context.Context, meetingID string) (*models.ExtractionStatus, error) {
	var (
		record          models.ExtractionStatus
		status          string
		lastExtractedAt sql.NullTime
		processedJSON   string
		lastError       sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT meeting_id, status, last_extracted_at, processed_note_ids, retry_count, last_error FROM extraction_status WHERE meeting_id = ?",
		meetingID,
	).Scan(&record.MeetingID, &status, &lastExtractedAt, &processedJSON, &record.RetryCount, &lastError)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction status: %w", err)
	}

	record.Status = models.ExtractionOutcome(status)
	if lastExtractedAt.Valid {
		t := lastExtractedAt.Time
		record.LastExtractedAt = &t
	}
	record.LastError = lastError.String
	if err := json.Unmarshal([]byte(processedJSON), &record.ProcessedNoteIDs); err != nil {
		return nil, fmt.Errorf("invalid processed_note_ids for %s: %w", meetingID, err)
	}
	return &record, nil
}

// Put upserts the extraction status record for a meeting.
func (r *LedgerRepository) Put(ctx context.Context, status *models.ExtractionStatus) error {
	ids := status.ProcessedNoteIDs
	if ids == nil {
		ids = []string{}
	}
	processedJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode processed_note_ids: %w", err)
	}

	var lastExtractedAt sql.NullTime
	if status.LastExtractedAt != nil {
		lastExtractedAt = sql.NullTime{Time: *status.LastExtractedAt, Valid: true}
	}
	var lastError sql.NullString
	if status.LastError != "" {
		lastError = sql.NullString{String: status.LastError, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO extraction_status (meeting_id, status, last_extracted_at, processed_note_ids, retry_count, last_error)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(meeting_id) DO UPDATE SET
			status = excluded.status,
			last_extracted_at = excluded.last_extracted_at,
			processed_note_ids = excluded.processed_note_ids,
			retry_count = excluded.retry_count,
			last_error = excluded.last_error`,
		status.MeetingID, string(status.Status), lastExtractedAt, string(processedJSON), status.RetryCount, lastError,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert extraction status: %w", err)
	}
	return nil
}

// Delete removes the record for a meeting (explicit reset).
func (r *LedgerRepository) Delete(ctx context.Context, meetingID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM extraction_status WHERE meeting_id = ?", meetingID); err != nil {
		return fmt.Errorf("failed to delete extraction status: %w", err)
	}
	return nil
}

// PendingRepository implements secondary.PendingRepository with SQLite.
type PendingRepository struct {
	db *sql.DB
}

// NewPendingRepository creates a new SQLite pending-extraction repository.
func NewPendingRepository(db *sql.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

// Put upserts the pending marker for a meeting.
func (r *PendingRepository) Put(ctx context.Context, meetingID string, lastNoteTime time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_extractions (meeting_id, last_note_time_ms) VALUES (?, ?)
		ON CONFLICT(meeting_id) DO UPDATE SET last_note_time_ms = excluded.last_note_time_ms`,
		meetingID, lastNoteTime.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save pending extraction: %w", err)
	}
	return nil
}

// Get retrieves the pending marker for a meeting, or nil when none exists.
func (r *PendingRepository) Get(ctx context.Context, meetingID string) (*models.PendingExtraction, error) {
	var ms int64
	err := r.db.QueryRowContext(ctx,
		"SELECT last_note_time_ms FROM pending_extractions WHERE meeting_id = ?", meetingID,
	).Scan(&ms)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending extraction: %w", err)
	}
	return &models.PendingExtraction{MeetingID: meetingID, LastNoteTime: time.UnixMilli(ms)}, nil
}

// List retrieves all pending markers.
func (r *PendingRepository) List(ctx context.Context) ([]*models.PendingExtraction, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT meeting_id, last_note_time_ms FROM pending_extractions")
	if err != nil {
		return nil, fmt.Errorf("failed to list pending extractions: %w", err)
	}
	defer rows.Close()

	var pending []*models.PendingExtraction
	for rows.Next() {
		var (
			meetingID string
			ms        int64
		)
		if err := rows.Scan(&meetingID, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan pending extraction: %w", err)
		}
		pending = append(pending, &models.PendingExtraction{MeetingID: meetingID, LastNoteTime: time.UnixMilli(ms)})
	}
	return pending, rows.Err()
}

// Delete removes the pending marker for a meeting.
func (r *PendingRepository) Delete(ctx context.Context, meetingID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM pending_extractions WHERE meeting_id = ?", meetingID); err != nil {
		return fmt.Errorf("failed to delete pending extraction: %w", err)
	}
	return nil
}
