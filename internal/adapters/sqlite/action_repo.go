package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/minutes/internal/models"
)

// ActionRepository implements secondary.ActionRepository with SQLite.
type ActionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new SQLite action item repository.
func NewActionRepository(db *sql.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// InsertUnique adds an action item unless one with identical text already
// exists for the same meeting. The existence check and insert run in one
// transaction so duplicate triggers cannot race a double insert.
func (r *ActionRepository) InsertUnique(ctx context.Context, item *models.ActionItem) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var meetingID, batchID sql.NullString
	if item.MeetingID != "" {
		meetingID = sql.NullString{String: item.MeetingID, Valid: true}
	}
	if item.BatchID != "" {
		batchID = sql.NullString{String: item.BatchID, Valid: true}
	}

	// IS matches the NULL meeting_id of unowned items, which = never would.
	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM action_items WHERE meeting_id IS ? AND text = ?",
		meetingID, item.Text,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check existing actions: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	status := item.Status
	if status == "" {
		status = models.ActionOpen
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO action_items (id, meeting_id, batch_id, text, status) VALUES (?, ?, ?, ?, ?)",
		item.ID, meetingID, batchID, item.Text, string(status),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert action item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit action item: %w", err)
	}
	return true, nil
}

// ListByMeeting retrieves a meeting's action items, newest first. filter
// may be empty for all statuses.
func (r *ActionRepository) ListByMeeting(ctx context.Context, meetingID string, filter models.ActionStatus) ([]*models.ActionItem, error) {
	query := "SELECT id, meeting_id, batch_id, text, status, created_at, closed_at FROM action_items WHERE meeting_id = ?"
	args := []any{meetingID}
	if filter != "" {
		query += " AND status = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY created_at DESC"
	return r.queryActions(ctx, query, args...)
}

// ListAll retrieves action items across all meetings, newest first.
func (r *ActionRepository) ListAll(ctx context.Context, filter models.ActionStatus) ([]*models.ActionItem, error) {
	query := "SELECT id, meeting_id, batch_id, text, status, created_at, closed_at FROM action_items"
	args := []any{}
	if filter != "" {
		query += " WHERE status = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY created_at DESC"
	return r.queryActions(ctx, query, args...)
}

// Toggle flips an action item between open and closed.
func (r *ActionRepository) Toggle(ctx context.Context, id string, now time.Time) (*models.ActionItem, error) {
	item, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status == models.ActionOpen {
		_, err = r.db.ExecContext(ctx,
			"UPDATE action_items SET status = 'closed', closed_at = ? WHERE id = ?", now, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			"UPDATE action_items SET status = 'open', closed_at = NULL WHERE id = ?", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle action item: %w", err)
	}

	return r.getByID(ctx, id)
}

// GetNextID generates the next sequential action item ID (ACT-001, ...).
func (r *ActionRepository) GetNextID(ctx context.Context) (string, error) {
	return nextPrefixedID(ctx, r.db, "action_items", "ACT")
}

func (r *ActionRepository) getByID(ctx context.Context, id string) (*models.ActionItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, meeting_id, batch_id, text, status, created_at, closed_at FROM action_items WHERE id = ?", id)
	item, err := scanAction(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("action item %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get action item: %w", err)
	}
	return item, nil
}

func (r *ActionRepository) queryActions(ctx context.Context, query string, args ...any) ([]*models.ActionItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	defer rows.Close()

	var items []*models.ActionItem
	for rows.Next() {
		item, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanAction(row rowScanner) (*models.ActionItem, error) {
	var (
		item      models.ActionItem
		meetingID sql.NullString
		batchID   sql.NullString
		status    string
		createdAt time.Time
		closedAt  sql.NullTime
	)
	if err := row.Scan(&item.ID, &meetingID, &batchID, &item.Text, &status, &createdAt, &closedAt); err != nil {
		return nil, err
	}
	item.MeetingID = meetingID.String
	item.BatchID = batchID.String
	item.Status = models.ActionStatus(status)
	item.CreatedAt = createdAt
	if closedAt.Valid {
		t := closedAt.Time
		item.ClosedAt = &t
	}
	return &item, nil
}
