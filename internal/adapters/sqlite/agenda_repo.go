package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/minutes/internal/models"
)

// AgendaRepository implements secondary.AgendaRepository with SQLite.
type AgendaRepository struct {
	db *sql.DB
}

// NewAgendaRepository creates a new SQLite agenda repository.
func NewAgendaRepository(db *sql.DB) *AgendaRepository {
	return &AgendaRepository{db: db}
}

// Create persists a new agenda item.
func (r *AgendaRepository) Create(ctx context.Context, item *models.AgendaItem) error {
	status := item.Status
	if status == "" {
		status = models.AgendaOpen
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO agenda_items (id, meeting_id, text, status) VALUES (?, ?, ?, ?)",
		item.ID, item.MeetingID, item.Text, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to create agenda item: %w", err)
	}
	return nil
}

// List retrieves a meeting's agenda items, oldest first.
func (r *AgendaRepository) List(ctx context.Context, meetingID string) ([]*models.AgendaItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, meeting_id, text, status, created_at, closed_at FROM agenda_items WHERE meeting_id = ? ORDER BY created_at",
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}
	defer rows.Close()

	var items []*models.AgendaItem
	for rows.Next() {
		var (
			item      models.AgendaItem
			status    string
			createdAt time.Time
			closedAt  sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.MeetingID, &item.Text, &status, &createdAt, &closedAt); err != nil {
			return nil, fmt.Errorf("failed to scan agenda item: %w", err)
		}
		item.Status = models.AgendaStatus(status)
		item.CreatedAt = createdAt
		if closedAt.Valid {
			t := closedAt.Time
			item.ClosedAt = &t
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Close marks an agenda item closed.
func (r *AgendaRepository) Close(ctx context.Context, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE agenda_items SET status = 'closed', closed_at = ? WHERE id = ?", now, id)
	if err != nil {
		return fmt.Errorf("failed to close agenda item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check close result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("agenda item %s not found", id)
	}
	return nil
}

// GetNextID generates the next sequential agenda item ID (AGD-001, ...).
func (r *AgendaRepository) GetNextID(ctx context.Context) (string, error) {
	return nextPrefixedID(ctx, r.db, "agenda_items", "AGD")
}
