package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/minutes/internal/models"
)

// MeetingRepository implements secondary.MeetingRepository with SQLite.
type MeetingRepository struct {
	db *sql.DB
}

// NewMeetingRepository creates a new SQLite meeting repository.
func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create persists a new meeting.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	mtype := meeting.Type
	if mtype == "" {
		mtype = models.MeetingAdhoc
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO meetings (id, name, type) VALUES (?, ?, ?)",
		meeting.ID, meeting.Name, mtype,
	)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// GetByID retrieves a meeting by its ID.
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	var (
		meeting   models.Meeting
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, type, created_at FROM meetings WHERE id = ?", id,
	).Scan(&meeting.ID, &meeting.Name, &meeting.Type, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("meeting %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	meeting.CreatedAt = createdAt
	return &meeting, nil
}

// List retrieves all meetings ordered by creation time.
func (r *MeetingRepository) List(ctx context.Context) ([]*models.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, type, created_at FROM meetings ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*models.Meeting
	for rows.Next() {
		var (
			meeting   models.Meeting
			createdAt time.Time
		)
		if err := rows.Scan(&meeting.ID, &meeting.Name, &meeting.Type, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meeting.CreatedAt = createdAt
		meetings = append(meetings, &meeting)
	}
	return meetings, rows.Err()
}

// Delete removes a meeting; batches, notes, agenda and action items cascade.
func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meeting %s not found", id)
	}
	return nil
}

// GetNextID generates the next sequential meeting ID (MEET-001, ...).
func (r *MeetingRepository) GetNextID(ctx context.Context) (string, error) {
	return nextPrefixedID(ctx, r.db, "meetings", "MEET")
}

// nextPrefixedID scans the table for the highest PREFIX-NNN id and returns
// the next one.
func nextPrefixedID(ctx context.Context, db *sql.DB, table, prefix string) (string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT id FROM %s WHERE id LIKE ?", table), prefix+"-%")
	if err != nil {
		return "", fmt.Errorf("failed to scan %s ids: %w", table, err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan id: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix+"-"))
		if err == nil && n > max {
			max = n
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate ids: %w", err)
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1), nil
}
