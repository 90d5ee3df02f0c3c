// Package secondary defines the driven ports: contracts the application
// core requires from storage, the remote extraction service, the license
// gate and the environment. Adapters implement these interfaces.
package secondary

import (
	"context"
	"time"

	"github.com/example/minutes/internal/models"
)

// MeetingRepository persists meeting series.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	List(ctx context.Context) ([]*models.Meeting, error)
	// Delete removes the meeting and cascades batches, notes, agenda and
	// action items.
	Delete(ctx context.Context, id string) error
	GetNextID(ctx context.Context) (string, error)
}

// NoteRepository persists note batches. Notes live inside their batch and
// are replaced copy-on-write as a whole slice; the orchestrator is the only
// writer of note statuses.
type NoteRepository interface {
	CreateBatch(ctx context.Context, batch *models.NoteBatch) error
	// GetBatchByDate returns the batch for a meeting on a calendar day, or
	// nil when no batch exists yet.
	GetBatchByDate(ctx context.Context, meetingID string, day time.Time) (*models.NoteBatch, error)
	ListBatches(ctx context.Context, meetingID string) ([]*models.NoteBatch, error)
	// ListAllBatches returns every batch across all meetings, for the
	// startup migration scan.
	ListAllBatches(ctx context.Context) ([]*models.NoteBatch, error)
	// ReplaceNotes overwrites the full note slice of a batch.
	ReplaceNotes(ctx context.Context, batchID string, notes []models.Note) error
}

// ActionRepository persists action items.
type ActionRepository interface {
	// InsertUnique adds an action item unless one with identical text
	// already exists for the same meeting. Reports whether a row was
	// inserted.
	InsertUnique(ctx context.Context, item *models.ActionItem) (bool, error)
	ListByMeeting(ctx context.Context, meetingID string, filter models.ActionStatus) ([]*models.ActionItem, error)
	// ListAll returns action items across all meetings. filter may be empty
	// for no status filtering.
	ListAll(ctx context.Context, filter models.ActionStatus) ([]*models.ActionItem, error)
	// Toggle flips an item between open and closed, stamping or clearing
	// closed_at.
	Toggle(ctx context.Context, id string, now time.Time) (*models.ActionItem, error)
	GetNextID(ctx context.Context) (string, error)
}

// LedgerRepository persists per-meeting extraction status records.
type LedgerRepository interface {
	// Get returns the record for a meeting, or nil when none exists.
	Get(ctx context.Context, meetingID string) (*models.ExtractionStatus, error)
	Put(ctx context.Context, status *models.ExtractionStatus) error
	Delete(ctx context.Context, meetingID string) error
}

// PendingRepository persists pending-extraction markers.
type PendingRepository interface {
	// Put upserts the marker for a meeting with the given last-note time.
	Put(ctx context.Context, meetingID string, lastNoteTime time.Time) error
	Get(ctx context.Context, meetingID string) (*models.PendingExtraction, error)
	List(ctx context.Context) ([]*models.PendingExtraction, error)
	Delete(ctx context.Context, meetingID string) error
}

// AgendaRepository persists agenda items.
type AgendaRepository interface {
	Create(ctx context.Context, item *models.AgendaItem) error
	List(ctx context.Context, meetingID string) ([]*models.AgendaItem, error)
	Close(ctx context.Context, id string, now time.Time) error
	GetNextID(ctx context.Context) (string, error)
}
