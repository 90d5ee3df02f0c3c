package primary

import (
	"context"
	"time"

	"github.com/example/minutes/internal/models"
)

// AddNoteRequest adds a note to a meeting's batch for the given day.
// Day defaults to today when zero.
type AddNoteRequest struct {
	MeetingID string
	Text      string
	Day       time.Time
}

// AddNoteResponse reports the batch the note landed in.
type AddNoteResponse struct {
	BatchID string
	Note    models.Note
}

// EditNoteRequest replaces the text of the note at Index within the batch
// for Day. A material text change resets the note to unprocessed.
type EditNoteRequest struct {
	MeetingID string
	Day       time.Time
	Index     int
	Text      string
}

// DeleteNoteRequest removes the note at Index within the batch for Day.
type DeleteNoteRequest struct {
	MeetingID string
	Day       time.Time
	Index     int
}

// NoteService manages note text and batch membership. Every mutation
// notifies the extraction orchestrator.
type NoteService interface {
	AddNote(ctx context.Context, req AddNoteRequest) (*AddNoteResponse, error)
	EditNote(ctx context.Context, req EditNoteRequest) error
	DeleteNote(ctx context.Context, req DeleteNoteRequest) error
	// ListNotes returns the meeting's batches, newest day first.
	ListNotes(ctx context.Context, meetingID string) ([]*models.NoteBatch, error)
}
