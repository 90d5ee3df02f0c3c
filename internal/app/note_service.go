package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/minutes/internal/core/extraction"
	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/primary"
	"github.com/example/minutes/internal/ports/secondary"
)

// NoteServiceImpl manages note text and batch membership. Every mutation
// that changes extractable text notifies the extraction orchestrator so the
// debounce window restarts.
type NoteServiceImpl struct {
	meetings  secondary.MeetingRepository
	notes     secondary.NoteRepository
	scheduler primary.ExtractionService
	clock     secondary.Clock
	log       *zap.Logger
}

// NewNoteService creates the note service. scheduler may be nil to disable
// extraction triggering; clock and log may be nil.
func NewNoteService(meetings secondary.MeetingRepository, notes secondary.NoteRepository, scheduler primary.ExtractionService, clock secondary.Clock, log *zap.Logger) *NoteServiceImpl {
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NoteServiceImpl{
		meetings:  meetings,
		notes:     notes,
		scheduler: scheduler,
		clock:     clock,
		log:       log,
	}
}

// AddNote appends a note to the meeting's batch for the given day, creating
// the batch on the first note of that day.
func (s *NoteServiceImpl) AddNote(ctx context.Context, req primary.AddNoteRequest) (*primary.AddNoteResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("note text cannot be empty")
	}
	if _, err := s.meetings.GetByID(ctx, req.MeetingID); err != nil {
		return nil, fmt.Errorf("meeting not found: %w", err)
	}

	now := s.clock.Now()
	day := req.Day
	if day.IsZero() {
		day = now
	}

	note := models.Note{
		Text:      text,
		CreatedAt: now,
		Status:    models.NoteUnprocessed,
	}

	batch, err := s.notes.GetBatchByDate(ctx, req.MeetingID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to look up batch: %w", err)
	}
	if batch == nil {
		batch = &models.NoteBatch{
			ID:        uuid.NewString(),
			MeetingID: req.MeetingID,
			Date:      day,
			Notes:     []models.Note{note},
			CreatedAt: now,
		}
		if err := s.notes.CreateBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to create batch: %w", err)
		}
	} else {
		updated := append(append([]models.Note{}, batch.Notes...), note)
		if err := s.notes.ReplaceNotes(ctx, batch.ID, updated); err != nil {
			return nil, fmt.Errorf("failed to add note: %w", err)
		}
	}

	s.log.Debug("note added",
		zap.String("meeting_id", req.MeetingID),
		zap.String("batch_id", batch.ID))

	s.schedule(ctx, req.MeetingID)
	return &primary.AddNoteResponse{BatchID: batch.ID, Note: note}, nil
}

// EditNote replaces the text of the note at req.Index. A material text
// change stamps updated_at and resets the note to unprocessed so it
// re-enters the extraction pool.
func (s *NoteServiceImpl) EditNote(ctx context.Context, req primary.EditNoteRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fmt.Errorf("note text cannot be empty")
	}

	batch, err := s.batchFor(ctx, req.MeetingID, req.Day)
	if err != nil {
		return err
	}
	if req.Index < 0 || req.Index >= len(batch.Notes) {
		return fmt.Errorf("note index %d out of range (batch has %d notes)", req.Index, len(batch.Notes))
	}

	updated := append([]models.Note{}, batch.Notes...)
	note := updated[req.Index]
	nextStatus := extraction.StatusAfterEdit(note.Status, note.Text, text)
	material := nextStatus != note.Status || strings.TrimSpace(note.Text) != text

	note.Text = text
	note.Status = nextStatus
	if material {
		now := s.clock.Now()
		note.UpdatedAt = &now
	}
	updated[req.Index] = note

	if err := s.notes.ReplaceNotes(ctx, batch.ID, updated); err != nil {
		return fmt.Errorf("failed to edit note: %w", err)
	}

	if material {
		s.schedule(ctx, req.MeetingID)
	}
	return nil
}

// DeleteNote removes the note at req.Index from the batch and restarts the
// debounce window for the meeting.
func (s *NoteServiceImpl) DeleteNote(ctx context.Context, req primary.DeleteNoteRequest) error {
	batch, err := s.batchFor(ctx, req.MeetingID, req.Day)
	if err != nil {
		return err
	}
	if req.Index < 0 || req.Index >= len(batch.Notes) {
		return fmt.Errorf("note index %d out of range (batch has %d notes)", req.Index, len(batch.Notes))
	}

	updated := append([]models.Note{}, batch.Notes[:req.Index]...)
	updated = append(updated, batch.Notes[req.Index+1:]...)
	if err := s.notes.ReplaceNotes(ctx, batch.ID, updated); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.schedule(ctx, req.MeetingID)
	return nil
}

// ListNotes returns the meeting's batches, newest day first.
func (s *NoteServiceImpl) ListNotes(ctx context.Context, meetingID string) ([]*models.NoteBatch, error) {
	return s.notes.ListBatches(ctx, meetingID)
}

func (s *NoteServiceImpl) batchFor(ctx context.Context, meetingID string, day time.Time) (*models.NoteBatch, error) {
	if day.IsZero() {
		day = s.clock.Now()
	}
	batch, err := s.notes.GetBatchByDate(ctx, meetingID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to look up batch: %w", err)
	}
	if batch == nil {
		return nil, fmt.Errorf("no notes for meeting %s on %s", meetingID, day.Format("2006-01-02"))
	}
	return batch, nil
}

func (s *NoteServiceImpl) schedule(ctx context.Context, meetingID string) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.ScheduleExtraction(ctx, meetingID); err != nil {
		s.log.Warn("failed to schedule extraction",
			zap.String("meeting_id", meetingID), zap.Error(err))
	}
}
