package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/secondary"
)

// AgendaServiceImpl manages standing agenda items.
type AgendaServiceImpl struct {
	meetings secondary.MeetingRepository
	agenda   secondary.AgendaRepository
	clock    secondary.Clock
	log      *zap.Logger
}

// NewAgendaService creates the agenda service. clock and log may be nil.
func NewAgendaService(meetings secondary.MeetingRepository, agenda secondary.AgendaRepository, clock secondary.Clock, log *zap.Logger) *AgendaServiceImpl {
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AgendaServiceImpl{meetings: meetings, agenda: agenda, clock: clock, log: log}
}

// AddItem creates an open agenda item for a meeting.
func (s *AgendaServiceImpl) AddItem(ctx context.Context, meetingID, text string) (*models.AgendaItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("agenda text cannot be empty")
	}
	if _, err := s.meetings.GetByID(ctx, meetingID); err != nil {
		return nil, fmt.Errorf("meeting not found: %w", err)
	}

	id, err := s.agenda.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate agenda ID: %w", err)
	}
	item := &models.AgendaItem{
		ID:        id,
		MeetingID: meetingID,
		Text:      text,
		Status:    models.AgendaOpen,
		CreatedAt: s.clock.Now(),
	}
	if err := s.agenda.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create agenda item: %w", err)
	}
	return item, nil
}

// ListItems returns a meeting's agenda items.
func (s *AgendaServiceImpl) ListItems(ctx context.Context, meetingID string) ([]*models.AgendaItem, error) {
	return s.agenda.List(ctx, meetingID)
}

// CloseItem marks an agenda item closed.
func (s *AgendaServiceImpl) CloseItem(ctx context.Context, id string) error {
	return s.agenda.Close(ctx, id, s.clock.Now())
}
