package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/primary"
	"github.com/example/minutes/internal/ports/secondary"
)

// MeetingServiceImpl manages meeting series.
type MeetingServiceImpl struct {
	meetings secondary.MeetingRepository
	ledger   secondary.LedgerRepository
	pending  secondary.PendingRepository
	clock    secondary.Clock
	log      *zap.Logger
}

// NewMeetingService creates the meeting service. clock and log may be nil.
func NewMeetingService(meetings secondary.MeetingRepository, ledger secondary.LedgerRepository, pending secondary.PendingRepository, clock secondary.Clock, log *zap.Logger) *MeetingServiceImpl {
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MeetingServiceImpl{
		meetings: meetings,
		ledger:   ledger,
		pending:  pending,
		clock:    clock,
		log:      log,
	}
}

// CreateMeeting creates a meeting series with a generated sequential ID.
func (s *MeetingServiceImpl) CreateMeeting(ctx context.Context, req primary.CreateMeetingRequest) (*models.Meeting, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("meeting name cannot be empty")
	}
	switch req.Type {
	case models.MeetingOneOnOne, models.MeetingRecurring, models.MeetingAdhoc:
	case "":
		req.Type = models.MeetingRecurring
	default:
		return nil, fmt.Errorf("unknown meeting type %q", req.Type)
	}

	id, err := s.meetings.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meeting ID: %w", err)
	}
	meeting := &models.Meeting{
		ID:        id,
		Name:      name,
		Type:      req.Type,
		CreatedAt: s.clock.Now(),
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.log.Info("meeting created",
		zap.String("meeting_id", meeting.ID),
		zap.String("type", meeting.Type))
	return meeting, nil
}

// GetMeeting returns one meeting.
func (s *MeetingServiceImpl) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

// ListMeetings returns all meetings.
func (s *MeetingServiceImpl) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	return s.meetings.List(ctx)
}

// DeleteMeeting removes the meeting and everything that hangs off it,
// including its extraction ledger record and any pending marker.
func (s *MeetingServiceImpl) DeleteMeeting(ctx context.Context, id string) error {
	if err := s.meetings.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	if err := s.ledger.Delete(ctx, id); err != nil {
		s.log.Warn("failed to delete extraction status",
			zap.String("meeting_id", id), zap.Error(err))
	}
	if err := s.pending.Delete(ctx, id); err != nil {
		s.log.Warn("failed to delete pending extraction",
			zap.String("meeting_id", id), zap.Error(err))
	}
	s.log.Info("meeting deleted", zap.String("meeting_id", id))
	return nil
}
