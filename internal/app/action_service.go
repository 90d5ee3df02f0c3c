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

// ActionServiceImpl manages action items entered by hand. Extracted items
// arrive through the extraction orchestrator instead, but both paths share
// the same text-uniqueness rule enforced by the repository.
type ActionServiceImpl struct {
	actions secondary.ActionRepository
	clock   secondary.Clock
	log     *zap.Logger
}

// NewActionService creates the action service. clock and log may be nil.
func NewActionService(actions secondary.ActionRepository, clock secondary.Clock, log *zap.Logger) *ActionServiceImpl {
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ActionServiceImpl{actions: actions, clock: clock, log: log}
}

// CreateAction adds an action item by hand. Duplicate text within the
// meeting is reported, not errored.
func (s *ActionServiceImpl) CreateAction(ctx context.Context, req primary.CreateActionRequest) (*primary.CreateActionResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("action text cannot be empty")
	}

	id, err := s.actions.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate action ID: %w", err)
	}
	inserted, err := s.actions.InsertUnique(ctx, &models.ActionItem{
		ID:        id,
		MeetingID: req.MeetingID,
		BatchID:   req.BatchID,
		Text:      text,
		Status:    models.ActionOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}
	if !inserted {
		s.log.Debug("duplicate action item skipped",
			zap.String("meeting_id", req.MeetingID))
		return &primary.CreateActionResponse{Inserted: false}, nil
	}
	return &primary.CreateActionResponse{Inserted: true, ActionID: id}, nil
}

// ListActions returns a meeting's action items.
func (s *ActionServiceImpl) ListActions(ctx context.Context, meetingID string, filter models.ActionStatus) ([]*models.ActionItem, error) {
	return s.actions.ListByMeeting(ctx, meetingID, filter)
}

// ListAllActions returns action items across every meeting.
func (s *ActionServiceImpl) ListAllActions(ctx context.Context, filter models.ActionStatus) ([]*models.ActionItem, error) {
	return s.actions.ListAll(ctx, filter)
}

// ToggleAction flips an item open/closed.
func (s *ActionServiceImpl) ToggleAction(ctx context.Context, id string) (*models.ActionItem, error) {
	item, err := s.actions.Toggle(ctx, id, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to toggle action item: %w", err)
	}
	return item, nil
}
