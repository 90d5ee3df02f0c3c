package primary

import (
	"context"

	"github.com/example/minutes/internal/models"
)

// CreateActionRequest adds an action item by hand. Duplicate text within
// the meeting is silently dropped.
type CreateActionRequest struct {
	MeetingID string
	BatchID   string
	Text      string
}

// CreateActionResponse reports whether a new item was inserted.
type CreateActionResponse struct {
	Inserted bool
	ActionID string
}

// ActionService manages action items.
type ActionService interface {
	CreateAction(ctx context.Context, req CreateActionRequest) (*CreateActionResponse, error)
	// ListActions returns a meeting's items; filter may be empty, open or
	// closed.
	ListActions(ctx context.Context, meetingID string, filter models.ActionStatus) ([]*models.ActionItem, error)
	// ListAllActions returns items across every meeting.
	ListAllActions(ctx context.Context, filter models.ActionStatus) ([]*models.ActionItem, error)
	// ToggleAction flips an item open/closed and returns the new state.
	ToggleAction(ctx context.Context, id string) (*models.ActionItem, error)
}
