package primary

import (
	"context"

	"github.com/example/minutes/internal/models"
)

// CreateMeetingRequest creates a meeting series.
type CreateMeetingRequest struct {
	Name string
	Type string
}

// MeetingService manages meeting series.
type MeetingService interface {
	CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*models.Meeting, error)
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	ListMeetings(ctx context.Context) ([]*models.Meeting, error)
	// DeleteMeeting removes the meeting and all owned batches, notes,
	// agenda and action items.
	DeleteMeeting(ctx context.Context, id string) error
}
