package primary

import (
	"context"

	"github.com/example/minutes/internal/models"
)

// AgendaService manages standing agenda items for a meeting.
type AgendaService interface {
	AddItem(ctx context.Context, meetingID, text string) (*models.AgendaItem, error)
	ListItems(ctx context.Context, meetingID string) ([]*models.AgendaItem, error)
	CloseItem(ctx context.Context, id string) error
}
