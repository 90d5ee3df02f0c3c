package models

import "time"

// ActionStatus is the open/closed state of an action item.
type ActionStatus string

const (
	ActionOpen   ActionStatus = "open"
	ActionClosed ActionStatus = "closed"
)

// ActionItem is a single follow-up extracted from notes or entered by hand.
// Within a meeting, action items are deduplicated by exact text at insert
// time. MeetingID and BatchID may be empty for general (unowned) items.
type ActionItem struct {
	ID        string
	MeetingID string
	BatchID   string
	Text      string
	Status    ActionStatus
	CreatedAt time.Time
	ClosedAt  *time.Time
}
