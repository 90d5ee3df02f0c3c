package models

import "time"

// Meeting type constants
const (
	MeetingOneOnOne  = "1:1"
	MeetingRecurring = "recurring"
	MeetingAdhoc     = "adhoc"
)

// Meeting is a recurring meeting series. Note batches, agenda items and
// action items all hang off a meeting and are deleted with it.
type Meeting struct {
	ID        string
	Name      string
	Type      string
	CreatedAt time.Time
}
