package models

import "time"

// AgendaStatus is the open/closed state of an agenda item.
type AgendaStatus string

const (
	AgendaOpen   AgendaStatus = "open"
	AgendaClosed AgendaStatus = "closed"
)

// AgendaItem is a standing discussion topic for a meeting. Agenda items are
// included in extraction requests so the remote service has topic context.
type AgendaItem struct {
	ID        string
	MeetingID string
	Text      string
	Status    AgendaStatus
	CreatedAt time.Time
	ClosedAt  *time.Time
}
