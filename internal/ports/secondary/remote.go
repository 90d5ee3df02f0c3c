package secondary

import "context"

// Wire types for the remote extraction call. Field names follow the
// service's JSON contract; timestamps are RFC 3339 strings or empty when
// absent.

// NotePayload is one note in an extraction request or response.
type NotePayload struct {
	Text      string  `json:"text"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// MeetingSeriesPayload identifies the meeting in an extraction request.
type MeetingSeriesPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	CreatedAt *string `json:"created_at"`
}

// MeetingInstancePayload carries the batch under extraction and its notes.
type MeetingInstancePayload struct {
	ID        string        `json:"id"`
	SeriesID  string        `json:"series_id"`
	Date      *string       `json:"date"`
	Notes     []NotePayload `json:"notes"`
	CreatedAt *string       `json:"created_at"`
}

// AgendaItemPayload is one agenda item sent for topic context.
type AgendaItemPayload struct {
	ID        string  `json:"id"`
	SeriesID  string  `json:"series_id"`
	Text      string  `json:"text"`
	Status    string  `json:"status"`
	CreatedAt *string `json:"created_at"`
	ClosedAt  *string `json:"closed_at"`
}

// ActionItemPayload carries just the text of an action item.
type ActionItemPayload struct {
	Text string `json:"text"`
}

// MeetingDetails is the full extraction request body content. Existing
// action texts are included so the service can avoid proposing duplicates.
type MeetingDetails struct {
	MeetingSeries   MeetingSeriesPayload   `json:"meeting_series"`
	MeetingInstance MeetingInstancePayload `json:"meeting_instance"`
	AgendaItems     []AgendaItemPayload    `json:"agenda_items"`
	ExistingActions []ActionItemPayload    `json:"existing_actions"`
}

// ExtractionRequest is the POST body for the extract-actions endpoint.
type ExtractionRequest struct {
	MeetingDetails MeetingDetails `json:"meeting_details"`
}

// NoteWithActions is one processed note and its extracted action items.
type NoteWithActions struct {
	Note        NotePayload         `json:"note"`
	ActionItems []ActionItemPayload `json:"action_items"`
}

// ExtractionResult is the success response from the service.
type ExtractionResult struct {
	SeriesID         string            `json:"series_id"`
	MeetingID        string            `json:"meeting_id"`
	NotesWithActions []NoteWithActions `json:"notes_with_actions"`
}

// RemoteExtractor is the remote text-extraction service. Implementations
// return *extraction.RemoteError for non-2xx responses so callers can
// distinguish server-side failures from client/transport ones.
type RemoteExtractor interface {
	ExtractActions(ctx context.Context, req *ExtractionRequest) (*ExtractionResult, error)
}
