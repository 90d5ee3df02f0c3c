package models

import "time"

// NoteStatus tracks where a note is in the extraction lifecycle.
type NoteStatus string

const (
	NoteUnprocessed NoteStatus = "unprocessed"
	NoteInProgress  NoteStatus = "in_progress"
	NoteCompleted   NoteStatus = "completed"
	NoteFailed      NoteStatus = "failed"
)

// Note is a single meeting note. Notes carry no surrogate key; identity is
// the (text, createdAt) pair.
type Note struct {
	Text      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	Status    NoteStatus
}

// NoteBatch groups the notes taken for one meeting on one calendar day.
// Batches are created lazily on the first note of a new day and mutated
// copy-on-write: the whole Notes slice is replaced on every write.
type NoteBatch struct {
	ID        string
	MeetingID string
	Date      time.Time
	Notes     []Note
	CreatedAt time.Time
}
