package models

import "time"

// ExtractionOutcome is the last known per-meeting extraction result.
type ExtractionOutcome string

const (
	ExtractionCompleted ExtractionOutcome = "completed"
	ExtractionFailed    ExtractionOutcome = "failed"
)

// ExtractionStatus is the durable per-meeting extraction ledger record.
// ProcessedNoteIDs grows monotonically (set union) across runs. RetryCount
// resets to zero on any completed outcome and increments on each failure.
type ExtractionStatus struct {
	MeetingID        string
	Status           ExtractionOutcome
	LastExtractedAt  *time.Time
	ProcessedNoteIDs []string
	RetryCount       int
	LastError        string
}

// PendingExtraction marks a meeting with a scheduled-but-unfinished
// extraction cycle. Created when a note event schedules extraction, deleted
// when the cycle finishes; consulted at startup to resume debounce timers.
type PendingExtraction struct {
	MeetingID    string
	LastNoteTime time.Time
}
