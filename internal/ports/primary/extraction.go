// Package primary defines the driving ports: the service interfaces the
// CLI (or any other surface) calls into, with their request/response types.
package primary

import (
	"context"

	"github.com/example/minutes/internal/models"
)

// ExtractionService owns the extraction lifecycle for all meetings: when to
// call the remote service, single-flight per meeting, retry policy, startup
// recovery and result reconciliation. It is the only writer of note
// processing statuses and ledger records.
type ExtractionService interface {
	// ScheduleExtraction (re)arms the debounce timer for a meeting after a
	// note event. If a call is already in flight it waits for it and only
	// reschedules when eligible notes remain.
	ScheduleExtraction(ctx context.Context, meetingID string) error

	// ExtractActions runs one extraction cycle for a meeting immediately.
	// Remote failures resolve into the ledger, not into the returned error;
	// only local-store faults surface here.
	ExtractActions(ctx context.Context, meetingID string) error

	// RunExtractionOnLoad performs session-start recovery: demotes
	// interrupted in_progress notes to failed, resumes persisted debounce
	// timers, then sweeps all meetings with outstanding work sequentially.
	RunExtractionOnLoad(ctx context.Context) error

	// CheckAllMeetings sweeps every meeting with eligible notes, skipping
	// those with an active debounce timer or an unexpired pending marker.
	CheckAllMeetings(ctx context.Context) error

	// Status returns the ledger record for a meeting, or nil when the
	// meeting was never extracted.
	Status(ctx context.Context, meetingID string) (*models.ExtractionStatus, error)
}
