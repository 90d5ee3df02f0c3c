package secondary

// ExtractionState is the transient per-meeting indicator state.
type ExtractionState string

const (
	StatePending         ExtractionState = "pending"
	StateExtracting      ExtractionState = "extracting"
	StateCompleted       ExtractionState = "completed"
	StateFailed          ExtractionState = "failed"
	StateLicenseRequired ExtractionState = "license-required"
)

// SweepProgress reports position within a multi-meeting sweep.
type SweepProgress struct {
	Index int
	Total int
}

// StatusSink receives indicator updates. Calls are fire-and-forget from the
// orchestrator's perspective; implementations must not block and must not
// return errors into the extraction flow.
type StatusSink interface {
	Update(meetingID string, state ExtractionState, progress *SweepProgress)
}
