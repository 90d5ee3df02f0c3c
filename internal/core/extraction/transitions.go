package extraction

import (
	"fmt"
	"strings"

	"github.com/example/minutes/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// NeedsExtraction reports whether a note is in the extraction pool.
// Only unprocessed and failed notes are eligible; in_progress notes belong
// to a running cycle and completed notes are terminal.
func NeedsExtraction(status models.NoteStatus) bool {
	return status == models.NoteUnprocessed || status == models.NoteFailed
}

// CanStart evaluates whether a note may enter in_progress.
// Rules:
// - only unprocessed or failed notes may start a cycle
func CanStart(status models.NoteStatus) GuardResult {
	if !NeedsExtraction(status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("note in status %q cannot start extraction", status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanFinish evaluates whether a note may leave in_progress for the given
// terminal-or-retry outcome. There is no direct unprocessed→completed or
// failed→completed transition.
func CanFinish(status, outcome models.NoteStatus) GuardResult {
	if status != models.NoteInProgress {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("note in status %q is not part of a running cycle", status),
		}
	}
	if outcome != models.NoteCompleted && outcome != models.NoteFailed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%q is not a valid cycle outcome", outcome),
		}
	}
	return GuardResult{Allowed: true}
}

// StatusAfterEdit returns the status a note holds after its text is edited.
// A material text change resets the note to unprocessed from any state so
// it re-enters the extraction pool; a whitespace-only change keeps the
// current status.
func StatusAfterEdit(current models.NoteStatus, oldText, newText string) models.NoteStatus {
	if trimEq(oldText, newText) {
		return current
	}
	return models.NoteUnprocessed
}

// RecoverInterrupted returns the status a note holds after a session
// restart, and whether it changed. in_progress only means a request was
// sent; if the session ended before the response arrived the note's fate is
// unknown, so it is demoted to failed and re-enters the retry pool.
// Completing it instead would risk presenting an absent result as done.
func RecoverInterrupted(status models.NoteStatus) (models.NoteStatus, bool) {
	if status == models.NoteInProgress {
		return models.NoteFailed, true
	}
	return status, false
}

func trimEq(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
