// Package cli contains adapters translating between the application core
// and the terminal.
package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/example/minutes/internal/ports/secondary"
)

// StatusSurface implements secondary.StatusSink by printing one colored
// indicator line per update. Writes are best-effort and never propagate
// errors back into the extraction flow.
type StatusSurface struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStatusSurface creates a surface writing to out.
func NewStatusSurface(out io.Writer) *StatusSurface {
	return &StatusSurface{out: out}
}

// Update renders one indicator line for a meeting.
func (s *StatusSurface) Update(meetingID string, state secondary.ExtractionState, progress *secondary.SweepProgress) {
	var line string
	switch state {
	case secondary.StatePending:
		line = fmt.Sprintf("%s %s extraction pending", color.New(color.FgYellow).Sprint("◌"), meetingID)
	case secondary.StateExtracting:
		line = fmt.Sprintf("%s %s extracting action items...", color.New(color.FgCyan).Sprint("…"), meetingID)
	case secondary.StateCompleted:
		line = fmt.Sprintf("%s %s action items extracted", color.New(color.FgGreen).Sprint("✓"), meetingID)
	case secondary.StateFailed:
		line = fmt.Sprintf("%s %s extraction failed", color.New(color.FgRed).Sprint("✗"), meetingID)
	case secondary.StateLicenseRequired:
		line = fmt.Sprintf("%s %s extraction requires a license (run 'minutes license activate')", color.New(color.FgYellow).Sprint("!"), meetingID)
	default:
		return
	}
	if progress != nil {
		line = fmt.Sprintf("[%d/%d] %s", progress.Index, progress.Total, line)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
}

// NopStatus is a StatusSink that discards updates.
type NopStatus struct{}

// Update implements secondary.StatusSink.
func (NopStatus) Update(string, secondary.ExtractionState, *secondary.SweepProgress) {}
