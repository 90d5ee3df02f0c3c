package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/minutes/internal/core/extraction"
	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/secondary"
)

// ExtractionConfig holds the orchestrator's tunables.
type ExtractionConfig struct {
	// Debounce is the window D between the last note event and the
	// scheduled extraction attempt. Zero means immediate.
	Debounce time.Duration
	// MaxAttempts is the total remote call attempts per cycle.
	MaxAttempts int
	// RetryDelays is the fixed wait schedule between attempts.
	RetryDelays []time.Duration
}

// DefaultExtractionConfig returns the production tunables.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		Debounce:    5 * time.Minute,
		MaxAttempts: 3,
		RetryDelays: []time.Duration{10 * time.Second, 30 * time.Second},
	}
}

// ExtractionServiceImpl is the extraction orchestrator. It decides when to
// call the remote service per meeting, guarantees at most one in-flight
// call per meeting, and reconciles results into durable state with retry
// and crash-recovery semantics. It is the only writer of note processing
// statuses, ledger records and pending markers.
type ExtractionServiceImpl struct {
	meetings secondary.MeetingRepository
	notes    secondary.NoteRepository
	actions  secondary.ActionRepository
	agenda   secondary.AgendaRepository
	ledger   secondary.LedgerRepository
	pending  secondary.PendingRepository
	gate     secondary.AccessGate
	remote   secondary.RemoteExtractor
	status   secondary.StatusSink
	clock    secondary.Clock
	log      *zap.Logger
	cfg      ExtractionConfig

	// mu guards timers and inflight. Both maps are checked and set without
	// suspension in between so near-simultaneous triggers for the same
	// meeting cannot both proceed into a remote call.
	mu       sync.Mutex
	timers   map[string]secondary.Timer
	inflight map[string]*inflightCall
}

// inflightCall is the currently running extraction for one meeting.
// done is closed after err is set; joiners share the outcome.
type inflightCall struct {
	done chan struct{}
	err  error
}

// NewExtractionService creates the orchestrator with injected
// collaborators. status, clock and log may be nil.
func NewExtractionService(
	meetings secondary.MeetingRepository,
	notes secondary.NoteRepository,
	actions secondary.ActionRepository,
	agenda secondary.AgendaRepository,
	ledger secondary.LedgerRepository,
	pending secondary.PendingRepository,
	gate secondary.AccessGate,
	remote secondary.RemoteExtractor,
	status secondary.StatusSink,
	clock secondary.Clock,
	log *zap.Logger,
	cfg ExtractionConfig,
) *ExtractionServiceImpl {
	if status == nil {
		status = nopStatus{}
	}
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &ExtractionServiceImpl{
		meetings: meetings,
		notes:    notes,
		actions:  actions,
		agenda:   agenda,
		ledger:   ledger,
		pending:  pending,
		gate:     gate,
		remote:   remote,
		status:   status,
		clock:    clock,
		log:      log,
		cfg:      cfg,
		timers:   make(map[string]secondary.Timer),
		inflight: make(map[string]*inflightCall),
	}
}

type nopStatus struct{}

func (nopStatus) Update(string, secondary.ExtractionState, *secondary.SweepProgress) {}

// ScheduleExtraction (re)arms the debounce timer for a meeting after a
// note event. If a call is already in flight it waits for it and only
// reschedules when eligible notes remain, avoiding a redundant call for
// work the in-flight cycle already captured.
func (s *ExtractionServiceImpl) ScheduleExtraction(ctx context.Context, meetingID string) error {
	meetingID = normalizeID(meetingID)

	if call := s.inflightFor(meetingID); call != nil {
		s.log.Debug("extraction in flight, waiting", zap.String("meeting_id", meetingID))
		select {
		case <-call.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		eligible, err := s.notesToExtract(ctx, meetingID)
		if err != nil {
			return err
		}
		if len(eligible) == 0 {
			s.log.Debug("no eligible notes after in-flight call", zap.String("meeting_id", meetingID))
			return nil
		}
	}

	if err := s.pending.Put(ctx, meetingID, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to persist pending extraction: %w", err)
	}

	s.armTimer(meetingID, s.cfg.Debounce)
	s.status.Update(meetingID, secondary.StatePending, nil)
	s.log.Debug("extraction scheduled",
		zap.String("meeting_id", meetingID),
		zap.Duration("debounce", s.cfg.Debounce))
	return nil
}

// armTimer cancels any existing debounce timer for the meeting and arms a
// new one. Only one timer per meeting exists at any time.
func (s *ExtractionServiceImpl) armTimer(meetingID string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[meetingID]; ok {
		t.Stop()
	}
	s.timers[meetingID] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, meetingID)
		s.mu.Unlock()
		if err := s.ExtractActions(context.Background(), meetingID); err != nil {
			s.log.Warn("debounced extraction failed",
				zap.String("meeting_id", meetingID), zap.Error(err))
		}
	})
}

// hasTimer reports whether a debounce timer is armed for the meeting.
func (s *ExtractionServiceImpl) hasTimer(meetingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[meetingID]
	return ok
}

func (s *ExtractionServiceImpl) inflightFor(meetingID string) *inflightCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[meetingID]
}

// ExtractActions runs one extraction cycle for a meeting. Concurrent calls
// for the same meeting collapse into one underlying cycle and share its
// outcome. Remote failures resolve into the ledger and do not surface as
// errors; local-store faults do, after a best-effort failed-status write.
func (s *ExtractionServiceImpl) ExtractActions(ctx context.Context, meetingID string) (err error) {
	meetingID = normalizeID(meetingID)

	decision, gerr := s.gate.Check(ctx)
	if gerr != nil {
		s.log.Warn("access check failed", zap.String("meeting_id", meetingID), zap.Error(gerr))
		decision = secondary.AccessDecision{HasAccess: false, Reason: gerr.Error()}
	}
	if !decision.HasAccess {
		s.log.Info("extraction access denied",
			zap.String("meeting_id", meetingID),
			zap.String("reason", decision.Reason))
		s.status.Update(meetingID, secondary.StateLicenseRequired, nil)
		return nil
	}

	// Check-and-set without suspension in between: join an existing flight
	// or become the owner of a new one.
	s.mu.Lock()
	if call, ok := s.inflight[meetingID]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &inflightCall{done: make(chan struct{})}
	s.inflight[meetingID] = call
	s.mu.Unlock()

	defer func() {
		call.err = err
		s.mu.Lock()
		delete(s.inflight, meetingID)
		s.mu.Unlock()
		close(call.done)
	}()

	return s.runCycle(ctx, meetingID)
}

// runCycle drives one extraction cycle to completion. Whatever happens,
// the pending marker is removed at the end so the meeting is eligible for
// a fresh debounce on the next note event, and no note is left in
// in_progress by an escaping local-store fault.
func (s *ExtractionServiceImpl) runCycle(ctx context.Context, meetingID string) error {
	err := s.extractOnce(ctx, meetingID)
	if err != nil {
		// Local-store fault mid-cycle. Defensively re-fetch current state
		// rather than trusting the selected set, and pull anything stuck
		// in in_progress back into the retry pool.
		s.log.Error("extraction cycle failed", zap.String("meeting_id", meetingID), zap.Error(err))
		s.recoverStuckNotes(ctx, meetingID)
		if lerr := s.writeLedger(ctx, meetingID, models.ExtractionFailed, nil, err.Error()); lerr != nil {
			s.log.Warn("failed to record extraction failure",
				zap.String("meeting_id", meetingID), zap.Error(lerr))
		}
		s.status.Update(meetingID, secondary.StateFailed, nil)
	}

	if derr := s.pending.Delete(ctx, meetingID); derr != nil {
		s.log.Warn("failed to clear pending extraction",
			zap.String("meeting_id", meetingID), zap.Error(derr))
	}
	return err
}

func (s *ExtractionServiceImpl) extractOnce(ctx context.Context, meetingID string) error {
	selected, err := s.notesToExtract(ctx, meetingID)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		s.log.Debug("no notes to extract", zap.String("meeting_id", meetingID))
		return nil
	}

	s.status.Update(meetingID, secondary.StateExtracting, nil)

	// Build the payload from the selected set before mutating statuses.
	// Recomputing the selection after marking would see zero eligible
	// notes and silently no-op on an already-in-flight request.
	payload, err := s.buildRequest(ctx, meetingID, selected)
	if err != nil {
		return err
	}

	if err := s.markNotes(ctx, meetingID, identitySet(selected), models.NoteInProgress); err != nil {
		return err
	}

	s.log.Info("extracting action items",
		zap.String("meeting_id", meetingID),
		zap.Int("notes", len(selected)))

	outcome := s.extractWithRetry(ctx, meetingID, payload)

	if outcome.result == nil {
		if err := s.markNotes(ctx, meetingID, identitySet(selected), models.NoteFailed); err != nil {
			return err
		}
		if err := s.writeLedger(ctx, meetingID, models.ExtractionFailed, nil, outcome.errMsg); err != nil {
			return err
		}
		s.status.Update(meetingID, secondary.StateFailed, nil)
		s.log.Warn("extraction failed",
			zap.String("meeting_id", meetingID),
			zap.String("error", outcome.errMsg))
		return nil
	}

	matched, err := s.reconcile(ctx, meetingID, outcome.result)
	if err != nil {
		return err
	}
	if err := s.writeLedger(ctx, meetingID, models.ExtractionCompleted, matched, ""); err != nil {
		return err
	}
	s.status.Update(meetingID, secondary.StateCompleted, nil)
	s.log.Info("extraction completed",
		zap.String("meeting_id", meetingID),
		zap.Int("processed_notes", len(matched)))
	return nil
}

// remoteOutcome is the resolved result of the retry loop. Exactly one of
// result and errMsg is set.
type remoteOutcome struct {
	result *secondary.ExtractionResult
	errMsg string
}

// extractWithRetry re-sends the identical payload up to MaxAttempts times.
// The note set under extraction is frozen for the duration of the cycle;
// the payload is never rebuilt. A server-side failure on the first attempt
// fails immediately.
func (s *ExtractionServiceImpl) extractWithRetry(ctx context.Context, meetingID string, req *secondary.ExtractionRequest) remoteOutcome {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := extraction.DelayFor(attempt-1, s.cfg.RetryDelays)
			s.log.Debug("waiting before retry",
				zap.String("meeting_id", meetingID),
				zap.Duration("delay", delay))
			if err := s.clock.Sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		result, err := s.remote.ExtractActions(ctx, req)
		if err == nil {
			return remoteOutcome{result: result}
		}
		lastErr = err
		s.log.Warn("extraction attempt failed",
			zap.String("meeting_id", meetingID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if extraction.ShouldAbortRetry(attempt, err) {
			s.log.Warn("extraction service unavailable, not retrying",
				zap.String("meeting_id", meetingID))
			break
		}
	}
	return remoteOutcome{errMsg: lastErr.Error()}
}

// RunExtractionOnLoad performs session-start recovery.
func (s *ExtractionServiceImpl) RunExtractionOnLoad(ctx context.Context) error {
	if err := s.migrateInterruptedNotes(ctx); err != nil {
		return err
	}
	if err := s.resumePendingTimers(ctx); err != nil {
		return err
	}
	return s.CheckAllMeetings(ctx)
}

// migrateInterruptedNotes demotes every in_progress note to failed. A note
// left in_progress by an interrupted session would otherwise never match
// the trigger predicate again and be hidden from extraction forever.
func (s *ExtractionServiceImpl) migrateInterruptedNotes(ctx context.Context) error {
	batches, err := s.notes.ListAllBatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan batches for recovery: %w", err)
	}

	migrated := 0
	for _, batch := range batches {
		changed := false
		updated := make([]models.Note, len(batch.Notes))
		for i, note := range batch.Notes {
			status, moved := extraction.RecoverInterrupted(note.Status)
			note.Status = status
			updated[i] = note
			if moved {
				changed = true
				migrated++
			}
		}
		if changed {
			if err := s.notes.ReplaceNotes(ctx, batch.ID, updated); err != nil {
				return fmt.Errorf("failed to migrate interrupted notes: %w", err)
			}
		}
	}
	if migrated > 0 {
		s.log.Info("recovered interrupted notes", zap.Int("count", migrated))
	}
	return nil
}

// resumePendingTimers re-arms or immediately fires persisted debounce
// windows from a previous session.
func (s *ExtractionServiceImpl) resumePendingTimers(ctx context.Context) error {
	markers, err := s.pending.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending extractions: %w", err)
	}

	now := s.clock.Now()
	for _, marker := range markers {
		elapsed := now.Sub(marker.LastNoteTime)
		if elapsed >= s.cfg.Debounce {
			if err := s.ExtractActions(ctx, marker.MeetingID); err != nil {
				s.log.Warn("resumed extraction failed",
					zap.String("meeting_id", marker.MeetingID), zap.Error(err))
			}
		} else {
			s.armTimer(marker.MeetingID, s.cfg.Debounce-elapsed)
			s.status.Update(marker.MeetingID, secondary.StatePending, nil)
		}
	}
	return nil
}

// CheckAllMeetings sweeps every meeting with eligible notes, strictly
// sequentially to keep local-store writes ordered. Meetings with an active
// debounce timer, or a pending marker whose window has not elapsed, are
// skipped so the sweep cannot double-trigger a just-scheduled debounce.
func (s *ExtractionServiceImpl) CheckAllMeetings(ctx context.Context) error {
	meetings, err := s.meetings.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list meetings: %w", err)
	}

	var due []string
	for _, meeting := range meetings {
		eligible, err := s.notesToExtract(ctx, meeting.ID)
		if err != nil {
			return err
		}
		if len(eligible) == 0 {
			continue
		}
		skip, err := s.debounceActive(ctx, meeting.ID)
		if err != nil {
			return err
		}
		if skip {
			s.log.Debug("sweep skipping meeting with active debounce",
				zap.String("meeting_id", meeting.ID))
			continue
		}
		due = append(due, meeting.ID)
	}

	for i, meetingID := range due {
		s.status.Update(meetingID, secondary.StateExtracting, &secondary.SweepProgress{Index: i + 1, Total: len(due)})
		if err := s.ExtractActions(ctx, meetingID); err != nil {
			s.log.Warn("sweep extraction failed",
				zap.String("meeting_id", meetingID), zap.Error(err))
		}
	}
	return nil
}

// debounceActive reports whether the meeting has an armed timer or a
// pending marker whose window has not yet elapsed.
func (s *ExtractionServiceImpl) debounceActive(ctx context.Context, meetingID string) (bool, error) {
	if s.hasTimer(meetingID) {
		return true, nil
	}
	marker, err := s.pending.Get(ctx, meetingID)
	if err != nil {
		return false, fmt.Errorf("failed to check pending extraction: %w", err)
	}
	if marker != nil && s.clock.Now().Sub(marker.LastNoteTime) < s.cfg.Debounce {
		return true, nil
	}
	return false, nil
}

// Status returns the ledger record for a meeting, or nil when absent.
func (s *ExtractionServiceImpl) Status(ctx context.Context, meetingID string) (*models.ExtractionStatus, error) {
	return s.ledger.Get(ctx, normalizeID(meetingID))
}

// selectedNote is one note chosen for extraction, with its batch.
type selectedNote struct {
	batchID string
	note    models.Note
}

// notesToExtract returns all notes across the meeting's batches whose
// status is unprocessed or failed.
func (s *ExtractionServiceImpl) notesToExtract(ctx context.Context, meetingID string) ([]selectedNote, error) {
	batches, err := s.notes.ListBatches(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	var selected []selectedNote
	for _, batch := range batches {
		for _, note := range batch.Notes {
			if extraction.NeedsExtraction(note.Status) {
				selected = append(selected, selectedNote{batchID: batch.ID, note: note})
			}
		}
	}
	return selected, nil
}

func identitySet(selected []selectedNote) map[string]bool {
	ids := make(map[string]bool, len(selected))
	for _, sn := range selected {
		ids[extraction.NoteID(sn.note.Text, sn.note.CreatedAt)] = true
	}
	return ids
}

// markNotes rewrites every batch of the meeting, moving notes whose
// identity is in ids to the given status. Transitions that the state
// machine forbids (e.g. completing a note that was edited back to
// unprocessed mid-flight) are skipped.
func (s *ExtractionServiceImpl) markNotes(ctx context.Context, meetingID string, ids map[string]bool, status models.NoteStatus) error {
	batches, err := s.notes.ListBatches(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}
	for _, batch := range batches {
		changed := false
		updated := make([]models.Note, len(batch.Notes))
		for i, note := range batch.Notes {
			if ids[extraction.NoteID(note.Text, note.CreatedAt)] && s.transitionAllowed(note.Status, status) {
				note.Status = status
				changed = true
			}
			updated[i] = note
		}
		if changed {
			if err := s.notes.ReplaceNotes(ctx, batch.ID, updated); err != nil {
				return fmt.Errorf("failed to update note statuses: %w", err)
			}
		}
	}
	return nil
}

func (s *ExtractionServiceImpl) transitionAllowed(current, target models.NoteStatus) bool {
	switch target {
	case models.NoteInProgress:
		return extraction.CanStart(current).Allowed
	case models.NoteCompleted, models.NoteFailed:
		return extraction.CanFinish(current, target).Allowed
	default:
		return false
	}
}

// recoverStuckNotes is the catastrophic-error path: any note currently
// in_progress is pulled back to failed so nothing stays stuck outside the
// startup-recovery safety net.
func (s *ExtractionServiceImpl) recoverStuckNotes(ctx context.Context, meetingID string) {
	batches, err := s.notes.ListBatches(ctx, meetingID)
	if err != nil {
		s.log.Warn("failed to re-fetch notes for recovery",
			zap.String("meeting_id", meetingID), zap.Error(err))
		return
	}
	for _, batch := range batches {
		changed := false
		updated := make([]models.Note, len(batch.Notes))
		for i, note := range batch.Notes {
			status, moved := extraction.RecoverInterrupted(note.Status)
			note.Status = status
			updated[i] = note
			if moved {
				changed = true
			}
		}
		if changed {
			if err := s.notes.ReplaceNotes(ctx, batch.ID, updated); err != nil {
				s.log.Warn("failed to recover stuck notes",
					zap.String("meeting_id", meetingID), zap.Error(err))
			}
		}
	}
}

// buildRequest assembles the wire payload from exactly the selected notes
// plus meeting metadata, agenda items and existing action texts.
func (s *ExtractionServiceImpl) buildRequest(ctx context.Context, meetingID string, selected []selectedNote) (*secondary.ExtractionRequest, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	agendaItems, err := s.agenda.List(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}
	existing, err := s.actions.ListByMeeting(ctx, meetingID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load existing actions: %w", err)
	}

	notes := make([]secondary.NotePayload, len(selected))
	for i, sn := range selected {
		notes[i] = secondary.NotePayload{
			Text:      sn.note.Text,
			CreatedAt: rfc3339Ptr(&sn.note.CreatedAt),
			UpdatedAt: rfc3339Ptr(sn.note.UpdatedAt),
		}
	}

	// The instance id reported to the service is the batch holding the
	// most recent selected note.
	instanceID := selected[len(selected)-1].batchID
	var instanceDate *string
	if batch, err := s.notes.GetBatchByDate(ctx, meetingID, s.clock.Now()); err == nil && batch != nil {
		instanceID = batch.ID
		d := batch.Date.UTC().Format(time.RFC3339)
		instanceDate = &d
	}

	agendaPayload := make([]secondary.AgendaItemPayload, len(agendaItems))
	for i, item := range agendaItems {
		agendaPayload[i] = secondary.AgendaItemPayload{
			ID:        item.ID,
			SeriesID:  meetingID,
			Text:      item.Text,
			Status:    string(item.Status),
			CreatedAt: rfc3339Ptr(&item.CreatedAt),
			ClosedAt:  rfc3339Ptr(item.ClosedAt),
		}
	}
	existingPayload := make([]secondary.ActionItemPayload, len(existing))
	for i, item := range existing {
		existingPayload[i] = secondary.ActionItemPayload{Text: item.Text}
	}

	return &secondary.ExtractionRequest{
		MeetingDetails: secondary.MeetingDetails{
			MeetingSeries: secondary.MeetingSeriesPayload{
				ID:        meeting.ID,
				Name:      meeting.Name,
				Type:      meeting.Type,
				CreatedAt: rfc3339Ptr(&meeting.CreatedAt),
			},
			MeetingInstance: secondary.MeetingInstancePayload{
				ID:       instanceID,
				SeriesID: meetingID,
				Date:     instanceDate,
				Notes:    notes,
			},
			AgendaItems:     agendaPayload,
			ExistingActions: existingPayload,
		},
	}, nil
}

// reconcile inserts the returned action items (deduplicated by exact text
// against the meeting's current items) and marks the echoed source notes
// completed. Returns the identities of the notes the service processed.
func (s *ExtractionServiceImpl) reconcile(ctx context.Context, meetingID string, result *secondary.ExtractionResult) ([]string, error) {
	existing, err := s.actions.ListByMeeting(ctx, meetingID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load existing actions: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, item := range existing {
		have[item.Text] = true
	}

	batchByNote, err := s.batchIndex(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	var matched []string
	completed := make(map[string]bool)
	for _, nwa := range result.NotesWithActions {
		created := ""
		if nwa.Note.CreatedAt != nil {
			created = *nwa.Note.CreatedAt
		}
		noteID := extraction.NoteIDFromWire(nwa.Note.Text, created)
		matched = append(matched, noteID)
		completed[noteID] = true

		for _, action := range nwa.ActionItems {
			if have[action.Text] {
				continue
			}
			id, err := s.actions.GetNextID(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to generate action ID: %w", err)
			}
			inserted, err := s.actions.InsertUnique(ctx, &models.ActionItem{
				ID:        id,
				MeetingID: meetingID,
				BatchID:   batchByNote[noteID],
				Text:      action.Text,
				Status:    models.ActionOpen,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to insert action item: %w", err)
			}
			if inserted {
				have[action.Text] = true
			}
		}
	}

	if err := s.markNotes(ctx, meetingID, completed, models.NoteCompleted); err != nil {
		return nil, err
	}
	return matched, nil
}

// batchIndex maps note identities to the batch containing them.
func (s *ExtractionServiceImpl) batchIndex(ctx context.Context, meetingID string) (map[string]string, error) {
	batches, err := s.notes.ListBatches(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	index := make(map[string]string)
	for _, batch := range batches {
		for _, note := range batch.Notes {
			index[extraction.NoteID(note.Text, note.CreatedAt)] = batch.ID
		}
	}
	return index, nil
}

// writeLedger updates the extraction status record per the ledger rules:
// processed ids grow by set union only, retry count resets on completed
// and increments on failed.
func (s *ExtractionServiceImpl) writeLedger(ctx context.Context, meetingID string, outcome models.ExtractionOutcome, processedIDs []string, lastError string) error {
	record, err := s.ledger.Get(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to read extraction status: %w", err)
	}
	if record == nil {
		record = &models.ExtractionStatus{MeetingID: meetingID}
	}

	record.Status = outcome
	record.ProcessedNoteIDs = extraction.UnionIDs(record.ProcessedNoteIDs, processedIDs)
	if outcome == models.ExtractionCompleted {
		now := s.clock.Now()
		record.LastExtractedAt = &now
		record.RetryCount = 0
		record.LastError = ""
	} else {
		record.RetryCount++
		record.LastError = lastError
	}

	if err := s.ledger.Put(ctx, record); err != nil {
		return fmt.Errorf("failed to write extraction status: %w", err)
	}
	return nil
}

func rfc3339Ptr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}
