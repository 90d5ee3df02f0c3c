package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/secondary"
)

// mockMeetingRepository implements secondary.MeetingRepository for testing.
type mockMeetingRepository struct {
	mu       sync.Mutex
	meetings map[string]*models.Meeting
	nextID   int
}

func newMockMeetingRepository() *mockMeetingRepository {
	return &mockMeetingRepository{meetings: make(map[string]*models.Meeting), nextID: 1}
}

func (m *mockMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if meeting, ok := m.meetings[id]; ok {
		return meeting, nil
	}
	return nil, errors.New("not found")
}

func (m *mockMeetingRepository) List(ctx context.Context) ([]*models.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Meeting
	for _, meeting := range m.meetings {
		result = append(result, meeting)
	}
	return result, nil
}

func (m *mockMeetingRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.meetings, id)
	return nil
}

func (m *mockMeetingRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("MEET-%03d", id), nil
}

// mockNoteRepository implements secondary.NoteRepository for testing.
type mockNoteRepository struct {
	mu      sync.Mutex
	batches map[string]*models.NoteBatch
	order   []string

	replaceErr error
}

func newMockNoteRepository() *mockNoteRepository {
	return &mockNoteRepository{batches: make(map[string]*models.NoteBatch)}
}

func (m *mockNoteRepository) CreateBatch(ctx context.Context, batch *models.NoteBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *batch
	copied.Notes = append([]models.Note{}, batch.Notes...)
	m.batches[batch.ID] = &copied
	m.order = append(m.order, batch.ID)
	return nil
}

func (m *mockNoteRepository) GetBatchByDate(ctx context.Context, meetingID string, day time.Time) (*models.NoteBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := day.Format("2006-01-02")
	for _, id := range m.order {
		batch := m.batches[id]
		if batch.MeetingID == meetingID && batch.Date.Format("2006-01-02") == want {
			return m.snapshot(batch), nil
		}
	}
	return nil, nil
}

func (m *mockNoteRepository) ListBatches(ctx context.Context, meetingID string) ([]*models.NoteBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.NoteBatch
	for _, id := range m.order {
		if m.batches[id].MeetingID == meetingID {
			result = append(result, m.snapshot(m.batches[id]))
		}
	}
	return result, nil
}

func (m *mockNoteRepository) ListAllBatches(ctx context.Context) ([]*models.NoteBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.NoteBatch
	for _, id := range m.order {
		result = append(result, m.snapshot(m.batches[id]))
	}
	return result, nil
}

func (m *mockNoteRepository) ReplaceNotes(ctx context.Context, batchID string, notes []models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	batch, ok := m.batches[batchID]
	if !ok {
		return errors.New("batch not found")
	}
	batch.Notes = append([]models.Note{}, notes...)
	return nil
}

func (m *mockNoteRepository) snapshot(batch *models.NoteBatch) *models.NoteBatch {
	copied := *batch
	copied.Notes = append([]models.Note{}, batch.Notes...)
	return &copied
}

// noteStatuses returns the statuses of one batch in position order.
func (m *mockNoteRepository) noteStatuses(batchID string) []models.NoteStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch := m.batches[batchID]
	statuses := make([]models.NoteStatus, len(batch.Notes))
	for i, note := range batch.Notes {
		statuses[i] = note.Status
	}
	return statuses
}

// mockActionRepository implements secondary.ActionRepository for testing.
type mockActionRepository struct {
	mu     sync.Mutex
	items  []*models.ActionItem
	nextID int
}

func newMockActionRepository() *mockActionRepository {
	return &mockActionRepository{nextID: 1}
}

func (m *mockActionRepository) InsertUnique(ctx context.Context, item *models.ActionItem) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.MeetingID == item.MeetingID && existing.Text == item.Text {
			return false, nil
		}
	}
	m.items = append(m.items, item)
	return true, nil
}

func (m *mockActionRepository) ListByMeeting(ctx context.Context, meetingID string, filter models.ActionStatus) ([]*models.ActionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.ActionItem
	for _, item := range m.items {
		if item.MeetingID != meetingID {
			continue
		}
		if filter != "" && item.Status != filter {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (m *mockActionRepository) ListAll(ctx context.Context, filter models.ActionStatus) ([]*models.ActionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.ActionItem
	for _, item := range m.items {
		if filter != "" && item.Status != filter {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (m *mockActionRepository) Toggle(ctx context.Context, id string, now time.Time) (*models.ActionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID != id {
			continue
		}
		if item.Status == models.ActionOpen {
			item.Status = models.ActionClosed
			item.ClosedAt = &now
		} else {
			item.Status = models.ActionOpen
			item.ClosedAt = nil
		}
		return item, nil
	}
	return nil, errors.New("not found")
}

func (m *mockActionRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("ACT-%03d", id), nil
}

func (m *mockActionRepository) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []string
	for _, item := range m.items {
		result = append(result, item.Text)
	}
	return result
}

// mockAgendaRepository implements secondary.AgendaRepository for testing.
type mockAgendaRepository struct {
	mu     sync.Mutex
	items  []*models.AgendaItem
	nextID int
}

func newMockAgendaRepository() *mockAgendaRepository {
	return &mockAgendaRepository{nextID: 1}
}

func (m *mockAgendaRepository) Create(ctx context.Context, item *models.AgendaItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return nil
}

func (m *mockAgendaRepository) List(ctx context.Context, meetingID string) ([]*models.AgendaItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.AgendaItem
	for _, item := range m.items {
		if item.MeetingID == meetingID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockAgendaRepository) Close(ctx context.Context, id string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			item.Status = models.AgendaClosed
			item.ClosedAt = &now
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockAgendaRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("AGD-%03d", id), nil
}

// mockLedgerRepository implements secondary.LedgerRepository for testing.
type mockLedgerRepository struct {
	mu      sync.Mutex
	records map[string]*models.ExtractionStatus
}

func newMockLedgerRepository() *mockLedgerRepository {
	return &mockLedgerRepository{records: make(map[string]*models.ExtractionStatus)}
}

func (m *mockLedgerRepository) Get(ctx context.Context, meetingID string) (*models.ExtractionStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[meetingID]
	if !ok {
		return nil, nil
	}
	copied := *record
	copied.ProcessedNoteIDs = append([]string{}, record.ProcessedNoteIDs...)
	return &copied, nil
}

func (m *mockLedgerRepository) Put(ctx context.Context, status *models.ExtractionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *status
	copied.ProcessedNoteIDs = append([]string{}, status.ProcessedNoteIDs...)
	m.records[status.MeetingID] = &copied
	return nil
}

func (m *mockLedgerRepository) Delete(ctx context.Context, meetingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, meetingID)
	return nil
}

// mockPendingRepository implements secondary.PendingRepository for testing.
type mockPendingRepository struct {
	mu      sync.Mutex
	markers map[string]time.Time
}

func newMockPendingRepository() *mockPendingRepository {
	return &mockPendingRepository{markers: make(map[string]time.Time)}
}

func (m *mockPendingRepository) Put(ctx context.Context, meetingID string, lastNoteTime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers[meetingID] = lastNoteTime
	return nil
}

func (m *mockPendingRepository) Get(ctx context.Context, meetingID string) (*models.PendingExtraction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.markers[meetingID]
	if !ok {
		return nil, nil
	}
	return &models.PendingExtraction{MeetingID: meetingID, LastNoteTime: t}, nil
}

func (m *mockPendingRepository) List(ctx context.Context) ([]*models.PendingExtraction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.PendingExtraction
	for id, t := range m.markers {
		result = append(result, &models.PendingExtraction{MeetingID: id, LastNoteTime: t})
	}
	return result, nil
}

func (m *mockPendingRepository) Delete(ctx context.Context, meetingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.markers, meetingID)
	return nil
}

func (m *mockPendingRepository) has(meetingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.markers[meetingID]
	return ok
}

// fakeGate implements secondary.AccessGate with a fixed decision.
type fakeGate struct {
	decision secondary.AccessDecision
	err      error
}

func (g *fakeGate) Check(ctx context.Context) (secondary.AccessDecision, error) {
	return g.decision, g.err
}

func allowAll() *fakeGate {
	return &fakeGate{decision: secondary.AccessDecision{HasAccess: true, Reason: "license"}}
}

// fakeRemote implements secondary.RemoteExtractor via a reply function.
type fakeRemote struct {
	mu       sync.Mutex
	requests []*secondary.ExtractionRequest
	reply    func(call int, req *secondary.ExtractionRequest) (*secondary.ExtractionResult, error)
}

func (r *fakeRemote) ExtractActions(ctx context.Context, req *secondary.ExtractionRequest) (*secondary.ExtractionResult, error) {
	r.mu.Lock()
	call := len(r.requests)
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	return r.reply(call, req)
}

func (r *fakeRemote) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// resultFor builds a success response echoing the request's notes, each
// yielding the given action texts in order (cycled when shorter).
func resultFor(req *secondary.ExtractionRequest, actionTexts ...string) *secondary.ExtractionResult {
	notes := req.MeetingDetails.MeetingInstance.Notes
	out := make([]secondary.NoteWithActions, len(notes))
	for i, note := range notes {
		nwa := secondary.NoteWithActions{Note: note}
		if len(actionTexts) > 0 {
			nwa.ActionItems = []secondary.ActionItemPayload{{Text: actionTexts[i%len(actionTexts)]}}
		}
		out[i] = nwa
	}
	return &secondary.ExtractionResult{
		SeriesID:         req.MeetingDetails.MeetingSeries.ID,
		MeetingID:        req.MeetingDetails.MeetingInstance.ID,
		NotesWithActions: out,
	}
}

// statusRecorder implements secondary.StatusSink, recording every update.
type statusRecorder struct {
	mu      sync.Mutex
	updates []secondary.ExtractionState
}

func (s *statusRecorder) Update(meetingID string, state secondary.ExtractionState, progress *secondary.SweepProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, state)
}

func (s *statusRecorder) states() []secondary.ExtractionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]secondary.ExtractionState{}, s.updates...)
}

// fakeTimer is an armed fakeClock callback.
type fakeTimer struct {
	clock   *fakeClock
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock is a manual clock: Sleep records the delay and advances time
// without blocking, AfterFunc arms timers fired explicitly via fire().
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) secondary.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	c.mu.Unlock()
	return ctx.Err()
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fire runs every armed, unstopped timer callback synchronously.
func (c *fakeClock) fire() {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.timers = nil
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func (c *fakeClock) armedTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *fakeClock) sleptDelays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration{}, c.sleeps...)
}
