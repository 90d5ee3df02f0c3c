package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/minutes/internal/adapters/sqlite"
	"github.com/example/minutes/internal/models"
)

func TestNoteRepository_CreateBatch(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	batch := &models.NoteBatch{
		ID:        "batch-1",
		MeetingID: "MEET-001",
		Date:      testTime(0),
		Notes: []models.Note{
			{Text: "Ship v2", CreatedAt: testTime(0), Status: models.NoteUnprocessed},
			{Text: "Discuss roadmap", CreatedAt: testTime(10), Status: models.NoteUnprocessed},
		},
	}
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	retrieved, err := repo.GetBatchByDate(ctx, "MEET-001", testTime(0))
	if err != nil {
		t.Fatalf("GetBatchByDate failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected a batch")
	}
	if len(retrieved.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(retrieved.Notes))
	}
	if retrieved.Notes[0].Text != "Ship v2" || retrieved.Notes[1].Text != "Discuss roadmap" {
		t.Errorf("notes out of position order: %+v", retrieved.Notes)
	}
	if retrieved.Notes[0].Status != models.NoteUnprocessed {
		t.Errorf("expected unprocessed status, got %s", retrieved.Notes[0].Status)
	}
}

func TestNoteRepository_GetBatchByDate_Missing(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	repo := sqlite.NewNoteRepository(db)

	batch, err := repo.GetBatchByDate(context.Background(), "MEET-001", testTime(0))
	if err != nil {
		t.Fatalf("GetBatchByDate failed: %v", err)
	}
	if batch != nil {
		t.Errorf("expected nil for a day with no batch, got %+v", batch)
	}
}

func TestNoteRepository_ReplaceNotes(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	seedBatch(t, db, "batch-1", "", "")
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	first := []models.Note{
		{Text: "Ship v2", CreatedAt: testTime(0), Status: models.NoteUnprocessed},
	}
	if err := repo.ReplaceNotes(ctx, "batch-1", first); err != nil {
		t.Fatalf("ReplaceNotes failed: %v", err)
	}

	// Replace with a changed status and an extra note.
	updatedAt := testTime(60)
	second := []models.Note{
		{Text: "Ship v2", CreatedAt: testTime(0), UpdatedAt: &updatedAt, Status: models.NoteCompleted},
		{Text: "New note", CreatedAt: testTime(30), Status: models.NoteUnprocessed},
	}
	if err := repo.ReplaceNotes(ctx, "batch-1", second); err != nil {
		t.Fatalf("second ReplaceNotes failed: %v", err)
	}

	batch, err := repo.GetBatchByDate(ctx, "MEET-001", testTime(0))
	if err != nil {
		t.Fatalf("GetBatchByDate failed: %v", err)
	}
	if len(batch.Notes) != 2 {
		t.Fatalf("expected 2 notes after replace, got %d", len(batch.Notes))
	}
	if batch.Notes[0].Status != models.NoteCompleted {
		t.Errorf("expected completed status, got %s", batch.Notes[0].Status)
	}
	if batch.Notes[0].UpdatedAt == nil {
		t.Error("expected updated_at to round-trip")
	}
	if batch.Notes[1].UpdatedAt != nil {
		t.Error("expected nil updated_at for the untouched note")
	}
}

func TestNoteRepository_ListBatches_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	seedBatch(t, db, "batch-old", "MEET-001", "2025-05-30")
	seedBatch(t, db, "batch-new", "MEET-001", "2025-06-01")
	repo := sqlite.NewNoteRepository(db)

	batches, err := repo.ListBatches(context.Background(), "MEET-001")
	if err != nil {
		t.Fatalf("ListBatches failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if batches[0].ID != "batch-new" || batches[1].ID != "batch-old" {
		t.Errorf("expected newest day first, got %s then %s", batches[0].ID, batches[1].ID)
	}
}

func TestNoteRepository_ListAllBatches(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "MEET-001", "First")
	seedMeeting(t, db, "MEET-002", "Second")
	seedBatch(t, db, "batch-1", "MEET-001", "2025-06-01")
	seedBatch(t, db, "batch-2", "MEET-002", "2025-06-01")
	repo := sqlite.NewNoteRepository(db)

	batches, err := repo.ListAllBatches(context.Background())
	if err != nil {
		t.Fatalf("ListAllBatches failed: %v", err)
	}
	if len(batches) != 2 {
		t.Errorf("expected batches across meetings, got %d", len(batches))
	}
}

func TestNoteRepository_CreatedAtRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	created := testTime(0)
	batch := &models.NoteBatch{
		ID:        "batch-1",
		MeetingID: "MEET-001",
		Date:      created,
		Notes:     []models.Note{{Text: "Ship v2", CreatedAt: created, Status: models.NoteUnprocessed}},
	}
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	retrieved, err := repo.GetBatchByDate(ctx, "MEET-001", created)
	if err != nil {
		t.Fatalf("GetBatchByDate failed: %v", err)
	}
	if !retrieved.Notes[0].CreatedAt.Equal(created) {
		t.Errorf("created_at drifted: stored %v, got %v", created, retrieved.Notes[0].CreatedAt)
	}
	if retrieved.Date.Format("2006-01-02") != created.Format("2006-01-02") {
		t.Errorf("day drifted: %v vs %v", retrieved.Date, created)
	}
}

func TestNoteRepository_BatchDayReadBack(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatch(ctx, &models.NoteBatch{
		ID: "batch-1", MeetingID: "MEET-001", Date: testTime(0),
	}); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	// The day column comes back as a driver-converted time value; reads must
	// not choke on it.
	batch, err := repo.GetBatchByDate(ctx, "MEET-001", testTime(0))
	if err != nil {
		t.Fatalf("GetBatchByDate failed: %v", err)
	}
	if batch == nil {
		t.Fatal("expected the stored batch")
	}
	if got := batch.Date.Format("2006-01-02"); got != testTime(0).Format("2006-01-02") {
		t.Errorf("day did not round-trip: got %s", got)
	}

	batches, err := repo.ListAllBatches(ctx)
	if err != nil {
		t.Fatalf("ListAllBatches failed: %v", err)
	}
	if len(batches) != 1 {
		t.Errorf("expected 1 batch, got %d", len(batches))
	}
}

func TestNoteRepository_CascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	seedMeeting(t, db, "", "")
	seedBatch(t, db, "batch-1", "", "")
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	if err := repo.ReplaceNotes(ctx, "batch-1", []models.Note{
		{Text: "Ship v2", CreatedAt: time.Now(), Status: models.NoteUnprocessed},
	}); err != nil {
		t.Fatalf("ReplaceNotes failed: %v", err)
	}

	if _, err := db.Exec("DELETE FROM meetings WHERE id = 'MEET-001'"); err != nil {
		t.Fatalf("failed to delete meeting: %v", err)
	}

	batches, err := repo.ListAllBatches(ctx)
	if err != nil {
		t.Fatalf("ListAllBatches failed: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("expected batches to cascade with the meeting, got %d", len(batches))
	}
}
