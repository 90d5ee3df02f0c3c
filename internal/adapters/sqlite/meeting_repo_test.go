package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/minutes/internal/adapters/sqlite"
	"github.com/example/minutes/internal/models"
)

func TestMeetingRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMeetingRepository(db)
	ctx := context.Background()

	meeting := &models.Meeting{ID: "MEET-001", Name: "Platform sync", Type: models.MeetingOneOnOne}
	if err := repo.Create(ctx, meeting); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "MEET-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Name != "Platform sync" || retrieved.Type != models.MeetingOneOnOne {
		t.Errorf("meeting did not round-trip: %+v", retrieved)
	}
}

func TestMeetingRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMeetingRepository(db)

	if _, err := repo.GetByID(context.Background(), "MEET-404"); err == nil {
		t.Fatal("expected missing meeting to error")
	}
}

func TestMeetingRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMeetingRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "MEET-001" {
		t.Errorf("expected MEET-001, got %s", id)
	}

	repo.Create(ctx, &models.Meeting{ID: id, Name: "First", Type: models.MeetingAdhoc})
	id, _ = repo.GetNextID(ctx)
	if id != "MEET-002" {
		t.Errorf("expected MEET-002, got %s", id)
	}
}

func TestMeetingRepository_Delete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMeetingRepository(db)
	ctx := context.Background()

	repo.Create(ctx, &models.Meeting{ID: "MEET-001", Name: "Platform sync", Type: models.MeetingRecurring})
	seedBatch(t, db, "batch-1", "MEET-001", "2025-06-01")
	if _, err := db.Exec("INSERT INTO action_items (id, meeting_id, text) VALUES ('ACT-001', 'MEET-001', 'File ticket')"); err != nil {
		t.Fatalf("failed to seed action: %v", err)
	}
	if _, err := db.Exec("INSERT INTO extraction_status (meeting_id, status) VALUES ('MEET-001', 'completed')"); err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}

	if err := repo.Delete(ctx, "MEET-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int
	for _, table := range []string{"note_batches", "action_items", "extraction_status"} {
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected %s rows to cascade, got %d", table, count)
		}
	}
}

func TestMeetingRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMeetingRepository(db)
	ctx := context.Background()

	repo.Create(ctx, &models.Meeting{ID: "MEET-001", Name: "First", Type: models.MeetingRecurring})
	repo.Create(ctx, &models.Meeting{ID: "MEET-002", Name: "Second", Type: models.MeetingAdhoc})

	meetings, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(meetings) != 2 {
		t.Errorf("expected 2 meetings, got %d", len(meetings))
	}
}
