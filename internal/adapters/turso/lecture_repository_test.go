package turso_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"lectern/internal/adapters/turso"
	"lectern/internal/domain"
)

func seedLecture(t *testing.T, db *sql.DB, id, userID, title, status, createdAt string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO lectures (id, user_id, title, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, userID, title, status, createdAt, createdAt)
	if err != nil {
		t.Fatalf("Failed to seed lecture: %v", err)
	}
}

func TestLectureRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)
	ctx := context.Background()

	audioPath := "rec-42"
	id, err := repo.CreateLecture(ctx, "user-1", domain.LectureDraft{
		Title:     "Linear Algebra, week 3",
		AudioPath: &audioPath,
	})
	if err != nil {
		t.Fatalf("CreateLecture failed: %v", err)
	}
	if id == "" {
		t.Fatal("CreateLecture returned empty id")
	}

	lec, err := repo.GetLecture(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("GetLecture failed: %v", err)
	}
	if lec == nil {
		t.Fatal("GetLecture returned nil for created lecture")
	}
	if lec.Title != "Linear Algebra, week 3" {
		t.Errorf("expected title %q, got %q", "Linear Algebra, week 3", lec.Title)
	}
	if lec.Status != domain.StatusProcessing {
		t.Errorf("expected status %q, got %q", domain.StatusProcessing, lec.Status)
	}
	if lec.AudioPath == nil || *lec.AudioPath != audioPath {
		t.Errorf("expected audio path %q, got %v", audioPath, lec.AudioPath)
	}
	if lec.Transcript != nil {
		t.Errorf("expected nil transcript, got %v", *lec.Transcript)
	}
	if lec.CreatedAt.IsZero() || lec.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestLectureRepository_GetUnknownReturnsNil(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)

	lec, err := repo.GetLecture(context.Background(), "user-1", "does-not-exist")
	if err != nil {
		t.Fatalf("GetLecture failed: %v", err)
	}
	if lec != nil {
		t.Errorf("expected nil for unknown lecture, got %+v", lec)
	}
}

func TestLectureRepository_UserScoping(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)
	ctx := context.Background()

	seedLecture(t, db, "lec-1", "user-1", "Mine", "completed", "2026-01-10T10:00:00Z")

	lec, err := repo.GetLecture(ctx, "user-2", "lec-1")
	if err != nil {
		t.Fatalf("GetLecture failed: %v", err)
	}
	if lec != nil {
		t.Error("expected another user's lecture to be invisible")
	}

	if err := repo.DeleteLecture(ctx, "user-2", "lec-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting another user's lecture, got %v", err)
	}

	title := "Hijacked"
	err = repo.UpdateLecture(ctx, "user-2", "lec-1", domain.LectureUpdate{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound updating another user's lecture, got %v", err)
	}
}

func TestLectureRepository_ListOrdering(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)
	ctx := context.Background()

	seedLecture(t, db, "lec-old", "user-1", "Oldest", "completed", "2026-01-10T10:00:00Z")
	seedLecture(t, db, "lec-new", "user-1", "Newest", "processing", "2026-01-12T10:00:00Z")
	seedLecture(t, db, "lec-mid", "user-1", "Middle", "failed", "2026-01-11T10:00:00Z")
	seedLecture(t, db, "lec-other", "user-2", "Not mine", "completed", "2026-01-13T10:00:00Z")

	lectures, err := repo.GetUserLectures(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserLectures failed: %v", err)
	}
	if len(lectures) != 3 {
		t.Fatalf("expected 3 lectures, got %d", len(lectures))
	}
	wantOrder := []string{"lec-new", "lec-mid", "lec-old"}
	for i, want := range wantOrder {
		if lectures[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, lectures[i].ID)
		}
	}
}

func TestLectureRepository_ListEmpty(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)

	lectures, err := repo.GetUserLectures(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetUserLectures failed: %v", err)
	}
	if lectures == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(lectures) != 0 {
		t.Errorf("expected 0 lectures, got %d", len(lectures))
	}
}

func TestLectureRepository_Update(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)
	ctx := context.Background()

	seedLecture(t, db, "lec-1", "user-1", "Draft title", "processing", "2026-01-10T10:00:00Z")

	transcript := "Today we cover eigenvalues."
	status := domain.StatusCompleted
	err := repo.UpdateLecture(ctx, "user-1", "lec-1", domain.LectureUpdate{
		Transcript: &transcript,
		Status:     &status,
	})
	if err != nil {
		t.Fatalf("UpdateLecture failed: %v", err)
	}

	lec, err := repo.GetLecture(ctx, "user-1", "lec-1")
	if err != nil {
		t.Fatalf("GetLecture failed: %v", err)
	}
	if lec.Status != domain.StatusCompleted {
		t.Errorf("expected status %q, got %q", domain.StatusCompleted, lec.Status)
	}
	if lec.Transcript == nil || *lec.Transcript != transcript {
		t.Errorf("expected transcript %q, got %v", transcript, lec.Transcript)
	}
	if lec.Title != "Draft title" {
		t.Errorf("title changed by partial update: %q", lec.Title)
	}
	if !lec.UpdatedAt.After(lec.CreatedAt) {
		t.Error("expected updated_at to advance past created_at")
	}
}

func TestLectureRepository_UpdateEmptyIsNoOp(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)

	// No fields set: nothing to write, not even for a missing row.
	err := repo.UpdateLecture(context.Background(), "user-1", "does-not-exist", domain.LectureUpdate{})
	if err != nil {
		t.Errorf("expected nil for empty update, got %v", err)
	}
}

func TestLectureRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLectureRepository(db)
	ctx := context.Background()

	seedLecture(t, db, "lec-1", "user-1", "Doomed", "completed", "2026-01-10T10:00:00Z")

	if err := repo.DeleteLecture(ctx, "user-1", "lec-1"); err != nil {
		t.Fatalf("DeleteLecture failed: %v", err)
	}

	lec, err := repo.GetLecture(ctx, "user-1", "lec-1")
	if err != nil {
		t.Fatalf("GetLecture failed: %v", err)
	}
	if lec != nil {
		t.Error("expected lecture to be gone after delete")
	}

	if err := repo.DeleteLecture(ctx, "user-1", "lec-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}
