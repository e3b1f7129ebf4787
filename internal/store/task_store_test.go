package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ssta/todo/internal/model"
	"github.com/ssta/todo/internal/store"
	"github.com/ssta/todo/tests/testutil"
)

func TestSaveInsertAssignsIDAndTimestamps(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, model.TaskItem{Description: "write spec"})
	if err != nil {
		t.Fatalf("saving: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if saved.Status != model.StatusTodo {
		t.Errorf("expected default status TODO, got %s", saved.Status)
	}
	if saved.CreatedDate.IsZero() || saved.UpdatedDate.IsZero() {
		t.Fatal("expected both timestamps to be set")
	}
	if !saved.CreatedDate.Equal(saved.UpdatedDate) {
		t.Errorf("expected created == updated on insert, got %v vs %v",
			saved.CreatedDate, saved.UpdatedDate)
	}
}

func TestSaveUpdatePreservesCreatedDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, model.TaskItem{Description: "first"})
	if err != nil {
		t.Fatalf("saving: %v", err)
	}

	time.Sleep(2 * time.Millisecond)

	saved.Description = "second"
	updated, err := s.Save(ctx, saved)
	if err != nil {
		t.Fatalf("updating: %v", err)
	}
	if updated.ID != saved.ID {
		t.Errorf("id changed on update: %d -> %d", saved.ID, updated.ID)
	}
	if updated.Description != "second" {
		t.Errorf("expected updated description, got %q", updated.Description)
	}
	if !updated.CreatedDate.Equal(saved.CreatedDate) {
		t.Errorf("created_date changed on update: %v -> %v",
			saved.CreatedDate, updated.CreatedDate)
	}
	if !updated.UpdatedDate.After(saved.UpdatedDate) {
		t.Errorf("expected updated_date to advance: %v -> %v",
			saved.UpdatedDate, updated.UpdatedDate)
	}
}

func TestSaveUpdateUnknownIDReturnsNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Save(context.Background(), model.TaskItem{ID: 999, Description: "ghost"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	priority := 2
	due := time.Date(2024, 6, 15, 13, 45, 30, 0, time.UTC)
	saved, err := s.Save(ctx, model.TaskItem{
		Description:   "review patch",
		DetailedNotes: "focus on the parser",
		Status:        model.StatusInProgress,
		Priority:      &priority,
		DueDate:       &due,
	})
	if err != nil {
		t.Fatalf("saving: %v", err)
	}

	got, err := s.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("finding: %v", err)
	}
	if got.Description != "review patch" || got.DetailedNotes != "focus on the parser" {
		t.Errorf("unexpected text fields: %+v", got)
	}
	if got.Status != model.StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", got.Status)
	}
	if got.Priority == nil || *got.Priority != 2 {
		t.Errorf("expected priority 2, got %v", got.Priority)
	}
	// Due dates keep calendar precision only.
	wantDue := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if got.DueDate == nil || !got.DueDate.Equal(wantDue) {
		t.Errorf("expected due date %v, got %v", wantDue, got.DueDate)
	}
}

func TestFindByIDUnknownReturnsNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.FindByID(context.Background(), 42)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExistsByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, model.TaskItem{Description: "exists"})
	if err != nil {
		t.Fatalf("saving: %v", err)
	}

	exists, err := s.ExistsByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("checking: %v", err)
	}
	if !exists {
		t.Error("expected item to exist")
	}

	exists, err = s.ExistsByID(ctx, saved.ID+1)
	if err != nil {
		t.Fatalf("checking: %v", err)
	}
	if exists {
		t.Error("expected item to not exist")
	}
}

func TestFindByStatusIn(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, st := range model.AllStatuses() {
		if _, err := s.Save(ctx, model.TaskItem{Description: "task", Status: st}); err != nil {
			t.Fatalf("saving %s: %v", st, err)
		}
	}

	items, err := s.FindByStatusIn(ctx, []model.Status{model.StatusTodo, model.StatusComplete})
	if err != nil {
		t.Fatalf("querying: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Status == model.StatusInProgress {
			t.Errorf("IN_PROGRESS item leaked into the result")
		}
	}

	empty, err := s.FindByStatusIn(ctx, nil)
	if err != nil {
		t.Fatalf("querying empty set: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty result for empty status set, got %d items", len(empty))
	}
}

func TestDeleteByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, model.TaskItem{Description: "doomed"})
	if err != nil {
		t.Fatalf("saving: %v", err)
	}

	if err := s.DeleteByID(ctx, saved.ID); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if _, err := s.FindByID(ctx, saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteByID(ctx, saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestTransactRollsBackOnError(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Transact(ctx, func(st store.Store) error {
		if _, err := st.Save(ctx, model.TaskItem{Description: "inside tx"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	items, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("finding all: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected rollback to discard the insert, found %d items", len(items))
	}
}

func TestTransactCommits(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.Transact(ctx, func(st store.Store) error {
		_, err := st.Save(ctx, model.TaskItem{Description: "committed"})
		return err
	})
	if err != nil {
		t.Fatalf("transacting: %v", err)
	}

	items, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("finding all: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after commit, got %d", len(items))
	}
}
