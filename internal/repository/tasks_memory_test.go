package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

func newTask(title string, status models.Status) *models.Task {
	return &models.Task{Title: title, Status: status, Priority: models.PriorityMedium}
}

func TestMemoryStoreCreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()

	task := newTask("a", models.StatusPending)
	if err := store.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.ID == "" {
		t.Error("expected assigned ID")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("expected assigned timestamps")
	}
	if task.CreatedAt.After(task.UpdatedAt) {
		t.Error("created_at must not exceed updated_at")
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	store := NewMemoryTaskStore()
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()

	task := newTask("a", models.StatusPending)
	if err := store.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "b"
	now := task.CreatedAt.Add(time.Minute)
	updated, err := store.Update(ctx, task.ID, models.TaskPatch{Title: &title}, now)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "b" {
		t.Errorf("Title = %q, want b", updated.Title)
	}
	if updated.Status != models.StatusPending {
		t.Error("unset patch fields must keep their value")
	}
	if updated.CreatedAt != task.CreatedAt {
		t.Error("CreatedAt must be immutable")
	}
	if updated.CreatedAt.After(updated.UpdatedAt) {
		t.Error("created_at must not exceed updated_at after mutation")
	}

	if _, err := store.Update(ctx, "missing", models.TaskPatch{Title: &title}, now); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()

	first := newTask("a", models.StatusPending)
	second := newTask("b", models.StatusPending)
	store.Create(ctx, first)
	store.Create(ctx, second)

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Error("deleted task still readable")
	}
	if got, err := store.Get(ctx, second.ID); err != nil || got.Title != "b" {
		t.Errorf("survivor lookup = %+v, %v", got, err)
	}
	if err := store.Delete(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()

	pending := newTask("write report", models.StatusPending)
	done := newTask("ship release", models.StatusCompleted)
	store.Create(ctx, pending)
	store.Create(ctx, done)

	all, err := store.Find(ctx, models.TaskFilter{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != pending.ID {
		t.Error("expected insertion order")
	}

	filtered, err := store.Find(ctx, models.TaskFilter{Status: "pending", Search: "report"})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != pending.ID {
		t.Errorf("filtered = %+v, want only the pending report task", filtered)
	}
}

func TestMemoryStoreFindOverdue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	overdue := newTask("late", models.StatusPending)
	overdue.DueDate = &past
	doneLate := newTask("done late", models.StatusCompleted)
	doneLate.DueDate = &past
	upcoming := newTask("soon", models.StatusInProgress)
	upcoming.DueDate = &future
	store.Create(ctx, overdue)
	store.Create(ctx, doneLate)
	store.Create(ctx, upcoming)

	got, err := store.FindOverdue(ctx, now)
	if err != nil {
		t.Fatalf("FindOverdue() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != overdue.ID {
		t.Errorf("FindOverdue = %+v, want only the late pending task", got)
	}
}

func TestMemorySnapshotStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnapshotStore()

	for i, temp := range []float64{10, 11, 12} {
		snap := &models.WeatherSnapshot{City: "Oslo", Temperature: temp}
		snap.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := store.Save(ctx, snap); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if snap.ID == "" {
			t.Error("expected assigned snapshot ID")
		}
	}
	store.Save(ctx, &models.WeatherSnapshot{City: "Bergen", Temperature: 5})

	got, err := store.ListByCity(ctx, "Oslo", 2)
	if err != nil {
		t.Fatalf("ListByCity() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (limit)", len(got))
	}
	if got[0].Temperature != 12 || got[1].Temperature != 11 {
		t.Errorf("want newest first, got %+v", got)
	}
}
