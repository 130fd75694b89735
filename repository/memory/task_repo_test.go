package memory

import (
	"context"
	"testing"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/repository"
)

func newTask(title string) *domain.Task {
	return &domain.Task{
		Title:    title,
		Category: domain.DefaultCategory,
		Priority: domain.DefaultPriority,
	}
}

func TestTaskRepository_IDsStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	var lastID int64
	for i := 0; i < 5; i++ {
		task, err := repo.Create(ctx, newTask("task"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if task.ID <= lastID {
			t.Fatalf("id %d not greater than previous %d", task.ID, lastID)
		}
		lastID = task.ID
	}
}

func TestTaskRepository_IDsNeverReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		task, err := repo.Create(ctx, newTask("task"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("id %d handed out twice", task.ID)
		}
		seen[task.ID] = true

		// Interleave deletions to tempt the counter into reuse.
		if i%2 == 0 {
			if err := repo.Delete(ctx, task.ID, ""); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
		}
	}
}

func TestTaskRepository_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	task, err := repo.Create(ctx, newTask("doomed"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, task.ID, ""); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, task.ID, ""); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("GetByID() after delete = %v, want not-found", err)
	}
	if err := repo.Delete(ctx, task.ID, ""); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("second Delete() = %v, want not-found", err)
	}
}

func TestTaskRepository_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := repo.Create(ctx, newTask(title)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tasks, err := repo.List(ctx, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != len(titles) {
		t.Fatalf("List() returned %d tasks, want %d", len(tasks), len(titles))
	}
	for i, task := range tasks {
		if task.Title != titles[i] {
			t.Errorf("tasks[%d].Title = %q, want %q", i, task.Title, titles[i])
		}
	}
}

func TestTaskRepository_OwnershipIsAFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	mine := newTask("mine")
	mine.OwnerID = "alice"
	created, err := repo.Create(ctx, mine)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A different owner must see not-found, not a permission error.
	if _, err := repo.GetByID(ctx, created.ID, "bob"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("GetByID() as other owner = %v, want not-found", err)
	}
	if err := repo.Delete(ctx, created.ID, "bob"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("Delete() as other owner = %v, want not-found", err)
	}
	if _, err := repo.ToggleComplete(ctx, created.ID, "bob"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("ToggleComplete() as other owner = %v, want not-found", err)
	}

	tasks, err := repo.List(ctx, repository.TaskFilter{Owner: "bob"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("List() as other owner returned %d tasks, want 0", len(tasks))
	}

	if _, err := repo.GetByID(ctx, created.ID, "alice"); err != nil {
		t.Errorf("GetByID() as owner error = %v", err)
	}
}

func TestTaskRepository_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	seed := newTask("original")
	seed.Description = "keep me"
	created, err := repo.Create(ctx, seed)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "renamed"
	updated, err := repo.Update(ctx, created.ID, "", domain.TaskPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("Title = %q, want %q", updated.Title, "renamed")
	}
	if updated.Description != "keep me" {
		t.Errorf("Description = %q, want untouched %q", updated.Description, "keep me")
	}

	// Explicitly empty description is a real update, unlike an absent one.
	empty := ""
	updated, err = repo.Update(ctx, created.ID, "", domain.TaskPatch{Description: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Description != "" {
		t.Errorf("Description = %q, want empty", updated.Description)
	}
	if updated.Title != "renamed" {
		t.Errorf("Title = %q, want untouched %q", updated.Title, "renamed")
	}
}

func TestTaskRepository_EmptyPatchLeavesFieldsUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	seed := newTask("stable")
	seed.Description = "unchanged"
	created, err := repo.Create(ctx, seed)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, "", domain.TaskPatch{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != created.Title || updated.Description != created.Description ||
		updated.Completed != created.Completed || updated.Category != created.Category ||
		updated.Priority != created.Priority {
		t.Errorf("empty patch changed fields: %+v vs %+v", updated, created)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards")
	}
}

func TestTaskRepository_ToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	created, err := repo.Create(ctx, newTask("flip me"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Completed {
		t.Fatal("new task should start incomplete")
	}

	once, err := repo.ToggleComplete(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	if !once.Completed {
		t.Error("first toggle should complete the task")
	}

	twice, err := repo.ToggleComplete(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	if twice.Completed {
		t.Error("second toggle should return the task to incomplete")
	}
}
