package repository

import (
	"context"

	"github.com/todoforge/backend/domain"
)

// TaskFilter scopes reads. An empty Owner means no ownership scoping
// (the single-user store).
type TaskFilter struct {
	Owner string
}

// TaskRepository is the sole authority for task identity and persistence.
// Ids are assigned once at creation, strictly increasing, and never reused
// after deletion. Every owner argument acts as a query predicate: a task
// owned by someone else behaves exactly like a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id int64, owner string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id int64, owner string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64, owner string) error
	ToggleComplete(ctx context.Context, id int64, owner string) (*domain.Task, error)
}
