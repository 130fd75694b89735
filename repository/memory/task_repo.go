package memory

import (
	"context"
	"sync"
	"time"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/repository"
)

// TaskRepository is an in-memory implementation backing the console binary
// and service-level tests. Tasks are kept in insertion order. Each instance
// owns its id counter; ids only ever grow and are never handed out twice,
// no matter how many deletions happen in between.
type TaskRepository struct {
	mu     sync.Mutex
	nextID int64
	tasks  []*domain.Task
}

// NewTaskRepository returns an empty store whose first task gets id 1.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{nextID: 1}
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := &domain.Task{
		ID:          r.nextID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   false,
		Category:    task.Category,
		Priority:    task.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.tasks = append(r.tasks, stored)

	copied := *stored
	return &copied, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id int64, owner string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := r.find(id, owner)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *TaskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []domain.Task
	for _, task := range r.tasks {
		if filter.Owner != "" && task.OwnerID != filter.Owner {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, id int64, owner string, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := r.find(id, owner)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	patch.Apply(task)
	task.UpdatedAt = time.Now()

	copied := *task
	return &copied, nil
}

func (r *TaskRepository) Delete(_ context.Context, id int64, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, task := range r.tasks {
		if task.ID != id {
			continue
		}
		if owner != "" && task.OwnerID != owner {
			break
		}
		r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
		return nil
	}
	return domain.ErrTaskNotFound
}

func (r *TaskRepository) ToggleComplete(_ context.Context, id int64, owner string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := r.find(id, owner)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()

	copied := *task
	return &copied, nil
}

// find assumes r.mu is held. An empty owner matches any task.
func (r *TaskRepository) find(id int64, owner string) *domain.Task {
	for _, task := range r.tasks {
		if task.ID != id {
			continue
		}
		if owner != "" && task.OwnerID != owner {
			return nil
		}
		return task
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
