// Package task validates input and orchestrates every task mutation.
// The store never validates; this service never persists directly.
package task

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/repository"
	"github.com/todoforge/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
	}
}

// CreateInput carries the fields of an add request before validation.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

func (uc *UseCase) CreateTask(ctx context.Context, owner string, in CreateInput) (*domain.Task, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(in.Description)
	if err != nil {
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.DefaultPriority
	}

	return uc.tasks.Create(ctx, &domain.Task{
		OwnerID:     owner,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
	})
}

func (uc *UseCase) GetTask(ctx context.Context, id int64, owner string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id, owner)
}

func (uc *UseCase) ListTasks(ctx context.Context, owner string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{Owner: owner})
}

// UpdateTask applies only the fields the patch supplies. Supplied fields are
// trimmed and validated first; nothing is persisted when any of them fails.
func (uc *UseCase) UpdateTask(ctx context.Context, id int64, owner string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		description, err := validateDescription(*patch.Description)
		if err != nil {
			return nil, err
		}
		patch.Description = &description
	}

	updated, err := uc.tasks.Update(ctx, id, owner, patch)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.bufferPatch(ctx, id, owner, patch) {
			return ackTask(id, owner, patch), nil
		}
		return nil, err
	}
	return updated, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64, owner string) error {
	if err := uc.tasks.Delete(ctx, id, owner); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		if uc.bufferDelete(ctx, id, owner) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) ToggleTask(ctx context.Context, id int64, owner string) (*domain.Task, error) {
	// Never buffered: flipping needs the stored value.
	return uc.tasks.ToggleComplete(ctx, id, owner)
}

func (uc *UseCase) bufferPatch(ctx context.Context, id int64, owner string, patch domain.TaskPatch) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskPatch(ctx, id, owner, patch); err != nil {
		uc.logger.Error("failed to buffer task update", zap.Int64("task_id", id), zap.Error(err))
		return false
	}
	uc.logger.Warn("task update buffered", zap.Int64("task_id", id))
	return true
}

func (uc *UseCase) bufferDelete(ctx context.Context, id int64, owner string) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskDelete(ctx, id, owner); err != nil {
		uc.logger.Error("failed to buffer task delete", zap.Int64("task_id", id), zap.Error(err))
		return false
	}
	uc.logger.Warn("task delete buffered", zap.Int64("task_id", id))
	return true
}

// ackTask is the optimistic response for a buffered update: the patch applied
// to a task skeleton, the way the store will once it is reachable again.
func ackTask(id int64, owner string, patch domain.TaskPatch) *domain.Task {
	task := &domain.Task{ID: id, OwnerID: owner, UpdatedAt: time.Now()}
	patch.Apply(task)
	return task
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domain.Invalid("title is required")
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLen {
		return "", domain.Invalid("title must be 200 characters or less")
	}
	return title, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
		return "", domain.Invalid("description must be 1000 characters or less")
	}
	return description, nil
}
