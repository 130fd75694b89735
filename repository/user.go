package repository

import (
	"context"

	"github.com/todoforge/backend/domain"
)

type UserRepository interface {
	// Create persists a new account and returns domain.ErrEmailTaken when
	// the email is already registered.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
