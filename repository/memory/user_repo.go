package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/repository"
)

// UserRepository keeps accounts in memory. It backs the auth service tests
// and any deployment that does not need durable accounts.
type UserRepository struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return domain.ErrEmailTaken
	}

	copied := *user
	r.byID[user.ID] = &copied
	r.byEmail[key] = &copied
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ repository.UserRepository = (*UserRepository)(nil)
