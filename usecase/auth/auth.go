// Package auth resolves caller identities: registration, credential
// verification and bearer-token issuance.
package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/pkg/password"
	"github.com/todoforge/backend/pkg/token"
	"github.com/todoforge/backend/repository"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes, so longer inputs are rejected.
	maxPasswordLen = 72
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   *password.Hasher
	tokens   *token.Manager
	logger   *zap.Logger
}

// New wires the auth service. The session repository may be nil; login and
// logout then skip session bookkeeping.
func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher *password.Hasher,
	tokens *token.Manager,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account, storing only the password digest.
func (uc *UseCase) Register(ctx context.Context, email, name, pass string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("invalid email address")
	}
	if len(pass) < minPasswordLen {
		return nil, domain.Invalid("password must be at least 6 characters")
	}
	if len(pass) > maxPasswordLen {
		return nil, domain.Invalid("password must be at most 72 characters")
	}

	digest, err := uc.hasher.Hash(pass)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           strings.TrimSpace(name),
		HashedPassword: digest,
		IsActive:       true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credential and issues a signed token. Unknown email and
// wrong password collapse into the same generic unauthorized error.
func (uc *UseCase) Login(ctx context.Context, email, pass string) (string, *domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !uc.hasher.Verify(user.HashedPassword, pass) {
		return "", nil, domain.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	signed, err := uc.tokens.Sign(sessionID, user.ID, user.Email, user.Name)
	if err != nil {
		return "", nil, domain.WrapError(domain.ErrCodeInternal, "failed to sign token", err)
	}

	if uc.sessions != nil {
		session := &domain.Session{
			ID:        sessionID,
			UserID:    user.ID,
			Email:     user.Email,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(uc.tokens.TTL()),
		}
		if err := uc.sessions.Save(ctx, session); err != nil {
			// The token is already valid on its own; a missing session
			// record only loses logout bookkeeping.
			uc.logger.Warn("failed to save session", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return signed, user, nil
}

// CurrentUser resolves the account behind a bearer token. With session
// bookkeeping enabled, a session revoked by logout or already past its
// expiry makes the token unusable here even though task routes, which
// check signature and expiry only, would still accept it.
func (uc *UseCase) CurrentUser(ctx context.Context, bearer string) (*domain.User, error) {
	if bearer == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := uc.tokens.Verify(bearer)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if uc.sessions != nil {
		session, err := uc.sessions.Get(ctx, claims.ID)
		if err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, err
		}
		if session.IsExpired(time.Now()) {
			return nil, domain.ErrUnauthorized
		}
	}

	user, err := uc.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session named by the token, when one can be resolved.
// It never fails: clients drop the token regardless.
func (uc *UseCase) Logout(ctx context.Context, bearer string) {
	if uc.sessions == nil || bearer == "" {
		return
	}
	claims, err := uc.tokens.Verify(bearer)
	if err != nil {
		return
	}
	if err := uc.sessions.Delete(ctx, claims.ID); err != nil {
		uc.logger.Warn("failed to revoke session", zap.String("session_id", claims.ID), zap.Error(err))
	}
}
