package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken is returned when a token fails signature or structural checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token's validity window has passed.
	ErrExpiredToken = errors.New("token has expired")
)

// Config holds signing parameters.
type Config struct {
	Secret string
	Issuer string
	// TTL is the fixed validity window for issued tokens.
	TTL time.Duration
}

// Claims embeds the caller's identity in a signed token. Subject carries the
// user id and is the ownership key for every task operation.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 bearer tokens.
type Manager struct {
	cfg Config
}

// NewManager creates a Manager. A non-positive TTL defaults to 30 days.
func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	return &Manager{cfg: cfg}
}

// TTL returns the configured validity window.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

// Sign issues a token for the given subject. The id parameter becomes the
// jti claim and doubles as the session identifier.
func (m *Manager) Sign(id, subject, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    m.cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Verify checks signature and expiry and returns the embedded claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
