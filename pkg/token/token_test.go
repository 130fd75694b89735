package token

import (
	"testing"
	"time"
)

func newManager(ttl time.Duration) *Manager {
	return NewManager(Config{Secret: "test-secret", Issuer: "test", TTL: ttl})
}

func TestSignAndVerify(t *testing.T) {
	m := newManager(time.Hour)

	signed, err := m.Sign("session-1", "user-1", "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ID != "session-1" {
		t.Errorf("ID = %q, want %q", claims.ID, "session-1")
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@example.com")
	}
	if claims.Issuer != "test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "test")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := newManager(time.Hour).Sign("session-1", "user-1", "", "")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	other := NewManager(Config{Secret: "different-secret", TTL: time.Hour})
	if _, err := other.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	// Built directly so the constructor's TTL default does not kick in.
	m := &Manager{cfg: Config{Secret: "test-secret", TTL: -time.Minute}}

	signed, err := m.Sign("session-1", "user-1", "", "")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if _, err := m.Verify(signed); err != ErrExpiredToken {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	m := newManager(time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Verify(raw); err != ErrInvalidToken {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestVerify_EmptySubjectRejected(t *testing.T) {
	m := newManager(time.Hour)

	signed, err := m.Sign("session-1", "", "", "")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if _, err := m.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestNewManager_DefaultTTL(t *testing.T) {
	m := NewManager(Config{Secret: "s"})
	if got, want := m.TTL(), 30*24*time.Hour; got != want {
		t.Errorf("TTL() = %v, want %v", got, want)
	}
}
