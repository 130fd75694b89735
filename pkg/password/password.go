package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost balances hashing time against brute-force resistance.
const DefaultCost = 12

// Hasher provides one-way password hashing and verification.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A non-positive cost falls back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a bcrypt digest of the given password.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the password matches the stored digest.
func (h *Hasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
