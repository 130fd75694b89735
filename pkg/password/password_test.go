package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(4)

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if digest == "secret1" {
		t.Fatal("digest equals the plaintext")
	}

	if !h.Verify(digest, "secret1") {
		t.Error("Verify() = false for the right password")
	}
	if h.Verify(digest, "wrong") {
		t.Error("Verify() = true for the wrong password")
	}
	if h.Verify("not-a-digest", "secret1") {
		t.Error("Verify() = true for a malformed digest")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(4)

	first, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}

func TestNewHasher_DefaultCost(t *testing.T) {
	if h := NewHasher(0); h.cost != DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultCost)
	}
}
