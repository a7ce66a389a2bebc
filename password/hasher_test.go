package password

import (
	"strings"
	"testing"
)

// Both implementations must satisfy the same contract; each test runs against
// bcrypt and argon2id.
func hashers() map[string]Hasher {
	return map[string]Hasher{
		// Low bcrypt cost keeps the suite fast; production default is 12.
		"bcrypt":   NewBcryptHasher(WithCost(4)),
		"argon2id": NewArgon2Hasher(WithArgon2Memory(16 * 1024)),
	}
}

func TestHashAndVerify(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("correct horse battery staple")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if hash == "correct horse battery staple" {
				t.Fatal("hash must not equal the plaintext")
			}
			if !h.Verify("correct horse battery staple", hash) {
				t.Fatal("Verify(p, Hash(p)) must be true")
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			h1, err := h.Hash("same-plaintext")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			h2, err := h.Hash("same-plaintext")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if h1 == h2 {
				t.Fatal("two hashes of the same plaintext must differ (random salt)")
			}
			// Both still verify.
			if !h.Verify("same-plaintext", h1) || !h.Verify("same-plaintext", h2) {
				t.Fatal("both salted hashes must verify")
			}
		})
	}
}

func TestVerifyWrongPlaintext(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("plaintext-one")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if h.Verify("plaintext-two", hash) {
				t.Fatal("a hash of p1 must never verify against p2")
			}
		})
	}
}

func TestHashEmptyPlaintext(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			if _, err := h.Hash(""); err == nil {
				t.Fatal("expected error for empty plaintext")
			}
		})
	}
}

func TestVerifyNeverErrors(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			hash, _ := h.Hash("secret")
			cases := []struct{ plain, hash string }{
				{"", hash},
				{"secret", ""},
				{"", ""},
				{"secret", "not-a-hash"},
				{"secret", "$argon2id$garbage"},
				{"secret", "$argon2id$v=19$m=bad$x$y"},
			}
			for _, tc := range cases {
				if h.Verify(tc.plain, tc.hash) {
					t.Fatalf("Verify(%q, %q) must be false", tc.plain, tc.hash)
				}
			}
		})
	}
}

func TestHashIsSelfDescribing(t *testing.T) {
	bHash, err := NewBcryptHasher(WithCost(4)).Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(bHash, "$2") {
		t.Fatalf("bcrypt hash must carry its algorithm prefix, got %q", bHash)
	}

	aHash, err := NewArgon2Hasher(WithArgon2Memory(16 * 1024)).Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(aHash, "$argon2id$") {
		t.Fatalf("argon2id hash must carry its algorithm prefix, got %q", aHash)
	}
	// A hasher constructed with different parameters still verifies: the
	// parameters are read from the hash string, not the receiver.
	other := NewArgon2Hasher(WithArgon2Time(2), WithArgon2Memory(32*1024))
	if !other.Verify("secret", aHash) {
		t.Fatal("argon2id hash must be verifiable from embedded parameters")
	}
}

func TestBcryptOverlongPlaintext(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("expected error beyond the 72-byte bcrypt limit")
	}
}
