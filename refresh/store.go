// Package refresh manages the lifecycle of long-lived opaque refresh tokens:
// issuance, validation, and revocation.
//
// A token value is an unguessable random string (48 bytes before hex
// encoding, well over the 256-bit entropy floor) with no structure the issuer
// ever parses; it is validated purely by store lookup. Tokens are valid for a
// fixed TTL (7 days by default), are bound to the subject they were issued
// for, and are only ever mutated by flipping Active to false. They are never
// physically deleted by the relational backend (soft revoke) and never
// rewritten except for that flag by the redis backend.
//
// Both backends satisfy identical external semantics; the contract tests run
// unchanged against each.
package refresh

import (
	"context"
	"time"
)

// TokenBytes is the number of random bytes in a token value before encoding.
const TokenBytes = 48

// Token is a long-lived opaque refresh token.
type Token struct {
	Value     string    `json:"value"`
	SubjectID string    `json:"subject_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}

// Store is the refresh-token lifecycle contract.
type Store interface {
	// Issue generates a fresh token for the subject, persists it, and
	// returns it.
	Issue(ctx context.Context, subjectID string) (*Token, error)

	// Validate reports whether a token with the given value exists, is
	// bound to subjectID, is active, and has not expired. Absence,
	// mismatch, inactivity, and expiry all yield false, never an error.
	Validate(ctx context.Context, subjectID, value string) (bool, error)

	// Invalidate revokes the token with the given value. Idempotent; an
	// absent value is a no-op.
	Invalidate(ctx context.Context, value string) error
}

// Config holds refresh-token configuration.
type Config struct {
	// TTL is the fixed token lifetime (default: 168h = 7 days).
	TTL time.Duration `mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = 7 * 24 * time.Hour
	}
}
