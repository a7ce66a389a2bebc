// Package throttle counts failed login attempts per identity with a sliding
// expiry window.
//
// State machine per identity key: Absent -> Counting(n) -> Absent (on expiry
// or explicit reset). The window is fixed at the first failure; later
// increments do not extend it. Enforcement of the attempt threshold is the
// issuer's job, not this package's.
//
// Two interchangeable backends are provided: Memory (per-process) and Redis
// (shared across processes). Both rely on atomic primitives rather than
// read-modify-write, so concurrent increments for the same identity never
// undercount beyond the backend's atomicity guarantees.
package throttle

import (
	"context"
	"time"
)

// Throttle is the failed-attempt counter contract.
type Throttle interface {
	// Count returns the current failure count for the identity. Absent or
	// expired records read as 0.
	Count(ctx context.Context, identity string) (int, error)

	// Increment records a failure and returns the new count. The first
	// failure creates the record with a fresh expiry of now + window;
	// subsequent failures increment the count without touching the expiry.
	Increment(ctx context.Context, identity string) (int, error)

	// Reset deletes the record unconditionally. Idempotent; resetting an
	// absent identity is not an error.
	Reset(ctx context.Context, identity string) error
}

// Config holds throttle configuration.
type Config struct {
	// Window is the sliding time span over which failures are counted,
	// measured from the first failure (default: 15m).
	Window time.Duration `mapstructure:"window"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Window == 0 {
		c.Window = 15 * time.Minute
	}
}
