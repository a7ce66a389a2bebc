package throttle

import (
	"context"
	"sync"
	"time"
)

type attemptRecord struct {
	count     int
	expiresAt time.Time
}

// MemoryThrottle is an in-process Throttle backed by a mutex-guarded map.
// Suitable for single-process deployments; use RedisThrottle when attempts
// must be counted across processes.
type MemoryThrottle struct {
	mu      sync.Mutex
	records map[string]*attemptRecord
	window  time.Duration
	now     func() time.Time
}

// NewMemoryThrottle creates a memory-backed throttle.
func NewMemoryThrottle(cfg Config) *MemoryThrottle {
	cfg.ApplyDefaults()
	return &MemoryThrottle{
		records: make(map[string]*attemptRecord),
		window:  cfg.Window,
		now:     time.Now,
	}
}

func (m *MemoryThrottle) Count(_ context.Context, identity string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[identity]
	if !ok {
		return 0, nil
	}
	if m.now().After(rec.expiresAt) {
		delete(m.records, identity)
		return 0, nil
	}
	return rec.count, nil
}

func (m *MemoryThrottle) Increment(_ context.Context, identity string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec, ok := m.records[identity]
	if !ok || now.After(rec.expiresAt) {
		// Expiry is fixed here; later increments do not extend it.
		m.records[identity] = &attemptRecord{count: 1, expiresAt: now.Add(m.window)}
		return 1, nil
	}
	rec.count++
	return rec.count, nil
}

func (m *MemoryThrottle) Reset(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, identity)
	return nil
}

var _ Throttle = (*MemoryThrottle)(nil)
