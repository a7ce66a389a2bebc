package throttle

import (
	"context"
	"strconv"
	"time"

	"github.com/skillsenselab/authcore/redis"
)

const keyPrefix = "throttle:"

// RedisThrottle is a Throttle shared across processes, backed by Redis.
// Increment uses the backend's atomic INCR; the key TTL is set only when the
// key is created, so the window stays anchored to the first failure.
type RedisThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewRedisThrottle creates a redis-backed throttle.
func NewRedisThrottle(client *redis.Client, cfg Config) *RedisThrottle {
	cfg.ApplyDefaults()
	return &RedisThrottle{client: client, window: cfg.Window}
}

func (r *RedisThrottle) key(identity string) string {
	return keyPrefix + identity
}

func (r *RedisThrottle) Count(ctx context.Context, identity string) (int, error) {
	raw, err := r.client.Get(ctx, r.key(identity))
	if err != nil {
		if redis.IsNil(err) {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (r *RedisThrottle) Increment(ctx context.Context, identity string) (int, error) {
	key := r.key(identity)
	n, err := r.client.Incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if n == 1 {
		// First failure created the key; anchor the window here. If two
		// concurrent first failures race, exactly one observes n==1.
		if err := r.client.Expire(ctx, key, r.window); err != nil {
			return int(n), err
		}
	}
	return int(n), nil
}

func (r *RedisThrottle) Reset(ctx context.Context, identity string) error {
	return r.client.Del(ctx, r.key(identity))
}

var _ Throttle = (*RedisThrottle)(nil)
