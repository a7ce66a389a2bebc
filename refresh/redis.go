package refresh

import (
	"context"
	"time"

	"github.com/skillsenselab/authcore/logger"
	"github.com/skillsenselab/authcore/password"
	"github.com/skillsenselab/authcore/redis"
)

const keyPrefix = "refresh:"

// RedisStore is a distributed Store implementation. Records are stored as
// JSON keyed by token value with a TTL equal to the token lifetime, so
// expired tokens vanish from the backend on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

// NewRedisStore creates a redis-backed refresh-token store.
func NewRedisStore(client *redis.Client, cfg Config, log *logger.Logger) *RedisStore {
	cfg.ApplyDefaults()
	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
		log:    log.WithComponent("refresh-store"),
		now:    time.Now,
	}
}

func (s *RedisStore) key(value string) string {
	return keyPrefix + value
}

func (s *RedisStore) Issue(ctx context.Context, subjectID string) (*Token, error) {
	value, err := password.GenerateOpaqueToken(TokenBytes)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tok := Token{
		Value:     value,
		SubjectID: subjectID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		Active:    true,
	}
	if err := s.client.SetJSON(ctx, s.key(value), tok, s.ttl); err != nil {
		return nil, err
	}

	s.log.Debug("refresh token issued", logger.Fields(logger.FieldSubjectID, subjectID))
	return &tok, nil
}

func (s *RedisStore) Validate(ctx context.Context, subjectID, value string) (bool, error) {
	var tok Token
	if err := s.client.GetJSON(ctx, s.key(value), &tok); err != nil {
		if redis.IsNil(err) {
			return false, nil
		}
		return false, err
	}
	if tok.SubjectID != subjectID || !tok.Active {
		return false, nil
	}
	return s.now().UTC().Before(tok.ExpiresAt), nil
}

func (s *RedisStore) Invalidate(ctx context.Context, value string) error {
	key := s.key(value)

	var tok Token
	if err := s.client.GetJSON(ctx, key, &tok); err != nil {
		if redis.IsNil(err) {
			return nil
		}
		return err
	}
	if !tok.Active {
		return nil
	}

	// Rewrite with active=false, preserving the remaining TTL so a revoked
	// record does not outlive its natural expiry.
	remaining, err := s.client.TTL(ctx, key)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		return nil
	}

	tok.Active = false
	return s.client.SetJSON(ctx, key, tok, remaining)
}

var _ Store = (*RedisStore)(nil)
