package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis client using SET with expiry.
// Expiry is enforced both server-side (Redis evicts the key) and by the
// session's own freshness check against the embedded timestamp.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing Redis client. The client is owned by the
// caller.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return value, nil
}
