package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "blacklist:"

// RedisStore is a Store backed by a shared Redis instance, for
// deployments running more than one process. Expiry is delegated to
// Redis key TTLs, so there is no sweep to run.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Blacklist(ctx context.Context, token, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already past its window; nothing worth storing.
		return nil
	}

	key := redisKeyPrefix + DeriveTokenID(token)
	if err := s.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (s *RedisStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	key := redisKeyPrefix + DeriveTokenID(token)

	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return n > 0, nil
}
