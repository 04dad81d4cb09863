package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb), mr
}

func TestRedisStore_BlacklistAndLookup(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	found, err := s.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Blacklist(ctx, "token-a", "user-1", time.Now().Add(time.Hour)))

	found, err = s.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.IsBlacklisted(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_EntryExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Blacklist(ctx, "token-a", "user-1", time.Now().Add(time.Minute)))

	mr.FastForward(2 * time.Minute)

	found, err := s.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_AlreadyExpiredTokenNotStored(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Blacklist(ctx, "token-a", "user-1", time.Now().Add(-time.Minute)))

	assert.Empty(t, mr.Keys())
}

func TestRedisStore_RawTokenNeverStored(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Blacklist(ctx, "raw-refresh-token-value", "user-1", time.Now().Add(time.Hour)))

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "raw-refresh-token-value")
	}
}
