package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoros/internal/cache"
	"pomodoros/internal/model"
)

func newRedisIdentityCache(t *testing.T) (*IdentityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewIdentityCache(cache.NewWithRedis(rdb, "test:")), mr
}

func TestIdentityCache_PutGetInvalidate(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisIdentityCache(t)
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	user := &model.User{
		UserID:       "u-1",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$secret-hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		BirthDate:    &birth,
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	_, ok := store.Get(ctx, user.Email)
	assert.False(t, ok)

	store.Put(ctx, user)

	key := "test:identity:ada@example.com"
	require.True(t, mr.Exists(key), "keys are prefixed")
	assert.Equal(t, IdentityTTL, mr.TTL(key))
	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret-hash")
	assert.NotContains(t, raw, "password")

	got, ok := store.Get(ctx, user.Email)
	require.True(t, ok)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "Lovelace", got.LastName)
	require.NotNil(t, got.BirthDate)
	assert.True(t, birth.Equal(*got.BirthDate))
	assert.Empty(t, got.PasswordHash)

	store.Invalidate(ctx, user.Email)
	assert.False(t, mr.Exists(key))
	_, ok = store.Get(ctx, user.Email)
	assert.False(t, ok)
}

func TestIdentityCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisIdentityCache(t)
	store.Put(ctx, &model.User{UserID: "u-1", Email: "ada@example.com"})

	mr.FastForward(IdentityTTL + time.Second)

	_, ok := store.Get(ctx, "ada@example.com")
	assert.False(t, ok)
}

func TestIdentityCache_RedisDownIsAMiss(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisIdentityCache(t)
	mr.Close()

	store.Put(ctx, &model.User{UserID: "u-1", Email: "ada@example.com"})
	_, ok := store.Get(ctx, "ada@example.com")
	assert.False(t, ok)
}
