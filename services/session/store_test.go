package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniRedis creates a test Redis server and a store wired to it.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start(), "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisStore(client)
}

func TestRedisStoreSetGet(t *testing.T) {
	_, store := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:CA123", []byte(`{"state":"greeting"}`), time.Hour))

	data, err := store.Get(ctx, "session:CA123")
	require.NoError(t, err)
	assert.Equal(t, `{"state":"greeting"}`, string(data))
}

func TestRedisStoreGetMissing(t *testing.T) {
	_, store := setupMiniRedis(t)

	_, err := store.Get(context.Background(), "session:absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTTL(t *testing.T) {
	mr, store := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:CA123", []byte("v"), time.Second))

	mr.FastForward(2 * time.Second)

	_, err := store.Get(ctx, "session:CA123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreExpireRefreshesTTL(t *testing.T) {
	mr, store := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:CA123", []byte("v"), time.Second))
	require.NoError(t, store.Expire(ctx, "session:CA123", time.Hour))

	mr.FastForward(2 * time.Second)

	_, err := store.Get(ctx, "session:CA123")
	assert.NoError(t, err)
}

func TestRedisStoreDel(t *testing.T) {
	_, store := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:CA123", []byte("v"), time.Hour))
	require.NoError(t, store.Del(ctx, "session:CA123"))

	_, err := store.Get(ctx, "session:CA123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreKeysByPrefix(t *testing.T) {
	_, store := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:CA1", []byte("v"), time.Hour))
	require.NoError(t, store.Set(ctx, "session:CA2", []byte("v"), time.Hour))
	require.NoError(t, store.Set(ctx, "other:CA3", []byte("v"), time.Hour))

	keys, err := store.Keys(ctx, KeyPrefix)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"session:CA1", "session:CA2"}, keys)
}

func TestRedisStorePing(t *testing.T) {
	mr, store := setupMiniRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	mr.Close()
	assert.Error(t, store.Ping(ctx))
}
