package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, time.Hour)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestRedisGet_Success(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	s := &Session{Token: "jwt", Name: "Gabriel", Role: RoleAdmin, CreatedAt: time.Now()}

	data, _ := json.Marshal(s)
	mr.Set(sessionKeyFor("sid-1"), string(data))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", got.Token)
	assert.Equal(t, RoleAdmin, got.Role)
}

func TestRedisGet_Miss(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	got, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, got)
}

func TestRedisGet_InvalidJSON(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(sessionKeyFor("sid-1"), "not-json")

	_, err := store.Get(context.Background(), "sid-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSet_StoresWithTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "sid-1", &Session{Token: "jwt"}))

	assert.True(t, mr.Exists(sessionKeyFor("sid-1")))
	assert.Greater(t, mr.TTL(sessionKeyFor("sid-1")), time.Duration(0))

	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists(sessionKeyFor("sid-1")))
}

func TestRedisDelete(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "sid-1", &Session{Token: "jwt"}))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	assert.False(t, mr.Exists(sessionKeyFor("sid-1")))
}
