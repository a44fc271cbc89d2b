package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"agenda/internal/cache"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(cache.NewFromClient(client)), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	err := store.Store(ctx, "sess-1", 42, time.Hour)
	assert.NoError(t, err)

	userID, err := store.Get(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Store(ctx, "sess-1", 42, time.Hour))
	assert.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.Error(t, err)
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Store(ctx, "sess-1", 42, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sess-1")
	assert.Error(t, err)
}

func TestSessionStore_Missing(t *testing.T) {
	store, _ := newTestSessionStore(t)

	_, err := store.Get(context.Background(), "never-stored")
	assert.Error(t, err)
}
