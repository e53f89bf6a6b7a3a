package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDShapeAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewID()
		require.NoError(t, err)
		assert.Len(t, id, 43) // 32 bytes, base64url without padding
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	userID, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	require.NoError(t, store.Destroy(ctx, id))

	userID, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, NoUser, userID)
}

func TestMemoryStoreDestroyIdempotent(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, id))
	require.NoError(t, store.Destroy(ctx, id))
	require.NoError(t, store.Destroy(ctx, "never-existed"))
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	userID, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, NoUser, userID)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	id, err := store.Create(ctx, 3)
	require.NoError(t, err)

	// a read inside the window slides the expiry forward
	now = now.Add(50 * time.Second)
	userID, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)

	now = now.Add(50 * time.Second)
	userID, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)

	now = now.Add(2 * time.Minute)
	userID, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, NoUser, userID)
}
