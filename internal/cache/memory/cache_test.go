package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer c.Stop()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestCacheMiss(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer c.Stop()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer c.Stop()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCacheNoExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer c.Stop()

	// TTL 0 means the entry does not expire.
	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	assert.NoError(t, err)
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer c.Stop()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCacheExists(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer c.Stop()

	ok, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	ok, err = c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
}
