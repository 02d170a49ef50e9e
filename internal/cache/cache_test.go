package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok, "entry should expire after ttl")

	require.NoError(t, c.Set(ctx, "forever", "x", 0))
	now = now.Add(24 * time.Hour)
	_, ok, _ = c.Get(ctx, "forever")
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "forever"))
	_, ok, _ = c.Get(ctx, "forever")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	c, err := NewRedisCache(ctx, srv.Addr(), "", 0, "ls:")
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	assert.True(t, srv.Exists("ls:k"))

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	srv.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "d", "v", 0))
	require.NoError(t, c.Delete(ctx, "d"))
	assert.False(t, srv.Exists("ls:d"))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisCache(context.Background(), addr, "", 0, "")
	assert.Error(t, err)
}
