package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/floorplan/internal/model"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", []byte("layout"), 0))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "layout", string(data))

	require.NoError(t, c.Delete(ctx, "k"))
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit)
}

func TestMemoryCache_CopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	data, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(data))
	data[1] = 'y'
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, hit, _ := c.Get(ctx, "k")
	assert.True(t, hit)

	now = now.Add(2 * time.Minute)
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Close(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.Len())
}

func TestKey(t *testing.T) {
	a := Key("layout", []byte(`{"room":1}`))
	b := Key("layout", []byte(`{"room":1}`))
	c := Key("layout", []byte(`{"room":2}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "layout:"))
	assert.Len(t, a, len("layout:")+64)
}

func TestNew(t *testing.T) {
	c, err := New(model.ServerConfig{CacheTTLSeconds: -1})
	require.NoError(t, err)
	assert.IsType(t, &NullCache{}, c)

	c, err = New(model.ServerConfig{CacheTTLSeconds: 60})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(model.ServerConfig{RedisURL: "redis://localhost:6379/0"})
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)
	assert.NoError(t, c.Close())

	_, err = New(model.ServerConfig{RedisURL: "http://not-redis"})
	assert.Error(t, err)
}

func TestTTL(t *testing.T) {
	assert.Equal(t, time.Duration(0), TTL(model.ServerConfig{CacheTTLSeconds: -5}))
	assert.Equal(t, 90*time.Second, TTL(model.ServerConfig{CacheTTLSeconds: 90}))
}
