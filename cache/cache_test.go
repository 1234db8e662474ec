package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dichfoto/dichfoto/cache/memory"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBuilder(t *testing.T) {
	kb := NewKeyBuilder("share")

	assert.Equal(t, "share", kb.Build())
	assert.Equal(t, "share:abc", kb.Build("abc"))
	assert.Equal(t, "share:abc:assets", kb.Build("abc", "assets"))
	assert.Equal(t, "share:42", kb.BuildID(42))
	assert.Equal(t, "share:slug-x", kb.BuildID("slug-x"))
}

func TestNewProvider_Memory(t *testing.T) {
	cfg := &config.Config{CacheType: "memory"}
	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	defer provider.Close()

	assert.Equal(t, "memory", provider.Name())
}

func TestNewProvider_Unsupported(t *testing.T) {
	cfg := &config.Config{CacheType: "memcached"}
	_, err := NewProvider(cfg)
	assert.Error(t, err)
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	provider, err := memory.NewMemory(memory.Config{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	require.NoError(t, err)
	defer provider.Close()

	ctx := context.Background()

	type payload struct {
		Slug  string `json:"slug"`
		Count int    `json:"count"`
	}

	err = provider.Set(ctx, "share:abc", payload{Slug: "abc", Count: 3}, time.Minute)
	require.NoError(t, err)

	var got payload
	err = provider.Get(ctx, "share:abc", &got)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Slug)
	assert.Equal(t, 3, got.Count)

	exists, err := provider.Exists(ctx, "share:abc")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, provider.Delete(ctx, "share:abc"))

	err = provider.Get(ctx, "share:abc", &got)
	assert.True(t, types.IsCacheMiss(err))
}

func TestMemoryCache_MissOnUnknownKey(t *testing.T) {
	provider, err := memory.NewMemory(memory.Config{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	require.NoError(t, err)
	defer provider.Close()

	var dest struct{}
	err = provider.Get(context.Background(), "missing", &dest)
	assert.True(t, types.IsCacheMiss(err))
}
