package cache

import (
	"context"
	"testing"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCacheSetGetDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Set(ctx, "k", payload{Name: "a"}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "a", got.Name)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Del(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMultipartSessionStoreRoundTripAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	store := NewMultipartSessionStore(c, time.Hour)
	ctx := context.Background()

	session := &models.MultipartSession{UploadID: "up-1", FileID: "f-1", StorageKey: "k/1", ChunkCount: 3}
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx, "up-1")
	require.NoError(t, err)
	assert.Equal(t, "f-1", loaded.FileID)
	assert.Equal(t, 3, loaded.ChunkCount)

	mr.FastForward(2 * time.Hour)
	_, err = store.Load(ctx, "up-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestURLCacheIgnoresFailures(t *testing.T) {
	c, mr := newTestCache(t)
	urls := NewURLCache(c)
	ctx := context.Background()

	urls.Put(ctx, "obj", "https://signed", time.Minute)
	got, ok := urls.Get(ctx, "obj")
	require.True(t, ok)
	assert.Equal(t, "https://signed", got)

	mr.Close()
	_, ok = urls.Get(ctx, "obj")
	assert.False(t, ok)

	var nilCache *URLCache
	_, ok = nilCache.Get(ctx, "obj")
	assert.False(t, ok)
}
