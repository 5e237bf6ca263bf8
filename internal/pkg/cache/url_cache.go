package cache

import (
	"context"
	"time"
)

// URLCache 缓存预签名地址, 所有失败都当作未命中处理
type URLCache struct {
	cache Cache
}

func NewURLCache(c Cache) *URLCache {
	return &URLCache{cache: c}
}

func (u *URLCache) Get(ctx context.Context, objectKey string) (string, bool) {
	if u == nil || u.cache == nil {
		return "", false
	}
	var url string
	if err := u.cache.Get(ctx, GenerateThumbnailURLKey(objectKey), &url); err != nil {
		return "", false
	}
	return url, true
}

// Put ttl 不为正时不缓存
func (u *URLCache) Put(ctx context.Context, objectKey, url string, ttl time.Duration) {
	if u == nil || u.cache == nil || ttl <= 0 {
		return
	}
	_ = u.cache.Set(ctx, GenerateThumbnailURLKey(objectKey), url, ttl)
}

func (u *URLCache) Invalidate(ctx context.Context, objectKey string) {
	if u == nil || u.cache == nil {
		return
	}
	_ = u.cache.Del(ctx, GenerateThumbnailURLKey(objectKey))
}
