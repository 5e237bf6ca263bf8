package cache

import (
	"context"
	"fmt"
	"time"
)

// 缓存通用接口
type Cache interface {
	// Set在缓存中设置一个值，并指定过期时间。
	// value应该是一个可以被JSON封送的结构体或指向结构体的指针。
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get从缓存中检索一个值，并将其解编组到目标接口。
	// target应该是一个指针，指向希望解编组成的类型。
	// key 不存在时返回 ErrCacheMiss
	Get(ctx context.Context, key string, target any) error

	// 删除一个或多个key
	Del(ctx context.Context, keys ...string) error

	// 检查key是否存在
	Exists(ctx context.Context, key string) (bool, error)
}

func GenerateMultipartSessionKey(uploadID string) string {
	return fmt.Sprintf("multipart:%s", uploadID)
}

// GenerateThumbnailURLKey 缓存的是某个对象 key 的预签名地址
func GenerateThumbnailURLKey(objectKey string) string {
	return fmt.Sprintf("thumbnail:url:%s", objectKey)
}
