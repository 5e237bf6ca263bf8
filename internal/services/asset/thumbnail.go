package asset

import (
	"context"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/cache"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/storage"
	"go.uber.org/zap"
)

// urlCacheMargin 缓存的地址要比签名早失效, 避免返回即将过期的地址
const urlCacheMargin = 5 * time.Minute

// ThumbnailResolver 解析文件的预览缩略图地址, 任何失败都降级为没有缩略图
type ThumbnailResolver struct {
	gateway storage.Gateway
	urls    *cache.URLCache
	size    string
	ttl     time.Duration
}

// NewThumbnailResolver urls 可以为 nil
func NewThumbnailResolver(gateway storage.Gateway, urls *cache.URLCache, size string, ttl time.Duration) *ThumbnailResolver {
	return &ThumbnailResolver{gateway: gateway, urls: urls, size: size, ttl: ttl}
}

// Resolve 只有 ready 状态的图片和视频才有缩略图, 自定义缩略图优先
func (r *ThumbnailResolver) Resolve(ctx context.Context, accountID string, file *models.File) *string {
	if file == nil || file.Status != models.StatusReady {
		return nil
	}
	if category := file.MediaCategory(); category != "image" && category != "video" {
		return nil
	}

	key := r.thumbnailKey(accountID, file)
	if url, ok := r.urls.Get(ctx, key); ok {
		return &url
	}

	signed, err := r.gateway.GetDownloadURL(ctx, key, r.ttl)
	if err != nil {
		logger.Debug("Resolve: Thumbnail not available", zap.String("fileID", file.ID), zap.String("key", key), zap.Error(err))
		return nil
	}
	r.urls.Put(ctx, key, signed.URL, r.ttl-urlCacheMargin)
	return &signed.URL
}

// Invalidate 清除某个缩略图 key 的缓存地址
func (r *ThumbnailResolver) Invalidate(ctx context.Context, key string) {
	r.urls.Invalidate(ctx, key)
}

func (r *ThumbnailResolver) thumbnailKey(accountID string, file *models.File) string {
	if file.CustomThumbnailKey != nil && *file.CustomThumbnailKey != "" {
		return *file.CustomThumbnailKey
	}
	return GeneratedThumbnailKey(accountID, file, r.size)
}

// GeneratedThumbnailKey 处理流水线写入生成缩略图的位置
func GeneratedThumbnailKey(accountID string, file *models.File, size string) string {
	return storage.ObjectKey(assetRef(accountID, file), storage.ThumbnailVariant(size), storage.GeneratedThumbnailName)
}

// OriginalKey 原始对象的位置
func OriginalKey(accountID string, file *models.File) string {
	return storage.ObjectKey(assetRef(accountID, file), storage.VariantOriginal, file.OriginalName)
}

func assetRef(accountID string, file *models.File) storage.AssetRef {
	return storage.AssetRef{AccountID: accountID, ProjectID: file.ProjectID, AssetID: file.ID}
}
