package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
)

// Gateway 定义了核心依赖的对象存储能力, 屏蔽具体的存储提供方
type Gateway interface {
	// 生成客户端直传用的预签名 PUT 地址
	GetUploadURL(ctx context.Context, key string) (PresignedURL, error)
	// 生成预签名下载地址
	GetDownloadURL(ctx context.Context, key string, ttl time.Duration) (PresignedURL, error)
	// 查询对象信息, 对象不存在时返回 (nil, nil)
	HeadObject(ctx context.Context, key string) (*ObjectInfo, error)
	// 服务端直接写入对象
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// 删除对象, 对象不存在不视为错误
	DeleteObject(ctx context.Context, key string) error
	// 服务端复制对象
	CopyObject(ctx context.Context, sourceKey, destKey string) error

	// --- 分块上传方法 ---

	// InitChunkedUpload 初始化分块上传
	InitChunkedUpload(ctx context.Context, key string) (ChunkedUpload, error)
	// GetChunkURLs 为 1..chunkCount 的每个分块生成预签名上传地址
	GetChunkURLs(ctx context.Context, uploadID, key string, chunkCount int) ([]ChunkURL, error)
	// CompleteChunkedUpload 合并分块
	CompleteChunkedUpload(ctx context.Context, uploadID, key string, parts []CompletedPart) error
	// AbortChunkedUpload 中止分块上传, 上传会话不存在时不返回错误
	AbortChunkedUpload(ctx context.Context, uploadID, key string) error
}

// PresignedURL 预签名地址及其过期时间
type PresignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// ObjectInfo 对象元信息
type ObjectInfo struct {
	Size        int64
	ContentType string
	ETag        string
}

// ChunkedUpload 分块上传会话
type ChunkedUpload struct {
	UploadID string
	Key      string
}

// ChunkURL 单个分块的上传地址
type ChunkURL struct {
	PartNumber int
	URL        string
}

// CompletedPart 已上传的分块
type CompletedPart struct {
	PartNumber int
	ETag       string
}

// NewGateway 根据配置选择存储实现
func NewGateway(cfg *config.Config) (Gateway, error) {
	switch cfg.Storage.Type {
	case "minio":
		return NewMinIOGateway(&cfg.MinIO, cfg.Upload.UploadURLExpiry)
	case "aliyun_oss":
		return NewAliyunOSSGateway(&cfg.AliyunOSS, cfg.Upload.UploadURLExpiry)
	default:
		return nil, errors.New("invalid storageType")
	}
}
