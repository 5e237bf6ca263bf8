package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinIOGateway struct {
	client       *minio.Client
	core         *minio.Core // 分块上传需要的底层 API
	bucket       string
	uploadExpiry time.Duration
}

var _ Gateway = (*MinIOGateway)(nil)

// NewMinIOGateway 创建并返回一个 MinIOGateway 实例
func NewMinIOGateway(cfg *config.MinIOConfig, uploadExpiry time.Duration) (*MinIOGateway, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	}

	minioClient, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		logger.Error("Failed to initialize MinIO client", zap.Error(err))
		return nil, fmt.Errorf("minio: init client: %w", err)
	}

	minioCore, err := minio.NewCore(cfg.Endpoint, opts)
	if err != nil {
		logger.Error("Failed to initialize MinIO core", zap.Error(err))
		return nil, fmt.Errorf("minio: init core: %w", err)
	}

	logger.Info("MinIO client and core initialized", zap.String("endpoint", cfg.Endpoint))
	return &MinIOGateway{
		client:       minioClient,
		core:         minioCore,
		bucket:       cfg.BucketName,
		uploadExpiry: uploadExpiry,
	}, nil
}

// EnsureBucket 检查存储桶, 不存在时创建
func (g *MinIOGateway) EnsureBucket(ctx context.Context) error {
	exists, err := g.client.BucketExists(ctx, g.bucket)
	if err != nil {
		return fmt.Errorf("minio: check bucket: %w", err)
	}
	if exists {
		logger.Info("MinIO bucket already exists", zap.String("bucket", g.bucket))
		return nil
	}
	if err := g.client.MakeBucket(ctx, g.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio: make bucket: %w", err)
	}
	logger.Info("MinIO bucket created", zap.String("bucket", g.bucket))
	return nil
}

func (g *MinIOGateway) GetUploadURL(ctx context.Context, key string) (PresignedURL, error) {
	u, err := g.client.PresignedPutObject(ctx, g.bucket, key, g.uploadExpiry)
	if err != nil {
		return PresignedURL{}, fmt.Errorf("minio: presign put: %w", err)
	}
	return PresignedURL{URL: u.String(), ExpiresAt: time.Now().Add(g.uploadExpiry)}, nil
}

func (g *MinIOGateway) GetDownloadURL(ctx context.Context, key string, ttl time.Duration) (PresignedURL, error) {
	// 先确认对象存在, 未生成的缩略图不应该得到一个必然 404 的地址
	info, err := g.HeadObject(ctx, key)
	if err != nil {
		return PresignedURL{}, err
	}
	if info == nil {
		return PresignedURL{}, fmt.Errorf("minio: object %s: %w", key, ErrObjectNotFound)
	}
	u, err := g.client.PresignedGetObject(ctx, g.bucket, key, ttl, nil)
	if err != nil {
		return PresignedURL{}, fmt.Errorf("minio: presign get: %w", err)
	}
	return PresignedURL{URL: u.String(), ExpiresAt: time.Now().Add(ttl)}, nil
}

func (g *MinIOGateway) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	stat, err := g.client.StatObject(ctx, g.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinIONotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("minio: stat object: %w", err)
	}
	return &ObjectInfo{Size: stat.Size, ContentType: stat.ContentType, ETag: stat.ETag}, nil
}

func (g *MinIOGateway) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := g.client.PutObject(ctx, g.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio: put object: %w", err)
	}
	return nil
}

func (g *MinIOGateway) DeleteObject(ctx context.Context, key string) error {
	err := g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isMinIONotFound(err) {
		return fmt.Errorf("minio: remove object: %w", err)
	}
	return nil
}

func (g *MinIOGateway) CopyObject(ctx context.Context, sourceKey, destKey string) error {
	_, err := g.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: g.bucket, Object: destKey},
		minio.CopySrcOptions{Bucket: g.bucket, Object: sourceKey},
	)
	if err != nil {
		return fmt.Errorf("minio: copy object: %w", err)
	}
	return nil
}

// --- 分块上传实现 ---

func (g *MinIOGateway) InitChunkedUpload(ctx context.Context, key string) (ChunkedUpload, error) {
	uploadID, err := g.core.NewMultipartUpload(ctx, g.bucket, key, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return ChunkedUpload{}, fmt.Errorf("minio: new multipart upload: %w", err)
	}
	return ChunkedUpload{UploadID: uploadID, Key: key}, nil
}

func (g *MinIOGateway) GetChunkURLs(ctx context.Context, uploadID, key string, chunkCount int) ([]ChunkURL, error) {
	urls := make([]ChunkURL, 0, chunkCount)
	for partNumber := 1; partNumber <= chunkCount; partNumber++ {
		params := url.Values{}
		params.Set("partNumber", strconv.Itoa(partNumber))
		params.Set("uploadId", uploadID)
		u, err := g.client.Presign(ctx, http.MethodPut, g.bucket, key, g.uploadExpiry, params)
		if err != nil {
			return nil, fmt.Errorf("minio: presign part %d: %w", partNumber, err)
		}
		urls = append(urls, ChunkURL{PartNumber: partNumber, URL: u.String()})
	}
	return urls, nil
}

func (g *MinIOGateway) CompleteChunkedUpload(ctx context.Context, uploadID, key string, parts []CompletedPart) error {
	completeParts := make([]minio.CompletePart, 0, len(parts))
	for _, part := range parts {
		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       part.ETag,
		})
	}

	_, err := g.core.CompleteMultipartUpload(ctx, g.bucket, key, uploadID, completeParts, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("minio: complete multipart upload: %w", err)
	}
	return nil
}

func (g *MinIOGateway) AbortChunkedUpload(ctx context.Context, uploadID, key string) error {
	err := g.core.AbortMultipartUpload(ctx, g.bucket, key, uploadID)
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchUpload" {
		return fmt.Errorf("minio: abort multipart upload: %w", err)
	}
	return nil
}

func isMinIONotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
