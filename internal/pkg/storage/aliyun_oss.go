package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"
)

// AliyunOSSGateway 阿里云 OSS 实现, SDK 不接收 context, ctx 只用于接口一致
type AliyunOSSGateway struct {
	client       *oss.Client
	bucket       *oss.Bucket
	bucketName   string
	uploadExpiry time.Duration
}

var _ Gateway = (*AliyunOSSGateway)(nil)

// NewAliyunOSSGateway 创建并返回一个 AliyunOSSGateway 实例
func NewAliyunOSSGateway(cfg *config.AliyunOSSConfig, uploadExpiry time.Duration) (*AliyunOSSGateway, error) {
	// OSS Endpoint 应该包含 http:// 或 https:// 前缀
	ossClient, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		logger.Error("Failed to initialize Aliyun OSS client", zap.Error(err))
		return nil, fmt.Errorf("aliyun oss: init client: %w", err)
	}
	bucket, err := ossClient.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("aliyun oss: get bucket: %w", err)
	}
	logger.Info("Aliyun OSS client initialized", zap.String("endpoint", cfg.Endpoint))
	return &AliyunOSSGateway{
		client:       ossClient,
		bucket:       bucket,
		bucketName:   cfg.BucketName,
		uploadExpiry: uploadExpiry,
	}, nil
}

// EnsureBucket 检查存储桶, 不存在时创建
func (g *AliyunOSSGateway) EnsureBucket(ctx context.Context) error {
	exists, err := g.client.IsBucketExist(g.bucketName)
	if err != nil {
		return fmt.Errorf("aliyun oss: check bucket: %w", err)
	}
	if exists {
		return nil
	}
	err = g.client.CreateBucket(g.bucketName)
	if err != nil {
		var ossErr oss.ServiceError
		if errors.As(err, &ossErr) && (ossErr.Code == "BucketAlreadyExists" || ossErr.Code == "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("aliyun oss: create bucket: %w", err)
	}
	logger.Info("Aliyun OSS bucket created", zap.String("bucket", g.bucketName))
	return nil
}

func (g *AliyunOSSGateway) GetUploadURL(ctx context.Context, key string) (PresignedURL, error) {
	signed, err := g.bucket.SignURL(key, oss.HTTPPut, int64(g.uploadExpiry.Seconds()))
	if err != nil {
		return PresignedURL{}, fmt.Errorf("aliyun oss: sign put url: %w", err)
	}
	return PresignedURL{URL: signed, ExpiresAt: time.Now().Add(g.uploadExpiry)}, nil
}

func (g *AliyunOSSGateway) GetDownloadURL(ctx context.Context, key string, ttl time.Duration) (PresignedURL, error) {
	exists, err := g.bucket.IsObjectExist(key)
	if err != nil {
		return PresignedURL{}, fmt.Errorf("aliyun oss: check object: %w", err)
	}
	if !exists {
		return PresignedURL{}, fmt.Errorf("aliyun oss: object %s: %w", key, ErrObjectNotFound)
	}
	signed, err := g.bucket.SignURL(key, oss.HTTPGet, int64(ttl.Seconds()))
	if err != nil {
		return PresignedURL{}, fmt.Errorf("aliyun oss: sign get url: %w", err)
	}
	return PresignedURL{URL: signed, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (g *AliyunOSSGateway) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	props, err := g.bucket.GetObjectDetailedMeta(key)
	if err != nil {
		if isOSSCode(err, "NoSuchKey") || isOSSStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("aliyun oss: head object: %w", err)
	}
	size, _ := strconv.ParseInt(props.Get(oss.HTTPHeaderContentLength), 10, 64)
	return &ObjectInfo{
		Size:        size,
		ContentType: props.Get(oss.HTTPHeaderContentType),
		ETag:        props.Get(oss.HTTPHeaderEtag),
	}, nil
}

func (g *AliyunOSSGateway) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	// objectSize 参数对 OSS SDK 没有意义, SDK 会自动计算
	if err := g.bucket.PutObject(key, reader, oss.ContentType(contentType)); err != nil {
		return fmt.Errorf("aliyun oss: put object: %w", err)
	}
	return nil
}

func (g *AliyunOSSGateway) DeleteObject(ctx context.Context, key string) error {
	// OSS 删除不存在的对象同样返回 204
	if err := g.bucket.DeleteObject(key); err != nil && !isOSSCode(err, "NoSuchKey") {
		return fmt.Errorf("aliyun oss: delete object: %w", err)
	}
	return nil
}

func (g *AliyunOSSGateway) CopyObject(ctx context.Context, sourceKey, destKey string) error {
	if _, err := g.bucket.CopyObject(sourceKey, destKey); err != nil {
		return fmt.Errorf("aliyun oss: copy object: %w", err)
	}
	return nil
}

// --- 分块上传实现 ---

func (g *AliyunOSSGateway) InitChunkedUpload(ctx context.Context, key string) (ChunkedUpload, error) {
	imur, err := g.bucket.InitiateMultipartUpload(key)
	if err != nil {
		return ChunkedUpload{}, fmt.Errorf("aliyun oss: initiate multipart upload: %w", err)
	}
	return ChunkedUpload{UploadID: imur.UploadID, Key: imur.Key}, nil
}

func (g *AliyunOSSGateway) GetChunkURLs(ctx context.Context, uploadID, key string, chunkCount int) ([]ChunkURL, error) {
	urls := make([]ChunkURL, 0, chunkCount)
	for partNumber := 1; partNumber <= chunkCount; partNumber++ {
		signed, err := g.bucket.SignURL(key, oss.HTTPPut, int64(g.uploadExpiry.Seconds()),
			oss.AddParam("partNumber", strconv.Itoa(partNumber)),
			oss.AddParam("uploadId", uploadID),
		)
		if err != nil {
			return nil, fmt.Errorf("aliyun oss: sign part %d: %w", partNumber, err)
		}
		urls = append(urls, ChunkURL{PartNumber: partNumber, URL: signed})
	}
	return urls, nil
}

func (g *AliyunOSSGateway) CompleteChunkedUpload(ctx context.Context, uploadID, key string, parts []CompletedPart) error {
	ossParts := make([]oss.UploadPart, 0, len(parts))
	for _, p := range parts {
		ossParts = append(ossParts, oss.UploadPart{PartNumber: p.PartNumber, ETag: p.ETag})
	}
	imur := oss.InitiateMultipartUploadResult{Bucket: g.bucketName, Key: key, UploadID: uploadID}
	if _, err := g.bucket.CompleteMultipartUpload(imur, ossParts); err != nil {
		return fmt.Errorf("aliyun oss: complete multipart upload: %w", err)
	}
	return nil
}

func (g *AliyunOSSGateway) AbortChunkedUpload(ctx context.Context, uploadID, key string) error {
	imur := oss.InitiateMultipartUploadResult{Bucket: g.bucketName, Key: key, UploadID: uploadID}
	if err := g.bucket.AbortMultipartUpload(imur); err != nil && !isOSSCode(err, "NoSuchUpload") {
		return fmt.Errorf("aliyun oss: abort multipart upload: %w", err)
	}
	return nil
}

func isOSSCode(err error, code string) bool {
	var ossErr oss.ServiceError
	return errors.As(err, &ossErr) && ossErr.Code == code
}

func isOSSStatus(err error, status int) bool {
	var ossErr oss.ServiceError
	return errors.As(err, &ossErr) && ossErr.StatusCode == status
}
