package asset

import (
	"context"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/cache"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/search"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/storage"
	"github.com/3Eeeecho/go-mediavault/internal/repositories"
	"github.com/3Eeeecho/go-mediavault/internal/services/quota"
)

// MaxChunkCount 单个分片上传允许的最大分片数
const MaxChunkCount = 10000

// Deps 上传与文件服务共用的依赖, 全部通过构造函数注入
type Deps struct {
	TM         TransactionManager
	Files      repositories.FileRepository
	Projects   repositories.ProjectRepository
	Ledger     *quota.Ledger
	Gateway    storage.Gateway
	Sessions   *cache.MultipartSessionStore
	Dispatcher Dispatcher
	Indexer    search.Indexer
	Effects    *SideEffects
	Thumbnails *ThumbnailResolver
	Config     config.UploadConfig
	// Now 默认 time.Now, 测试中可替换
	Now func() time.Time
}

type core struct {
	Deps
	access *AccessVerifier
}

func newCore(deps Deps) core {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Indexer == nil {
		deps.Indexer = search.NopIndexer{}
	}
	return core{Deps: deps, access: NewAccessVerifier(deps.Files, deps.Projects)}
}

func (c *core) now() time.Time {
	return c.Now().UTC()
}

// notifyProcessing 尽力通知处理流水线, 不阻塞调用方
func (c *core) notifyProcessing(accountID string, file *models.File) {
	job := models.ProcessingJob{
		AssetID:       file.ID,
		AccountID:     accountID,
		ProjectID:     file.ProjectID,
		StorageKey:    OriginalKey(accountID, file),
		Name:          file.Name,
		MimeType:      file.MimeType,
		FileSizeBytes: file.FileSizeBytes,
		Checksum:      file.Checksum,
		ThumbnailKey:  GeneratedThumbnailKey(accountID, file, c.Config.ThumbnailSize),
	}
	c.Effects.Go(taskProcessingDispatch, func(ctx context.Context) error {
		return c.Dispatcher.EnqueueProcessingJobs(ctx, job)
	})
}

// index 尽力同步检索索引
func (c *core) index(file *models.File) {
	snapshot := *file
	c.Effects.Go(taskSearchIndex, func(ctx context.Context) error {
		return c.Indexer.IndexFile(ctx, &snapshot)
	})
}

// deleteObjects 尽力删除对象, 对象不存在不算失败
func (c *core) deleteObjects(keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.Effects.Go(taskObjectCleanup, func(ctx context.Context) error {
		var firstErr error
		for _, key := range keys {
			if err := c.Gateway.DeleteObject(ctx, key); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})
}

// transition 校验并以 CAS 方式持久化状态迁移, 返回新的投影
func (c *core) transition(ctx context.Context, files repositories.FileRepository, file *models.File, to models.FileStatus, fields map[string]any) (*models.File, error) {
	updated, err := Apply(*file, to)
	if err != nil {
		return nil, err
	}
	if err := files.UpdateStatusWith(ctx, file.ID, file.Status, to, fields); err != nil {
		return nil, err
	}
	updated.UpdatedAt = c.now()
	return &updated, nil
}

// requireStatus 操作的前置状态检查, 不满足时按目标状态报告非法迁移
func requireStatus(file *models.File, want, to models.FileStatus) error {
	if file.Status != want {
		return &TransitionError{From: file.Status, To: to}
	}
	return nil
}
