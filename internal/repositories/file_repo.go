package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileRepository 定义文件数据访问层接口
type FileRepository interface {
	// WithTx 返回绑定到事务 tx 的仓库
	WithTx(tx *gorm.DB) FileRepository

	Create(ctx context.Context, file *models.File) error
	FindByID(ctx context.Context, id string) (*models.File, error)
	// FindTrashedBefore 查找在 cutoff 之前进入回收站且尚未删除的文件
	FindTrashedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.File, error)

	// UpdateStatus 乐观并发的状态切换: 只有当前状态仍为 from 时才会写入
	UpdateStatus(ctx context.Context, id string, from, to models.FileStatus) error
	// UpdateStatusWith 同 UpdateStatus, 并在同一条语句中写入额外字段
	UpdateStatusWith(ctx context.Context, id string, from, to models.FileStatus, fields map[string]any) error

	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error
	UpdateFolder(ctx context.Context, id string, folderID *string) error
	SetCustomThumbnailKey(ctx context.Context, id string, key *string) error
}

type fileRepository struct {
	db *gorm.DB
}

var _ FileRepository = (*fileRepository)(nil)

// NewFileRepository 创建一个新的 FileRepository 实例
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) WithTx(tx *gorm.DB) FileRepository {
	return &fileRepository{db: tx}
}

func (r *fileRepository) Create(ctx context.Context, file *models.File) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		logger.Error("Create: Failed to create file in DB", zap.String("fileID", file.ID), zap.String("name", file.Name), zap.Error(err))
		return fmt.Errorf("file repository: create: %w: %v", xerr.ErrDatabase, err)
	}
	return nil
}

func (r *fileRepository) FindByID(ctx context.Context, id string) (*models.File, error) {
	var file models.File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %s: %w", id, xerr.ErrNotFound)
		}
		logger.Error("FindByID: Failed to query file", zap.String("fileID", id), zap.Error(err))
		return nil, fmt.Errorf("file repository: find %s: %w: %v", id, xerr.ErrDatabase, err)
	}
	return &file, nil
}

func (r *fileRepository) FindTrashedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.File, error) {
	var files []models.File
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ? AND status <> ?", cutoff, models.StatusDeleted).
		Order("deleted_at ASC").
		Limit(limit).
		Find(&files).Error
	if err != nil {
		logger.Error("FindTrashedBefore: Failed to query trashed files", zap.Time("cutoff", cutoff), zap.Error(err))
		return nil, fmt.Errorf("file repository: find trashed: %w: %v", xerr.ErrDatabase, err)
	}
	return files, nil
}

func (r *fileRepository) UpdateStatus(ctx context.Context, id string, from, to models.FileStatus) error {
	return r.UpdateStatusWith(ctx, id, from, to, nil)
}

func (r *fileRepository) UpdateStatusWith(ctx context.Context, id string, from, to models.FileStatus, fields map[string]any) error {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}
	result := r.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		logger.Error("UpdateStatus: Failed to update file status",
			zap.String("fileID", id), zap.String("from", string(from)), zap.String("to", string(to)), zap.Error(result.Error))
		return fmt.Errorf("file repository: update status: %w: %v", xerr.ErrDatabase, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("file %s is no longer %s: %w", id, from, xerr.ErrStatusConflict)
	}
	return nil
}

func (r *fileRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error {
	return r.updateColumn(ctx, id, "deleted_at", deletedAt)
}

func (r *fileRepository) UpdateFolder(ctx context.Context, id string, folderID *string) error {
	return r.updateColumn(ctx, id, "folder_id", folderID)
}

func (r *fileRepository) SetCustomThumbnailKey(ctx context.Context, id string, key *string) error {
	return r.updateColumn(ctx, id, "custom_thumbnail_key", key)
}

func (r *fileRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	err := r.db.WithContext(ctx).Model(&models.File{}).Where("id = ?", id).Update(column, value).Error
	if err != nil {
		logger.Error("updateColumn: Failed to update file", zap.String("fileID", id), zap.String("column", column), zap.Error(err))
		return fmt.Errorf("file repository: update %s: %w: %v", column, xerr.ErrDatabase, err)
	}
	return nil
}
