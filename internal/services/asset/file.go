package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/storage"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxCustomThumbnailBytes 自定义缩略图的大小上限
const MaxCustomThumbnailBytes = 10 << 20

const copyNamePrefix = "Copy of "

type FileService interface {
	GetFile(ctx context.Context, userID, fileID string) (*models.FileDetail, error)
	GetDownloadURL(ctx context.Context, userID, fileID string) (*models.DownloadURLResponse, error)

	CopyFile(ctx context.Context, userID, fileID string, destProjectID *string) (*models.File, error)
	Move(ctx context.Context, userID, fileID string, folderID *string) (*models.File, error)

	// 回收站 (deleted_at), 与状态机的 deleted 相互独立
	SoftDelete(ctx context.Context, userID, fileID string) (*models.File, error)
	Restore(ctx context.Context, userID, fileID string) (*models.File, error)
	// Purge 状态机上的删除, 归还配额
	Purge(ctx context.Context, userID, fileID string) (*models.File, error)
	PurgeExpired(ctx context.Context, limit int) (int, error)

	Reprocess(ctx context.Context, userID, fileID string) (*models.File, error)
	CompleteProcessing(ctx context.Context, result models.ProcessingResult) error

	SetCustomThumbnail(ctx context.Context, userID, fileID, filename string, content io.Reader, size int64, contentType string) (*models.File, error)
	ClearCustomThumbnail(ctx context.Context, userID, fileID string) (*models.File, error)
	CaptureFrame(ctx context.Context, userID, fileID string, timestamp float64) (string, error)
}

type fileService struct {
	core
}

var _ FileService = (*fileService)(nil)

func NewFileService(deps Deps) FileService {
	return &fileService{core: newCore(deps)}
}

// GetFile 返回文件投影与缩略图地址
func (s *fileService) GetFile(ctx context.Context, userID, fileID string) (*models.FileDetail, error) {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	return &models.FileDetail{
		File:         file,
		ThumbnailURL: s.Thumbnails.Resolve(ctx, project.AccountID, file),
	}, nil
}

func (s *fileService) GetDownloadURL(ctx context.Context, userID, fileID string) (*models.DownloadURLResponse, error) {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status != models.StatusReady {
		return nil, fmt.Errorf("file service: file %s is %s, not ready: %w", fileID, file.Status, xerr.ErrValidation)
	}
	signed, err := s.Gateway.GetDownloadURL(ctx, OriginalKey(project.AccountID, file), s.Config.DownloadURLTTL)
	if err != nil {
		logger.Error("GetDownloadURL: Failed to presign download", zap.String("fileID", fileID), zap.Error(err))
		return nil, fmt.Errorf("file service: presign download: %w: %v", xerr.ErrStorage, err)
	}
	return &models.DownloadURLResponse{URL: signed.URL, ExpiresAt: signed.ExpiresAt}, nil
}

// CopyFile 先在目标账户上预留配额并创建新文件, 再执行存储端复制
func (s *fileService) CopyFile(ctx context.Context, userID, fileID string, destProjectID *string) (*models.File, error) {
	source, sourceProject, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if source.Status != models.StatusReady {
		return nil, fmt.Errorf("file service: only ready files can be copied, %s is %s: %w", fileID, source.Status, xerr.ErrValidation)
	}

	destProject := sourceProject
	if destProjectID != nil && *destProjectID != sourceProject.ID {
		destProject, err = s.access.VerifyProject(ctx, userID, *destProjectID)
		if err != nil {
			return nil, err
		}
	}

	copied := &models.File{
		ID:                uuid.NewString(),
		ProjectID:         destProject.ID,
		Name:              copyNamePrefix + source.Name,
		OriginalName:      source.OriginalName,
		MimeType:          source.MimeType,
		FileSizeBytes:     source.FileSizeBytes,
		Checksum:          source.Checksum,
		Status:            models.StatusUploading,
		TechnicalMetadata: source.TechnicalMetadata,
	}
	if destProject.ID == sourceProject.ID {
		copied.FolderID = source.FolderID
	}

	err = s.TM.WithTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.Ledger.Reserve(ctx, tx, destProject.AccountID, copied.FileSizeBytes); err != nil {
			return err
		}
		return s.Files.WithTx(tx).Create(ctx, copied)
	})
	if err != nil {
		return nil, err
	}

	sourceKey := OriginalKey(sourceProject.AccountID, source)
	destKey := OriginalKey(destProject.AccountID, copied)
	if err := s.Gateway.CopyObject(ctx, sourceKey, destKey); err != nil {
		logger.Error("CopyFile: Storage copy failed", zap.String("sourceID", source.ID), zap.String("copyID", copied.ID), zap.Error(err))
		s.rollbackCopy(ctx, destProject.AccountID, copied)
		return nil, fmt.Errorf("file service: copy object: %w: %v", xerr.ErrStorage, err)
	}

	updated, err := s.transition(ctx, s.Files, copied, models.StatusProcessing, nil)
	if err != nil {
		return nil, err
	}
	logger.Info("CopyFile: File copied", zap.String("sourceID", source.ID), zap.String("copyID", copied.ID), zap.String("destProjectID", destProject.ID))
	s.notifyProcessing(destProject.AccountID, updated)
	s.index(updated)
	return updated, nil
}

func (s *fileService) rollbackCopy(ctx context.Context, accountID string, file *models.File) {
	err := s.TM.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.Files.WithTx(tx).UpdateStatus(ctx, file.ID, models.StatusUploading, models.StatusDeleted); err != nil {
			return err
		}
		return s.Ledger.Release(ctx, tx, accountID, file.FileSizeBytes)
	})
	if err != nil {
		logger.Error("CopyFile: Failed to roll back reservation", zap.String("copyID", file.ID), zap.Error(err))
	}
}

// Move folderID 为 nil 时移动到项目根目录
func (s *fileService) Move(ctx context.Context, userID, fileID string, folderID *string) (*models.File, error) {
	file, _, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if folderID != nil {
		folder, err := s.Projects.FindFolder(ctx, *folderID)
		if err != nil {
			return nil, err
		}
		if folder.ProjectID != file.ProjectID {
			return nil, fmt.Errorf("file service: folder %s belongs to another project: %w", *folderID, xerr.ErrValidation)
		}
	}
	if err := s.Files.UpdateFolder(ctx, fileID, folderID); err != nil {
		return nil, err
	}
	file.FolderID = folderID
	s.index(file)
	return file, nil
}

// SoftDelete 放入回收站, 已在回收站中时保留原来的时间
func (s *fileService) SoftDelete(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, _, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if file.IsTrashed() {
		return file, nil
	}
	now := s.now()
	if err := s.Files.SetDeletedAt(ctx, fileID, &now); err != nil {
		return nil, err
	}
	file.DeletedAt = &now
	logger.Info("SoftDelete: File moved to trash", zap.String("fileID", fileID))
	s.index(file)
	return file, nil
}

// Restore 只能在恢复期限内从回收站恢复
func (s *fileService) Restore(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, _, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if !file.IsTrashed() {
		return nil, fmt.Errorf("file service: file %s is not in trash: %w", fileID, xerr.ErrValidation)
	}
	if age := s.now().Sub(*file.DeletedAt); age > s.Config.RestoreWindow {
		return nil, fmt.Errorf("file service: file %s trashed %s ago: %w", fileID, age.Round(time.Second), xerr.ErrRestoreWindowExpired)
	}
	if err := s.Files.SetDeletedAt(ctx, fileID, nil); err != nil {
		return nil, err
	}
	file.DeletedAt = nil
	logger.Info("Restore: File restored from trash", zap.String("fileID", fileID))
	s.index(file)
	return file, nil
}

func (s *fileService) Purge(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	return s.purge(ctx, project, file)
}

// purge 把文件迁移到 deleted 并在同一事务中归还配额, 行本身保留.
// 每个 deleted 的文件都已归还配额, 因此重复调用是空操作.
func (s *fileService) purge(ctx context.Context, project *models.Project, file *models.File) (*models.File, error) {
	if file.Status == models.StatusDeleted {
		return file, nil
	}
	updated, err := Apply(*file, models.StatusDeleted)
	if err != nil {
		return nil, err
	}
	err = s.TM.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.Files.WithTx(tx).UpdateStatus(ctx, file.ID, file.Status, models.StatusDeleted); err != nil {
			return err
		}
		return s.Ledger.Release(ctx, tx, project.AccountID, file.FileSizeBytes)
	})
	if err != nil {
		return nil, err
	}

	keys := []string{
		OriginalKey(project.AccountID, file),
		GeneratedThumbnailKey(project.AccountID, file, s.Config.ThumbnailSize),
	}
	if file.CustomThumbnailKey != nil {
		keys = append(keys, *file.CustomThumbnailKey)
	}
	s.deleteObjects(keys...)

	logger.Info("Purge: File deleted", zap.String("fileID", file.ID), zap.Uint64("releasedBytes", file.FileSizeBytes))
	s.index(&updated)
	return &updated, nil
}

// PurgeExpired 清除超过恢复期限仍在回收站中的文件, 返回处理的数量
func (s *fileService) PurgeExpired(ctx context.Context, limit int) (int, error) {
	cutoff := s.now().Add(-s.Config.RestoreWindow)
	files, err := s.Files.FindTrashedBefore(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	purged := 0
	for i := range files {
		file := &files[i]
		project, err := s.Projects.FindByID(ctx, file.ProjectID)
		if err != nil {
			logger.Error("PurgeExpired: Failed to load project", zap.String("fileID", file.ID), zap.Error(err))
			continue
		}
		if _, err := s.purge(ctx, project, file); err != nil {
			if errors.Is(err, xerr.ErrStatusConflict) {
				continue
			}
			logger.Error("PurgeExpired: Failed to purge file", zap.String("fileID", file.ID), zap.Error(err))
			continue
		}
		purged++
	}
	return purged, nil
}

// Reprocess 让 ready 或 processing_failed 的文件重新进入处理流水线
func (s *fileService) Reprocess(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status != models.StatusReady && file.Status != models.StatusProcessingFailed {
		return nil, &TransitionError{From: file.Status, To: models.StatusProcessing}
	}
	updated, err := s.transition(ctx, s.Files, file, models.StatusProcessing, nil)
	if err != nil {
		return nil, err
	}
	s.notifyProcessing(project.AccountID, updated)
	s.index(updated)
	return updated, nil
}

// CompleteProcessing 处理流水线回传结果
func (s *fileService) CompleteProcessing(ctx context.Context, result models.ProcessingResult) error {
	if result.AssetID == "" {
		return fmt.Errorf("file service: processing result without asset id: %w", xerr.ErrValidation)
	}
	file, err := s.Files.FindByID(ctx, result.AssetID)
	if err != nil {
		return err
	}

	switch result.Kind {
	case "", models.ResultKindProcessing:
		return s.completeProcessing(ctx, file, result)
	case models.ResultKindFrameCapture:
		return s.completeFrameCapture(ctx, file, result)
	default:
		return fmt.Errorf("file service: unknown result kind %q: %w", result.Kind, xerr.ErrValidation)
	}
}

func (s *fileService) completeProcessing(ctx context.Context, file *models.File, result models.ProcessingResult) error {
	to := models.StatusProcessingFailed
	var fields map[string]any
	if result.Success {
		to = models.StatusReady
		if result.TechnicalMetadata != nil {
			fields = map[string]any{"technical_metadata": result.TechnicalMetadata}
		}
	}
	// 只有 processing 的文件接受处理结果
	if err := requireStatus(file, models.StatusProcessing, to); err != nil {
		return err
	}
	updated, err := s.transition(ctx, s.Files, file, to, fields)
	if err != nil {
		return err
	}
	if result.Success && result.TechnicalMetadata != nil {
		updated.TechnicalMetadata = result.TechnicalMetadata
	}
	if result.Success {
		logger.Info("CompleteProcessing: File ready", zap.String("fileID", file.ID))
	} else {
		logger.Warn("CompleteProcessing: Processing failed", zap.String("fileID", file.ID), zap.String("reason", result.Error))
	}
	s.index(updated)
	return nil
}

func (s *fileService) completeFrameCapture(ctx context.Context, file *models.File, result models.ProcessingResult) error {
	if !result.Success || result.CustomThumbnailKey == nil {
		logger.Warn("CompleteProcessing: Frame capture failed", zap.String("fileID", file.ID), zap.String("reason", result.Error))
		return nil
	}
	if file.Status == models.StatusDeleted {
		return fmt.Errorf("file service: frame capture for deleted file %s: %w", file.ID, xerr.ErrStatusConflict)
	}
	project, err := s.Projects.FindByID(ctx, file.ProjectID)
	if err != nil {
		return err
	}
	// 截帧结果只能指向本资源的截帧对象
	if want := frameCaptureKey(project.AccountID, file); *result.CustomThumbnailKey != want {
		return fmt.Errorf("file service: frame capture key %q does not belong to %s: %w", *result.CustomThumbnailKey, file.ID, xerr.ErrValidation)
	}
	if err := s.Files.SetCustomThumbnailKey(ctx, file.ID, result.CustomThumbnailKey); err != nil {
		return err
	}
	s.Thumbnails.Invalidate(ctx, *result.CustomThumbnailKey)
	file.CustomThumbnailKey = result.CustomThumbnailKey
	s.index(file)
	return nil
}

// SetCustomThumbnail 上传图片作为自定义缩略图, 替换已有的自定义缩略图
func (s *fileService) SetCustomThumbnail(ctx context.Context, userID, fileID, filename string, content io.Reader, size int64, contentType string) (*models.File, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, fmt.Errorf("file service: thumbnail content type %q is not an image: %w", contentType, xerr.ErrValidation)
	}
	if size <= 0 || size > MaxCustomThumbnailBytes {
		return nil, fmt.Errorf("file service: thumbnail size %d outside (0, %d]: %w", size, MaxCustomThumbnailBytes, xerr.ErrValidation)
	}
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status == models.StatusDeleted {
		return nil, fmt.Errorf("file service: file %s is deleted: %w", fileID, xerr.ErrValidation)
	}

	key := storage.ObjectKey(assetRef(project.AccountID, file), storage.VariantCustomThumbnail, filename)
	if err := s.Gateway.PutObject(ctx, key, content, size, contentType); err != nil {
		logger.Error("SetCustomThumbnail: Failed to store thumbnail", zap.String("fileID", fileID), zap.Error(err))
		return nil, fmt.Errorf("file service: put thumbnail: %w: %v", xerr.ErrStorage, err)
	}
	if err := s.Files.SetCustomThumbnailKey(ctx, fileID, &key); err != nil {
		return nil, err
	}

	if old := file.CustomThumbnailKey; old != nil && *old != key {
		s.Thumbnails.Invalidate(ctx, *old)
		s.deleteObjects(*old)
	}
	s.Thumbnails.Invalidate(ctx, key)
	file.CustomThumbnailKey = &key
	return file, nil
}

func (s *fileService) ClearCustomThumbnail(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, _, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	old := file.CustomThumbnailKey
	if old == nil {
		return file, nil
	}
	if err := s.Files.SetCustomThumbnailKey(ctx, fileID, nil); err != nil {
		return nil, err
	}
	s.Thumbnails.Invalidate(ctx, *old)
	s.deleteObjects(*old)
	file.CustomThumbnailKey = nil
	return file, nil
}

// CaptureFrame 为 ready 的视频请求截帧, 结果异步写入自定义缩略图.
// 调用方需要任务 id, 所以分发失败会直接返回错误.
func (s *fileService) CaptureFrame(ctx context.Context, userID, fileID string, timestamp float64) (string, error) {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return "", err
	}
	if file.Status != models.StatusReady || file.MediaCategory() != "video" {
		return "", fmt.Errorf("file service: frame capture needs a ready video, %s is %s %s: %w", fileID, file.Status, file.MimeType, xerr.ErrValidation)
	}
	if timestamp < 0 {
		return "", fmt.Errorf("file service: negative timestamp: %w", xerr.ErrValidation)
	}
	if duration, ok := file.TechnicalMetadata["duration"].(float64); ok && timestamp > duration {
		return "", fmt.Errorf("file service: timestamp %.2f beyond duration %.2f: %w", timestamp, duration, xerr.ErrValidation)
	}

	jobID, err := s.Dispatcher.EnqueueFrameCapture(ctx, models.FrameCaptureRequest{
		AssetID:   file.ID,
		AccountID: project.AccountID,
		ProjectID: file.ProjectID,
		Timestamp: timestamp,
		MimeType:  file.MimeType,
		TargetKey: frameCaptureKey(project.AccountID, file),
	})
	if err != nil {
		logger.Error("CaptureFrame: Failed to enqueue", zap.String("fileID", fileID), zap.Error(err))
		return "", fmt.Errorf("file service: enqueue frame capture: %w: %v", xerr.ErrDispatch, err)
	}
	logger.Info("CaptureFrame: Job enqueued", zap.String("fileID", fileID), zap.String("jobID", jobID))
	return jobID, nil
}

func frameCaptureKey(accountID string, file *models.File) string {
	return storage.ObjectKey(assetRef(accountID, file), storage.VariantCustomThumbnail, "frame.jpg")
}
