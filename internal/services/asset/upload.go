package asset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/cache"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/storage"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UploadService interface {
	InitiateUpload(ctx context.Context, userID, projectID string, req *models.InitiateUploadRequest) (*models.InitiateUploadResponse, error)
	ConfirmUpload(ctx context.Context, userID, fileID string) (*models.File, error)

	InitMultipart(ctx context.Context, userID, fileID string, chunkCount int) (*models.InitMultipartResponse, error)
	GetPartURLs(ctx context.Context, userID, fileID, uploadID string, chunkCount int) ([]models.PartURL, error)
	CompleteMultipart(ctx context.Context, userID, fileID, uploadID string, parts []models.UploadPartInfo) (*models.File, error)
	AbortMultipart(ctx context.Context, userID, fileID, uploadID string) error
}

type uploadService struct {
	core
}

var _ UploadService = (*uploadService)(nil)

func NewUploadService(deps Deps) UploadService {
	return &uploadService{core: newCore(deps)}
}

// InitiateUpload 预留配额并创建 uploading 状态的文件, 返回直传地址
func (s *uploadService) InitiateUpload(ctx context.Context, userID, projectID string, req *models.InitiateUploadRequest) (*models.InitiateUploadResponse, error) {
	if err := s.validateInitiate(req); err != nil {
		return nil, err
	}
	project, err := s.access.VerifyProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if req.FolderID != nil {
		if err := s.checkFolder(ctx, projectID, *req.FolderID); err != nil {
			return nil, err
		}
	}

	originalName := strings.TrimSpace(req.OriginalName)
	if originalName == "" {
		originalName = strings.TrimSpace(req.Name)
	}
	file := &models.File{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		FolderID:      req.FolderID,
		Name:          strings.TrimSpace(req.Name),
		OriginalName:  originalName,
		MimeType:      strings.TrimSpace(req.MimeType),
		FileSizeBytes: uint64(*req.FileSizeBytes),
		Checksum:      req.Checksum,
		Status:        models.StatusUploading,
	}

	// 配额预留与文件行在同一事务中提交
	err = s.TM.WithTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.Ledger.Reserve(ctx, tx, project.AccountID, file.FileSizeBytes); err != nil {
			return err
		}
		return s.Files.WithTx(tx).Create(ctx, file)
	})
	if err != nil {
		return nil, err
	}

	key := OriginalKey(project.AccountID, file)
	signed, err := s.Gateway.GetUploadURL(ctx, key)
	if err != nil {
		logger.Error("InitiateUpload: Failed to presign upload URL", zap.String("fileID", file.ID), zap.String("key", key), zap.Error(err))
		s.compensate(ctx, project.AccountID, file)
		return nil, fmt.Errorf("upload service: presign upload url: %w: %v", xerr.ErrStorage, err)
	}

	logger.Info("InitiateUpload: File created",
		zap.String("fileID", file.ID),
		zap.String("projectID", projectID),
		zap.Uint64("size", file.FileSizeBytes))
	s.index(file)
	return &models.InitiateUploadResponse{
		File:       file,
		UploadURL:  signed.URL,
		StorageKey: key,
		ChunkSize:  s.Config.ChunkSizeBytes,
		ExpiresAt:  signed.ExpiresAt,
	}, nil
}

func (s *uploadService) validateInitiate(req *models.InitiateUploadRequest) error {
	if req == nil {
		return fmt.Errorf("upload service: empty request: %w", xerr.ErrValidation)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("upload service: name is required: %w", xerr.ErrValidation)
	}
	if len(name) > 255 {
		return fmt.Errorf("upload service: name longer than 255 bytes: %w", xerr.ErrValidation)
	}
	mime := strings.TrimSpace(req.MimeType)
	if mime == "" || !strings.Contains(mime, "/") {
		return fmt.Errorf("upload service: mime_type %q is invalid: %w", req.MimeType, xerr.ErrValidation)
	}
	if req.FileSizeBytes == nil {
		return fmt.Errorf("upload service: file_size_bytes is required: %w", xerr.ErrValidation)
	}
	size := *req.FileSizeBytes
	if size < 0 || uint64(size) > s.Config.MaxFileSizeBytes {
		return fmt.Errorf("upload service: file_size_bytes %d outside [0, %d]: %w", size, s.Config.MaxFileSizeBytes, xerr.ErrValidation)
	}
	return nil
}

func (s *uploadService) checkFolder(ctx context.Context, projectID, folderID string) error {
	folder, err := s.Projects.FindFolder(ctx, folderID)
	if err != nil {
		return err
	}
	if folder.ProjectID != projectID {
		return fmt.Errorf("upload service: folder %s belongs to another project: %w", folderID, xerr.ErrValidation)
	}
	return nil
}

// compensate 撤销 InitiateUpload 已提交的预留, 并把文件标记为 deleted
func (s *uploadService) compensate(ctx context.Context, accountID string, file *models.File) {
	err := s.TM.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.Files.WithTx(tx).UpdateStatus(ctx, file.ID, models.StatusUploading, models.StatusDeleted); err != nil {
			return err
		}
		return s.Ledger.Release(ctx, tx, accountID, file.FileSizeBytes)
	})
	if err != nil {
		logger.Error("InitiateUpload: Compensation failed, quota may be held by an orphan row",
			zap.String("fileID", file.ID), zap.String("accountID", accountID), zap.Error(err))
		return
	}
	file.Status = models.StatusDeleted
}

// ConfirmUpload 对象落盘后把文件推进到 processing 并通知处理流水线
func (s *uploadService) ConfirmUpload(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(file, models.StatusUploading, models.StatusProcessing); err != nil {
		return nil, err
	}

	key := OriginalKey(project.AccountID, file)
	info, err := s.Gateway.HeadObject(ctx, key)
	if err != nil {
		logger.Error("ConfirmUpload: Failed to check object", zap.String("fileID", fileID), zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("upload service: head object: %w: %v", xerr.ErrStorage, err)
	}
	if info == nil {
		return nil, fmt.Errorf("upload service: object %s: %w", key, xerr.ErrUploadNotFound)
	}
	// 配额按声明大小预留, 实际对象必须与之一致; 文件保持 uploading, 客户端可以重新上传
	if info.Size < 0 || uint64(info.Size) != file.FileSizeBytes {
		logger.Warn("ConfirmUpload: Stored object size differs from declared size",
			zap.String("fileID", fileID), zap.Uint64("declared", file.FileSizeBytes), zap.Int64("stored", info.Size))
		return nil, fmt.Errorf("upload service: stored size %d differs from declared %d: %w", info.Size, file.FileSizeBytes, xerr.ErrValidation)
	}

	return s.startProcessing(ctx, project.AccountID, file)
}

func (s *uploadService) startProcessing(ctx context.Context, accountID string, file *models.File) (*models.File, error) {
	updated, err := s.transition(ctx, s.Files, file, models.StatusProcessing, nil)
	if err != nil {
		return nil, err
	}
	logger.Info("Upload confirmed, processing started", zap.String("fileID", file.ID))
	s.notifyProcessing(accountID, updated)
	s.index(updated)
	return updated, nil
}

func validateChunkCount(chunkCount int) error {
	if chunkCount < 1 || chunkCount > MaxChunkCount {
		return fmt.Errorf("upload service: chunk_count %d outside [1, %d]: %w", chunkCount, MaxChunkCount, xerr.ErrValidation)
	}
	return nil
}

// InitMultipart 为 uploading 状态的文件开启分片上传
func (s *uploadService) InitMultipart(ctx context.Context, userID, fileID string, chunkCount int) (*models.InitMultipartResponse, error) {
	if err := validateChunkCount(chunkCount); err != nil {
		return nil, err
	}
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(file, models.StatusUploading, models.StatusProcessing); err != nil {
		return nil, err
	}

	key := OriginalKey(project.AccountID, file)
	upload, err := s.Gateway.InitChunkedUpload(ctx, key)
	if err != nil {
		logger.Error("InitMultipart: Failed to init chunked upload", zap.String("fileID", fileID), zap.Error(err))
		return nil, fmt.Errorf("upload service: init chunked upload: %w: %v", xerr.ErrStorage, err)
	}

	session := &models.MultipartSession{
		UploadID:   upload.UploadID,
		FileID:     file.ID,
		StorageKey: key,
		ChunkCount: chunkCount,
		CreatedAt:  s.now(),
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		// 会话保存失败时中止存储端的上传, 避免留下孤儿分片
		logger.Error("InitMultipart: Failed to save session", zap.String("uploadID", upload.UploadID), zap.Error(err))
		_ = s.Gateway.AbortChunkedUpload(ctx, upload.UploadID, key)
		return nil, fmt.Errorf("upload service: save multipart session: %w", err)
	}

	logger.Info("InitMultipart: Multipart upload started",
		zap.String("fileID", fileID), zap.String("uploadID", upload.UploadID), zap.Int("chunkCount", chunkCount))
	return &models.InitMultipartResponse{
		UploadID:   upload.UploadID,
		StorageKey: key,
		ChunkSize:  s.Config.ChunkSizeBytes,
	}, nil
}

// loadSession 会话必须存在且属于该文件
func (s *uploadService) loadSession(ctx context.Context, fileID, uploadID string) (*models.MultipartSession, error) {
	session, err := s.Sessions.Load(ctx, uploadID)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return nil, fmt.Errorf("upload service: multipart upload %s: %w", uploadID, xerr.ErrUploadNotFound)
		}
		return nil, fmt.Errorf("upload service: load session: %w", err)
	}
	if session.FileID != fileID {
		return nil, fmt.Errorf("upload service: multipart upload %s does not belong to file %s: %w", uploadID, fileID, xerr.ErrUploadNotFound)
	}
	return session, nil
}

func (s *uploadService) GetPartURLs(ctx context.Context, userID, fileID, uploadID string, chunkCount int) ([]models.PartURL, error) {
	if err := validateChunkCount(chunkCount); err != nil {
		return nil, err
	}
	if _, _, err := s.access.VerifyFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	session, err := s.loadSession(ctx, fileID, uploadID)
	if err != nil {
		return nil, err
	}
	if chunkCount != session.ChunkCount {
		return nil, fmt.Errorf("upload service: chunk_count %d differs from session's %d: %w", chunkCount, session.ChunkCount, xerr.ErrValidation)
	}

	chunks, err := s.Gateway.GetChunkURLs(ctx, uploadID, session.StorageKey, chunkCount)
	if err != nil {
		logger.Error("GetPartURLs: Failed to presign parts", zap.String("uploadID", uploadID), zap.Error(err))
		return nil, fmt.Errorf("upload service: presign parts: %w: %v", xerr.ErrStorage, err)
	}
	urls := make([]models.PartURL, 0, len(chunks))
	for _, c := range chunks {
		urls = append(urls, models.PartURL{PartNumber: c.PartNumber, URL: c.URL})
	}
	return urls, nil
}

func validateParts(parts []models.UploadPartInfo) ([]storage.CompletedPart, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("upload service: parts list is empty: %w", xerr.ErrValidation)
	}
	seen := make(map[int]bool, len(parts))
	completed := make([]storage.CompletedPart, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p.ETag) == "" {
			return nil, fmt.Errorf("upload service: part %d has no etag: %w", p.PartNumber, xerr.ErrValidation)
		}
		if p.PartNumber < 1 || p.PartNumber > MaxChunkCount {
			return nil, fmt.Errorf("upload service: part number %d outside [1, %d]: %w", p.PartNumber, MaxChunkCount, xerr.ErrValidation)
		}
		if seen[p.PartNumber] {
			return nil, fmt.Errorf("upload service: part %d listed twice: %w", p.PartNumber, xerr.ErrValidation)
		}
		seen[p.PartNumber] = true
		completed = append(completed, storage.CompletedPart{PartNumber: p.PartNumber, ETag: p.ETag})
	}
	// 存储端要求分片按编号升序
	sort.Slice(completed, func(i, j int) bool { return completed[i].PartNumber < completed[j].PartNumber })
	return completed, nil
}

// CompleteMultipart 合并分片并把文件推进到 processing
func (s *uploadService) CompleteMultipart(ctx context.Context, userID, fileID, uploadID string, parts []models.UploadPartInfo) (*models.File, error) {
	completed, err := validateParts(parts)
	if err != nil {
		return nil, err
	}
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(file, models.StatusUploading, models.StatusProcessing); err != nil {
		return nil, err
	}
	session, err := s.loadSession(ctx, fileID, uploadID)
	if err != nil {
		return nil, err
	}

	if err := s.Gateway.CompleteChunkedUpload(ctx, uploadID, session.StorageKey, completed); err != nil {
		logger.Error("CompleteMultipart: Failed to complete chunked upload", zap.String("uploadID", uploadID), zap.Error(err))
		return nil, fmt.Errorf("upload service: complete chunked upload: %w: %v", xerr.ErrStorage, err)
	}

	updated, err := s.startProcessing(ctx, project.AccountID, file)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Delete(ctx, uploadID); err != nil {
		logger.Warn("CompleteMultipart: Failed to delete session", zap.String("uploadID", uploadID), zap.Error(err))
	}
	return updated, nil
}

// AbortMultipart 可以在任何阶段重复调用; 会话或存储端上传已不存在都不是错误.
// 配额保持预留, 文件仍为 uploading, 客户端可以重新开始上传或清除文件.
func (s *uploadService) AbortMultipart(ctx context.Context, userID, fileID, uploadID string) error {
	file, project, err := s.access.VerifyFile(ctx, userID, fileID)
	if err != nil {
		return err
	}

	key := OriginalKey(project.AccountID, file)
	// 会话属于其他文件时不能删除它
	ownSession := true
	session, err := s.Sessions.Load(ctx, uploadID)
	switch {
	case err == nil && session.FileID == fileID:
		key = session.StorageKey
	case err == nil:
		ownSession = false
	case errors.Is(err, cache.ErrSessionNotFound):
		logger.Info("AbortMultipart: No session found, aborting by derived key", zap.String("uploadID", uploadID))
	default:
		logger.Warn("AbortMultipart: Failed to load session", zap.String("uploadID", uploadID), zap.Error(err))
	}

	if err := s.Gateway.AbortChunkedUpload(ctx, uploadID, key); err != nil {
		logger.Error("AbortMultipart: Failed to abort chunked upload", zap.String("uploadID", uploadID), zap.Error(err))
		return fmt.Errorf("upload service: abort chunked upload: %w: %v", xerr.ErrStorage, err)
	}
	if ownSession {
		if err := s.Sessions.Delete(ctx, uploadID); err != nil {
			logger.Warn("AbortMultipart: Failed to delete session", zap.String("uploadID", uploadID), zap.Error(err))
		}
	}
	logger.Info("AbortMultipart: Multipart upload aborted", zap.String("fileID", fileID), zap.String("uploadID", uploadID))
	return nil
}
