package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectRepository 项目与成员关系只读访问
type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	FindFolder(ctx context.Context, folderID string) (*models.Folder, error)
}

type projectRepository struct {
	db *gorm.DB
}

var _ ProjectRepository = (*projectRepository)(nil)

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, xerr.ErrNotFound)
		}
		logger.Error("FindByID: Failed to query project", zap.String("projectID", id), zap.Error(err))
		return nil, fmt.Errorf("project repository: find %s: %w: %v", id, xerr.ErrDatabase, err)
	}
	return &project, nil
}

func (r *projectRepository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		logger.Error("IsMember: Failed to query membership", zap.String("projectID", projectID), zap.String("userID", userID), zap.Error(err))
		return false, fmt.Errorf("project repository: membership: %w: %v", xerr.ErrDatabase, err)
	}
	return count > 0, nil
}

func (r *projectRepository) FindFolder(ctx context.Context, folderID string) (*models.Folder, error) {
	var folder models.Folder
	err := r.db.WithContext(ctx).Where("id = ?", folderID).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("folder %s: %w", folderID, xerr.ErrNotFound)
		}
		logger.Error("FindFolder: Failed to query folder", zap.String("folderID", folderID), zap.Error(err))
		return nil, fmt.Errorf("project repository: find folder %s: %w: %v", folderID, xerr.ErrDatabase, err)
	}
	return &folder, nil
}
