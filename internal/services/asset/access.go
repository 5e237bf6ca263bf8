package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/3Eeeecho/go-mediavault/internal/repositories"
	"go.uber.org/zap"
)

// AccessVerifier 校验调用者是否为项目成员.
// 非成员与不存在一样返回 ErrNotFound, 不暴露资源是否存在.
type AccessVerifier struct {
	files    repositories.FileRepository
	projects repositories.ProjectRepository
}

func NewAccessVerifier(files repositories.FileRepository, projects repositories.ProjectRepository) *AccessVerifier {
	return &AccessVerifier{files: files, projects: projects}
}

func (a *AccessVerifier) VerifyProject(ctx context.Context, userID, projectID string) (*models.Project, error) {
	project, err := a.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ok, err := a.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("VerifyProject: Access denied", zap.String("projectID", projectID), zap.String("userID", userID))
		return nil, fmt.Errorf("project %s: %w", projectID, xerr.ErrNotFound)
	}
	return project, nil
}

// VerifyFile 加载文件并校验其所属项目
func (a *AccessVerifier) VerifyFile(ctx context.Context, userID, fileID string) (*models.File, *models.Project, error) {
	file, err := a.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	project, err := a.VerifyProject(ctx, userID, file.ProjectID)
	if err != nil {
		if errors.Is(err, xerr.ErrNotFound) {
			return nil, nil, fmt.Errorf("file %s: %w", fileID, xerr.ErrNotFound)
		}
		return nil, nil, err
	}
	return file, project, nil
}
