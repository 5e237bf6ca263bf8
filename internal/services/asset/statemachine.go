package asset

import (
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
)

// transitions 允许的状态迁移, 未列出的一律拒绝. deleted 是终态.
var transitions = map[models.FileStatus][]models.FileStatus{
	models.StatusUploading:        {models.StatusProcessing, models.StatusReady, models.StatusDeleted},
	models.StatusProcessing:       {models.StatusReady, models.StatusProcessingFailed, models.StatusDeleted},
	models.StatusReady:            {models.StatusProcessing, models.StatusDeleted},
	models.StatusProcessingFailed: {models.StatusProcessing, models.StatusDeleted},
	models.StatusDeleted:          nil,
}

// TransitionError 不被允许的状态迁移
type TransitionError struct {
	From models.FileStatus
	To   models.FileStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move file from %s to %s", e.From, e.To)
}

// Is 使 errors.Is(err, xerr.ErrInvalidTransition) 成立
func (e *TransitionError) Is(target error) bool {
	return target == xerr.ErrInvalidTransition
}

func CanTransition(from, to models.FileStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Apply 返回迁移后的副本, 不修改入参, 也不负责持久化
func Apply(file models.File, to models.FileStatus) (models.File, error) {
	if !CanTransition(file.Status, to) {
		return file, &TransitionError{From: file.Status, To: to}
	}
	file.Status = to
	return file, nil
}
