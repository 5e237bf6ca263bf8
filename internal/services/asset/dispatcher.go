package asset

import (
	"context"

	"github.com/3Eeeecho/go-mediavault/internal/models"
)

// Dispatcher 外部媒体处理流水线
type Dispatcher interface {
	EnqueueProcessingJobs(ctx context.Context, job models.ProcessingJob) error
	EnqueueFrameCapture(ctx context.Context, req models.FrameCaptureRequest) (string, error)
}
