// Package dispatch 把处理任务投递给外部媒体处理流水线, 支持 RabbitMQ 与 NATS 两种传输
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/google/uuid"
)

// Publisher 按队列名 (或 subject) 投递一条消息
type Publisher interface {
	Publish(destination string, body []byte) error
}

// Dispatcher 通用实现, 传输细节由 Publisher 决定
type Dispatcher struct {
	publisher         Publisher
	processingQueue   string
	frameCaptureQueue string
}

func newDispatcher(p Publisher, processingQueue, frameCaptureQueue string) *Dispatcher {
	return &Dispatcher{
		publisher:         p,
		processingQueue:   processingQueue,
		frameCaptureQueue: frameCaptureQueue,
	}
}

// EnqueueProcessingJobs 投递一个资源的处理任务
func (d *Dispatcher) EnqueueProcessingJobs(ctx context.Context, job models.ProcessingJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("dispatch: marshal processing job: %w", err)
	}
	if err := d.publisher.Publish(d.processingQueue, body); err != nil {
		return fmt.Errorf("dispatch: publish processing job for %s: %w", job.AssetID, err)
	}
	return nil
}

// EnqueueFrameCapture 投递截帧任务并返回任务 id, 请求未带 id 时自动生成
func (d *Dispatcher) EnqueueFrameCapture(ctx context.Context, req models.FrameCaptureRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.JobID == "" {
		req.JobID = uuid.NewString()
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("dispatch: marshal frame capture: %w", err)
	}
	if err := d.publisher.Publish(d.frameCaptureQueue, body); err != nil {
		return "", fmt.Errorf("dispatch: publish frame capture for %s: %w", req.AssetID, err)
	}
	return req.JobID, nil
}
