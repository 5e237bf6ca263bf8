package dispatch

import (
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/mq"
)

// NewRabbitMQDispatcher 声明处理队列后返回基于 RabbitMQ 的分发器
func NewRabbitMQDispatcher(client *mq.RabbitMQClient, cfg *config.DispatcherConfig) (*Dispatcher, error) {
	for _, q := range []string{cfg.ProcessingQueue, cfg.FrameCaptureQueue, cfg.ResultQueue} {
		if _, err := client.DeclareQueue(q); err != nil {
			return nil, fmt.Errorf("dispatch: declare queue %s: %w", q, err)
		}
	}
	return newDispatcher(client, cfg.ProcessingQueue, cfg.FrameCaptureQueue), nil
}
