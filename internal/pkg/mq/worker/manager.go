package worker

import (
	"context"
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/nats-io/nats.go"
	"github.com/streadway/amqp"
)

// QueueConsumer RabbitMQ 客户端中 worker 需要的部分
type QueueConsumer interface {
	DeclareQueue(queueName string) (amqp.Queue, error)
	Consume(queueName string, handler func(msg amqp.Delivery)) error
}

// FileLifecycle 后台 worker 依赖的文件服务能力
type FileLifecycle interface {
	ResultCompleter
	ExpiredPurger
}

// Transports 结果消费所用的连接, 与 dispatcher.type 对应, 只需提供其中一个
type Transports struct {
	RabbitMQ QueueConsumer
	NATS     *nats.Conn
}

// StartAllWorkers 启动应用中所有定义的后台 Worker, ctx 取消时停止
func StartAllWorkers(ctx context.Context, cfg *config.Config, files FileLifecycle, transports Transports) error {
	// --- 处理结果消费者 ---
	results := NewResultWorker(files, cfg.Dispatcher.Timeout)
	switch cfg.Dispatcher.Type {
	case "nats":
		if transports.NATS == nil {
			return fmt.Errorf("worker: nats dispatcher without a connection")
		}
		sub, err := results.StartNATS(transports.NATS, cfg.Dispatcher.ResultQueue)
		if err != nil {
			return fmt.Errorf("worker: subscribe results: %w", err)
		}
		go func() {
			<-ctx.Done()
			_ = sub.Drain()
		}()
	default:
		if transports.RabbitMQ == nil {
			return fmt.Errorf("worker: rabbitmq dispatcher without a client")
		}
		if err := results.StartRabbitMQ(transports.RabbitMQ, cfg.Dispatcher.ResultQueue); err != nil {
			return fmt.Errorf("worker: consume results: %w", err)
		}
	}

	// --- 回收站清理 ---
	go NewTrashSweeper(files, cfg.Upload.TrashSweepInterval).Run(ctx)

	logger.Info("所有后台工作进程已启动。")
	return nil
}
