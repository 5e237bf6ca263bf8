package setup

import (
	"fmt"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/dispatch"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/mq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Messaging 分发器和它使用的连接, 只有 dispatcher.type 对应的连接非空
type Messaging struct {
	Dispatcher *dispatch.Dispatcher
	RabbitMQ   *mq.RabbitMQClient
	NATS       *nats.Conn
}

// InitMessaging 按 dispatcher.type 连接 RabbitMQ 或 NATS
func InitMessaging(cfg *config.Config) (*Messaging, error) {
	switch cfg.Dispatcher.Type {
	case "nats":
		conn, err := dispatch.ConnectNATS(cfg.NATS.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("Processing dispatcher uses NATS", zap.String("url", conn.ConnectedUrl()))
		return &Messaging{Dispatcher: dispatch.NewNATSDispatcher(conn, &cfg.Dispatcher), NATS: conn}, nil
	case "rabbitmq", "":
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		d, err := dispatch.NewRabbitMQDispatcher(client, &cfg.Dispatcher)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to declare dispatch queues: %w", err)
		}
		logger.Info("Processing dispatcher uses RabbitMQ")
		return &Messaging{Dispatcher: d, RabbitMQ: client}, nil
	default:
		return nil, fmt.Errorf("unknown dispatcher type %q", cfg.Dispatcher.Type)
	}
}

// Close 关闭已建立的连接
func (m *Messaging) Close() {
	if m.RabbitMQ != nil {
		m.RabbitMQ.Close()
	}
	if m.NATS != nil {
		if err := m.NATS.Drain(); err != nil {
			logger.Error("Error draining NATS connection", zap.Error(err))
		}
	}
}
