package dispatch

import (
	"fmt"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ConnectNATS 建立带自动重连的 NATS 连接
func ConnectNATS(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("go-mediavault"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dispatch: connect nats: %w", err)
	}
	return conn, nil
}

// natsPublisher 队列名直接作为 subject
type natsPublisher struct {
	conn *nats.Conn
}

func (p natsPublisher) Publish(subject string, body []byte) error {
	return p.conn.Publish(subject, body)
}

// NewNATSDispatcher 返回基于 NATS 的分发器
func NewNATSDispatcher(conn *nats.Conn, cfg *config.DispatcherConfig) *Dispatcher {
	return newDispatcher(natsPublisher{conn: conn}, cfg.ProcessingQueue, cfg.FrameCaptureQueue)
}
