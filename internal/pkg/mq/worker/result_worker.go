package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var processingResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mediavault_processing_results_total",
	Help: "Processing results consumed from the pipeline, by outcome.",
}, []string{"outcome"})

// ResultCompleter 处理结果的落库方, 由文件服务实现
type ResultCompleter interface {
	CompleteProcessing(ctx context.Context, result models.ProcessingResult) error
}

// outcome 单条结果消息的处理结论
type outcome string

const (
	outcomeApplied outcome = "applied"
	// 格式错误, 直接丢弃
	outcomeMalformed outcome = "malformed"
	// 文件已不在 processing 或不存在, 重复投递或过期的结果
	outcomeStale outcome = "stale"
	// 暂时性错误, 重新入队
	outcomeRetry outcome = "retry"
)

// ResultWorker 消费处理流水线回传的结果并驱动状态机
type ResultWorker struct {
	completer ResultCompleter
	timeout   time.Duration
	log       *zap.Logger
}

func NewResultWorker(completer ResultCompleter, timeout time.Duration) *ResultWorker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResultWorker{completer: completer, timeout: timeout, log: logger.Named("result-worker")}
}

func (w *ResultWorker) handle(body []byte) outcome {
	var result models.ProcessingResult
	if err := json.Unmarshal(body, &result); err != nil || result.AssetID == "" {
		w.log.Error("Failed to decode processing result", zap.ByteString("body", body), zap.Error(err))
		return w.record(outcomeMalformed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	err := w.completer.CompleteProcessing(ctx, result)
	switch {
	case err == nil:
		w.log.Info("Processing result applied", zap.String("assetID", result.AssetID), zap.Bool("success", result.Success))
		return w.record(outcomeApplied)
	case errors.Is(err, xerr.ErrInvalidTransition),
		errors.Is(err, xerr.ErrStatusConflict),
		errors.Is(err, xerr.ErrNotFound):
		w.log.Warn("Dropping stale processing result", zap.String("assetID", result.AssetID), zap.Error(err))
		return w.record(outcomeStale)
	case errors.Is(err, xerr.ErrValidation):
		w.log.Error("Rejecting invalid processing result", zap.String("assetID", result.AssetID), zap.Error(err))
		return w.record(outcomeMalformed)
	default:
		w.log.Error("Failed to apply processing result", zap.String("assetID", result.AssetID), zap.Error(err))
		return w.record(outcomeRetry)
	}
}

func (w *ResultWorker) record(o outcome) outcome {
	processingResults.WithLabelValues(string(o)).Inc()
	return o
}

// HandleDelivery RabbitMQ 消费回调
func (w *ResultWorker) HandleDelivery(msg amqp.Delivery) {
	switch w.handle(msg.Body) {
	case outcomeRetry:
		_ = msg.Nack(false, true) // 重新入队
	case outcomeMalformed:
		_ = msg.Nack(false, false) // 解析失败,直接抛弃
	default:
		_ = msg.Ack(false)
	}
}

// StartRabbitMQ 声明结果队列并开始消费
func (w *ResultWorker) StartRabbitMQ(client QueueConsumer, queue string) error {
	if _, err := client.DeclareQueue(queue); err != nil {
		return err
	}
	return client.Consume(queue, w.HandleDelivery)
}

// HandleNATS NATS 订阅回调, core NATS 没有重投, 只记录结果
func (w *ResultWorker) HandleNATS(msg *nats.Msg) {
	if o := w.handle(msg.Data); o == outcomeRetry {
		w.log.Warn("Processing result lost, NATS has no redelivery", zap.String("subject", msg.Subject))
	}
}

// StartNATS 以队列组订阅结果 subject, 多个实例之间负载均衡
func (w *ResultWorker) StartNATS(conn *nats.Conn, subject string) (*nats.Subscription, error) {
	sub, err := conn.QueueSubscribe(subject, "mediavault-results", w.HandleNATS)
	if err != nil {
		return nil, err
	}
	w.log.Info("Subscribed to processing results", zap.String("subject", subject))
	return sub, nil
}
