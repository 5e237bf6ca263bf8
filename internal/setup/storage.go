package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/storage"
	"go.uber.org/zap"
)

type bucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

// InitStorage 按 storage.type 创建对象存储网关并确保存储桶存在
func InitStorage(cfg *config.Config) (storage.Gateway, error) {
	gateway, err := storage.NewGateway(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化存储服务失败: %w", err)
	}
	logger.Info("存储服务已选择并初始化", zap.String("type", cfg.Storage.Type))

	// 为外部调用使用带超时的上下文
	if ensurer, ok := gateway.(bucketEnsurer); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ensurer.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("检查或创建存储桶失败: %w", err)
		}
	}
	return gateway, nil
}
