package worker

import (
	"context"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"go.uber.org/zap"
)

// defaultSweepBatch 单次查询清理的文件数
const defaultSweepBatch = 100

// ExpiredPurger 清理超过恢复期限的回收站文件, 由文件服务实现
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context, limit int) (int, error)
}

// TrashSweeper 定期把超过恢复期限的回收站文件迁移到 deleted 并归还配额
type TrashSweeper struct {
	purger   ExpiredPurger
	interval time.Duration
	batch    int
	log      *zap.Logger
}

func NewTrashSweeper(purger ExpiredPurger, interval time.Duration) *TrashSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TrashSweeper{purger: purger, interval: interval, batch: defaultSweepBatch, log: logger.Named("trash-sweeper")}
}

// Run 阻塞直到 ctx 取消, 启动时先清理一次
func (s *TrashSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Trash sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep 分批清理, 某一批不满时说明已经清理完
func (s *TrashSweeper) sweep(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := s.purger.PurgeExpired(ctx, s.batch)
		if err != nil {
			s.log.Error("Failed to purge expired trash", zap.Error(err))
			break
		}
		total += n
		if n < s.batch {
			break
		}
	}
	if total > 0 {
		s.log.Info("Purged expired trash", zap.Int("count", total))
	}
	return total
}
