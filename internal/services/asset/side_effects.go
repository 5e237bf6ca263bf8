package asset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var sideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mediavault_side_effect_failures_total",
	Help: "Best-effort side effects (dispatch, indexing, object cleanup) that failed.",
}, []string{"task"})

// 副作用任务名, 同时用作指标标签
const (
	taskProcessingDispatch = "processing_dispatch"
	taskSearchIndex        = "search_index"
	taskObjectCleanup      = "object_cleanup"
)

// SideEffects 运行尽力而为的后台任务: 不阻塞请求, 失败不回滚已提交的状态.
// 失败会记录错误日志并计入 mediavault_side_effect_failures_total.
type SideEffects struct {
	wg      sync.WaitGroup
	timeout time.Duration
	log     *zap.Logger
}

func NewSideEffects(timeout time.Duration) *SideEffects {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SideEffects{timeout: timeout, log: logger.Named("side-effects")}
}

// Go 在独立的 goroutine 中执行 fn, ctx 与请求的生命周期无关
func (s *SideEffects) Go(task string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.fail(task, fmt.Errorf("panic: %v", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.fail(task, err)
		}
	}()
}

// Wait 等待所有进行中的任务结束, 用于优雅退出和测试
func (s *SideEffects) Wait() {
	s.wg.Wait()
}

func (s *SideEffects) fail(task string, err error) {
	sideEffectFailures.WithLabelValues(task).Inc()
	s.log.Error("Side effect failed", zap.String("task", task), zap.Error(err))
}
