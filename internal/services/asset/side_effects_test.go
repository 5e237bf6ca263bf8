package asset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSideEffectsCountsFailures(t *testing.T) {
	effects := NewSideEffects(time.Second)
	before := promtestutil.ToFloat64(sideEffectFailures.WithLabelValues("test_failure"))

	var ran atomic.Int32
	effects.Go("test_failure", func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("broker unavailable")
	})
	effects.Go("test_failure", func(ctx context.Context) error {
		ran.Add(1)
		panic("boom")
	})
	effects.Go("test_ok", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	effects.Wait()

	assert.Equal(t, int32(3), ran.Load())
	assert.Equal(t, before+2, promtestutil.ToFloat64(sideEffectFailures.WithLabelValues("test_failure")))
}

func TestSideEffectsContextIsDetachedWithTimeout(t *testing.T) {
	effects := NewSideEffects(50 * time.Millisecond)

	var deadlineSet atomic.Bool
	effects.Go("test_deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadlineSet.Store(ok)
		<-ctx.Done()
		return ctx.Err()
	})
	effects.Wait()

	assert.True(t, deadlineSet.Load())
}
