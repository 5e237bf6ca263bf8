package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	err     error
	results []models.ProcessingResult
}

func (c *fakeCompleter) CompleteProcessing(ctx context.Context, result models.ProcessingResult) error {
	c.results = append(c.results, result)
	return c.err
}

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestResultWorkerHandleDelivery(t *testing.T) {
	valid := []byte(`{"asset_id":"a1","success":true,"technical_metadata":{"width":640}}`)
	tests := []struct {
		name        string
		body        []byte
		err         error
		wantAck     bool
		wantRequeue bool
		wantCalls   int
	}{
		{"applied", valid, nil, true, false, 1},
		{"malformed json", []byte(`{not json`), nil, false, false, 0},
		{"missing asset id", []byte(`{"success":true}`), nil, false, false, 0},
		{"stale transition", valid, fmt.Errorf("wrap: %w", xerr.ErrInvalidTransition), true, false, 1},
		{"concurrent update", valid, xerr.ErrStatusConflict, true, false, 1},
		{"file gone", valid, xerr.ErrNotFound, true, false, 1},
		{"database down", valid, fmt.Errorf("find: %w", xerr.ErrDatabase), false, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{err: tt.err}
			w := NewResultWorker(completer, time.Second)
			ack := &fakeAcknowledger{}

			w.HandleDelivery(amqp.Delivery{Acknowledger: ack, Body: tt.body})

			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
			require.Len(t, completer.results, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, "a1", completer.results[0].AssetID)
				assert.Equal(t, 640.0, completer.results[0].TechnicalMetadata["width"])
			}
		})
	}
}

type fakeConsumer struct {
	declared []string
	handlers map[string]func(amqp.Delivery)
}

func (c *fakeConsumer) DeclareQueue(queueName string) (amqp.Queue, error) {
	c.declared = append(c.declared, queueName)
	return amqp.Queue{Name: queueName}, nil
}

func (c *fakeConsumer) Consume(queueName string, handler func(msg amqp.Delivery)) error {
	if c.handlers == nil {
		c.handlers = map[string]func(amqp.Delivery){}
	}
	c.handlers[queueName] = handler
	return nil
}

func TestResultWorkerStartRabbitMQ(t *testing.T) {
	completer := &fakeCompleter{}
	consumer := &fakeConsumer{}
	w := NewResultWorker(completer, time.Second)

	require.NoError(t, w.StartRabbitMQ(consumer, "results"))
	assert.Equal(t, []string{"results"}, consumer.declared)

	ack := &fakeAcknowledger{}
	consumer.handlers["results"](amqp.Delivery{Acknowledger: ack, Body: []byte(`{"asset_id":"a1","kind":"frame_capture","success":true}`)})
	assert.True(t, ack.acked)
	require.Len(t, completer.results, 1)
	assert.Equal(t, models.ResultKindFrameCapture, completer.results[0].Kind)
}

type fakePurger struct {
	mu      sync.Mutex
	batches []int
	calls   int
	err     error
}

func (p *fakePurger) PurgeExpired(ctx context.Context, limit int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, p.err
	}
	if p.calls >= len(p.batches) {
		return 0, nil
	}
	n := p.batches[p.calls]
	p.calls++
	return n, nil
}

func TestTrashSweeperDrainsFullBatches(t *testing.T) {
	purger := &fakePurger{batches: []int{defaultSweepBatch, defaultSweepBatch, 3}}
	s := NewTrashSweeper(purger, time.Hour)

	assert.Equal(t, 2*defaultSweepBatch+3, s.sweep(context.Background()))
	assert.Equal(t, 3, purger.calls)
}

func TestTrashSweeperStopsOnError(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	s := NewTrashSweeper(purger, time.Hour)

	assert.Zero(t, s.sweep(context.Background()))
}

func TestTrashSweeperRunSweepsImmediately(t *testing.T) {
	purger := &fakePurger{batches: []int{1}}
	s := NewTrashSweeper(purger, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		purger.mu.Lock()
		defer purger.mu.Unlock()
		return purger.calls == 1
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}
