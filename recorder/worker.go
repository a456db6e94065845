package main

import (
	"context"
	"sync"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Delivery is one reservation message awaiting acknowledgement.
type Delivery interface {
	Payload() []byte
	Ack() error
	Nak() error
}

type natsDelivery struct {
	msg *nats.Msg
}

func (d natsDelivery) Payload() []byte { return d.msg.Data }
func (d natsDelivery) Ack() error      { return d.msg.Ack() }
func (d natsDelivery) Nak() error      { return d.msg.Nak() }

// WorkerPool runs the reservation handler over queued deliveries. A delivery is acked once
// handled and nakked for redelivery when the handler fails.
type WorkerPool struct {
	deliveries chan Delivery
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *zap.Logger
	handle     func(ctx context.Context, payload []byte) error
}

func NewWorkerPool(ctx context.Context, workers, queueSize int, logger *zap.Logger, handle func(ctx context.Context, payload []byte) error) *WorkerPool {
	if workers < 1 {
		workers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		deliveries: make(chan Delivery, queueSize),
		ctx:        poolCtx,
		cancel:     cancel,
		logger:     logger,
		handle:     handle,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.run()
	}

	return pool
}

func (w *WorkerPool) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case d := <-w.deliveries:
			w.settle(d, w.handle(w.ctx, d.Payload()))
		}
	}
}

func (w *WorkerPool) settle(d Delivery, handleErr error) {
	if handleErr != nil {
		w.logger.Error("failed to record reservation, requesting redelivery", zap.Error(handleErr))
		if err := d.Nak(); err != nil {
			w.logger.Error("failed to nak reservation", zap.Error(err))
		}
		return
	}

	if err := d.Ack(); err != nil {
		w.logger.Error("failed to ack reservation", zap.Error(err))
	}
}

// Submit queues d, blocking while the queue is full. It returns false once ctx or the pool is
// done; unqueued messages are redelivered by the stream after their ack wait.
func (w *WorkerPool) Submit(ctx context.Context, d Delivery) bool {
	if w.ctx.Err() != nil || ctx.Err() != nil {
		return false
	}

	select {
	case w.deliveries <- d:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

// Stop cancels the workers. Deliveries still queued are left unacked.
func (w *WorkerPool) Stop() {
	w.cancel()
}

func (w *WorkerPool) Wait() {
	w.wg.Wait()
}
