package intake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/imkonsowa/restaurant-concierge/metrics"
	"github.com/imkonsowa/restaurant-concierge/models"
	"go.uber.org/zap"
)

var ErrQueueClosed = errors.New("intake queue closed")

const storeTimeout = 5 * time.Second

// Dispatcher fans reservations out to sinks on a bounded pool of workers.
type Dispatcher struct {
	jobs   chan models.Reservation
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	sinks  []Sink
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(ctx context.Context, maxWorkers, queueSize int, logger *zap.Logger, sinks ...Sink) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	d := &Dispatcher{
		jobs:   make(chan models.Reservation, queueSize),
		ctx:    poolCtx,
		cancel: cancel,
		sinks:  sinks,
		logger: logger,
	}

	for i := 0; i < maxWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// SubmitReservation stamps the reservation with an id and receive time and queues it. It blocks
// while the queue is full, until ctx is done.
func (d *Dispatcher) SubmitReservation(ctx context.Context, reservation models.Reservation) AckStatus {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	if reservation.ReceivedAt.IsZero() {
		reservation.ReceivedAt = time.Now().UTC()
	}

	metrics.ReservationsReceived.Inc()

	if err := d.enqueue(ctx, reservation); err != nil {
		d.logger.Warn("reservation not forwarded", zap.String("id", reservation.ID), zap.Error(err))
	}

	return AckReceived
}

func (d *Dispatcher) enqueue(ctx context.Context, reservation models.Reservation) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.jobs <- reservation:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.ctx.Done():
		return ErrQueueClosed
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for reservation := range d.jobs {
		d.forward(reservation)
	}
}

func (d *Dispatcher) forward(reservation models.Reservation) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(d.ctx, storeTimeout)
		err := sink.Store(ctx, reservation)
		cancel()

		if err != nil {
			metrics.IntakeSinkFailures.WithLabelValues(sink.Name()).Inc()
			d.logger.Error("failed to store reservation",
				zap.String("sink", sink.Name()),
				zap.String("id", reservation.ID),
				zap.Error(err),
			)
		}
	}
}

// Close stops accepting reservations and waits for queued ones to be forwarded.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	d.cancel()
}
