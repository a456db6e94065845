package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subscribe pulls reservation messages and feeds them to the pool until ctx is cancelled.
func Subscribe(ctx context.Context, js nats.JetStreamContext, subject string, pool *WorkerPool, logger *zap.Logger) error {
	subscription, err := js.PullSubscribe(subject, strings.ReplaceAll(subject+".recorder", ".", "-"), nats.ManualAck())
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if err := subscription.Unsubscribe(); err != nil {
				logger.Warn("failed to unsubscribe from subject", zap.String("subject", subject), zap.Error(err))
			}

			return nil
		default:
			msgs, err := subscription.Fetch(4, nats.MaxWait(200*time.Millisecond))
			if err != nil && !errors.Is(err, nats.ErrTimeout) && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			for _, msg := range msgs {
				if !pool.Submit(ctx, natsDelivery{msg: msg}) {
					return nil
				}
			}
		}
	}
}
