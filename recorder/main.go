package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/imkonsowa/restaurant-concierge/config"
	"github.com/imkonsowa/restaurant-concierge/intake"
	"github.com/imkonsowa/restaurant-concierge/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	zl := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zl.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	nc, err := intake.NewNatsClient(cfg.Nats)
	if err != nil {
		zl.Fatal("failed to connect to nats", zap.Error(err))
	}
	defer nc.Close()

	pg, err := NewPg(cfg.Postgres.ConnStr())
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := pg.Migrate(ctx); err != nil {
		zl.Fatal("failed to migrate reservations", zap.Error(err))
	}

	handler := NewHandler(pg, zl)

	zl.Info("starting recorder",
		zap.Int("workers", cfg.Recorder.Workers),
		zap.Int("queueSize", cfg.Recorder.QueueSize),
		zap.String("subject", cfg.Nats.ReservationsSubject),
	)

	pool := NewWorkerPool(ctx, cfg.Recorder.Workers, cfg.Recorder.QueueSize, zl, handler.HandleReservationMessage)

	if err := Subscribe(ctx, nc.JetStream(), cfg.Nats.ReservationsSubject, pool, zl); err != nil {
		zl.Error("subscription stopped", zap.Error(err))
	}

	zl.Info("shutting down")
	pool.Stop()
	pool.Wait()
}
