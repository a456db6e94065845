package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurant-concierge/api"
	"github.com/imkonsowa/restaurant-concierge/catalog"
	"github.com/imkonsowa/restaurant-concierge/chat"
	"github.com/imkonsowa/restaurant-concierge/config"
	"github.com/imkonsowa/restaurant-concierge/intake"
	"github.com/imkonsowa/restaurant-concierge/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	zl := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zl.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	cat, err := catalog.Load(cfg.Data.FactsPath, cfg.Data.MenuPath)
	if err != nil {
		zl.Fatal("failed to load catalog", zap.Error(err))
	}
	zl.Info("catalog loaded", zap.Int("menuItems", len(cat.Items())))

	sinks, closeSinks, err := intake.BuildSinks(cfg, zl)
	if err != nil {
		closeSinks()
		zl.Fatal("failed to set up intake sinks", zap.Error(err))
	}
	defer closeSinks()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// outlives the signal context so queued reservations are forwarded during shutdown
	dispatcher := intake.NewDispatcher(context.Background(), cfg.Intake.Workers, cfg.Intake.QueueSize, zl, sinks...)

	server := api.NewServer(chat.NewEngine(cat), dispatcher, cfg.CORS.AllowedOrigins, zl)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("listening", zap.String("addr", httpServer.Addr), zap.Strings("allowedOrigins", cfg.CORS.AllowedOrigins))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}

	// handlers are done, so nothing else can enqueue
	dispatcher.Close()
}
