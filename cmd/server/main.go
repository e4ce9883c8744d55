package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/app"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/handler"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

func main() {
	log := logger.WithComponent("server")
	defer func() { _ = logger.L.Sync() }()

	cfg := config.LoadConfig()

	engine, err := app.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize engine", zap.Error(err))
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StoreDriver == app.DriverPostgres && os.Getenv("AUTO_MIGRATE") == "true" {
		if err := engine.Migrate(ctx); err != nil {
			log.Fatal("Failed to migrate", zap.Error(err))
		}
	}
	if path := os.Getenv("SEED_FILE"); path != "" {
		if err := engine.ApplySeed(ctx, path); err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err), zap.String("path", path))
		}
	}

	stopSweeps, err := engine.StartBackground(ctx)
	if err != nil {
		log.Fatal("Failed to start background jobs", zap.Error(err))
	}
	defer stopSweeps()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.NewRouter(engine.Handlers()...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
