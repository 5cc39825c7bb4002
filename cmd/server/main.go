package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"league-history-service/internal/config"
	"league-history-service/internal/logging"
	"league-history-service/internal/server"
)

// appVersion is stamped by the build; "dev" outside release builds.
const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "league-history-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("league history service starting",
		slog.String("port", cfg.Port),
		slog.String("data_base_url", cfg.Data.BaseURL),
		slog.String("version", appVersion),
	)

	server.New(cfg, logger).Run(ctx, stop)

	logger.Info("league history service stopped")
}
