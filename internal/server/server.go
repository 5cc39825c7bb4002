// Package server wires configuration, telemetry, the loader pipeline, and
// the HTTP surface into one runnable unit.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"league-history-service/internal/cache"
	"league-history-service/internal/config"
	"league-history-service/internal/fetch"
	httpapi "league-history-service/internal/http"
	"league-history-service/internal/loader"
	"league-history-service/internal/logging"
	"league-history-service/internal/manifest"
	"league-history-service/internal/metrics"
	"league-history-service/internal/schema"
	"league-history-service/internal/selectors"
	"league-history-service/internal/warm"
)

var metricsSetup = metrics.Setup

// Server owns the process lifecycle: the API server, the metrics server,
// and the background season warmer.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	loader        *loader.Service
	engine        *selectors.Engine
	httpServer    httpServer
	metricsServer httpServer
	warmer        *warm.Warmer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	sharedCache := cache.New(recorder)
	client := fetch.NewClient(fetch.Config{
		BaseURL:    cfg.Data.BaseURL,
		Logger:     logger,
		Recorder:   recorder,
		Retries:    cfg.Fetch.Retries,
		RetryDelay: cfg.Fetch.RetryDelay,
		Timeout:    cfg.Fetch.Timeout,
	})
	resolver := manifest.NewResolver(client, sharedCache, logger, cfg.Data.ManifestPath)
	svc := loader.New(loader.Config{
		Client:    client,
		Resolver:  resolver,
		Cache:     sharedCache,
		Logger:    logger,
		Schema:    schema.Config{LineupFloorYear: cfg.Data.LineupFloorYear},
		SeasonTTL: cfg.Cache.SeasonTTL,
	})
	engine := selectors.NewEngine()
	warmer := warm.New(svc, logger, cfg.Cache.ProviderTTL)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		loader:        svc,
		engine:        engine,
		httpServer:    buildHTTPServer(cfg, svc, engine, logger, recorder, warmer.Status),
		metricsServer: metricsSrv,
		warmer:        warmer,
		metricsStop:   metricsShutdown,
	}
}

func buildHTTPServer(cfg config.Config, svc *loader.Service, engine *selectors.Engine, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() warm.Status) httpServer {
	handler := httpapi.NewHandler(svc, engine, logger, statusFn)
	router := httpapi.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := httpapi.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Run starts the warmer and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.warmer.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.warmer.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop warmer", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
