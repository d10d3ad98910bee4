// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the atelier portfolio server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Select the page cache (Redis when configured, memory otherwise).
//  4. Wire the content gateway and page handlers.
//  5. Start HTTP server with graceful shutdown.
//
// Missing Notion credentials do not stop startup; the affected pages render
// as not found and /ready reports the gap.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/atelier/internal/api"
	"github.com/taibuivan/atelier/internal/content"
	"github.com/taibuivan/atelier/internal/platform/config"
	"github.com/taibuivan/atelier/internal/platform/constants"
	redisstore "github.com/taibuivan/atelier/internal/platform/redis"
	"github.com/taibuivan/atelier/internal/platform/revalidate"
	"github.com/taibuivan/atelier/internal/site"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("revalidate", cfg.Revalidate()),
		slog.Int("static_pages", len(cfg.StaticPages)),
	)

	// Cancelled on shutdown; stops background goroutines such as limiter cleanup.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Page Cache ─────────────────────────────────────────────────────
	var cache revalidate.Store = revalidate.NewMemoryStore()
	if cfg.RedisURL != "" {
		startupCtx, startupCancel := context.WithTimeout(rootCtx, 10*time.Second)
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		startupCancel()
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
		cache = revalidate.NewRedisStore(rdb)
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	source := content.NewNotionSource(content.NotionSettings{
		APIKey:          cfg.NotionAPIKey,
		WorksDatabaseID: cfg.NotionWorksDBID,
		BaseURL:         cfg.NotionBaseURL,
		Version:         cfg.NotionVersion,
		RecordURL:       cfg.NotionRecordURL,
		HTTPClient:      &http.Client{},
	})
	if err := source.Configured(); err != nil {
		log.Warn("content_source_not_configured", slog.String("error", err.Error()))
	}

	gateway := content.NewGateway(source, content.StaticPages(cfg.StaticPages), log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckContent: func(context.Context) error { return source.Configured() },
		CheckCache:   cache.Ping,
	}, log)

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Site:      site.NewHandler(gateway),
		Cache:     cache,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the app name and makes it the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only used during startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
