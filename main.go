// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/rate-anything/cliparse"
	"github.com/danielhkuo/rate-anything/handlers"
	"github.com/danielhkuo/rate-anything/logging"
	"github.com/danielhkuo/rate-anything/metrics"
	"github.com/danielhkuo/rate-anything/middleware"
	"github.com/danielhkuo/rate-anything/picker"
	"github.com/danielhkuo/rate-anything/router"
	"github.com/danielhkuo/rate-anything/search"
	"github.com/danielhkuo/rate-anything/store"
	"github.com/danielhkuo/rate-anything/tracing"
)

const (
	serviceName     = "rate-anything"
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat); err != nil {
		slog.Error("invalid logging config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Enabled:        cfg.TracingEnabled,
		ExporterType:   cfg.TracingExporter,
		Endpoint:       cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Insecure:       cfg.TracingInsecure,
	})
	if err != nil {
		slog.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}

	// Open the rating store and create the schema
	s, err := store.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	m := metrics.NewManager(metrics.WithMetricsEnabled(cfg.MetricsEnabled))

	searchOpts := []search.Option{
		search.WithEndpoint(cfg.SearchEndpoint),
		search.WithUserAgent(cfg.SearchUserAgent),
		search.WithTimeout(cfg.SearchTimeout),
		search.WithRecorder(m),
	}
	var checks []handlers.HealthCheck
	if cfg.RedisURL != "" {
		rdb, err := search.NewRedisClient(cfg.RedisURL)
		if err != nil {
			slog.Error("redis config invalid", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()

		cache := search.NewRedisCache(rdb)
		searchOpts = append(searchOpts, search.WithCache(cache, cfg.SearchCacheTTL))
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: cache.HealthCheck})
		slog.Info("search cache enabled", "ttl", cfg.SearchCacheTTL)
	}
	client := search.NewClient(searchOpts...)

	var items *picker.Picker
	if cfg.ItemsFile != "" {
		list, err := picker.LoadFile(cfg.ItemsFile)
		if err != nil {
			slog.Error("failed to load items", "error", err)
			os.Exit(1)
		}
		items = picker.New(list, cfg.BannedWords)
		slog.Info("items loaded", "file", cfg.ItemsFile, "eligible", items.Len(), "total", len(list))
	}

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:        s,
		Config:       cfg,
		Searcher:     client,
		Describer:    client,
		Picker:       items,
		Metrics:      m,
		HealthChecks: checks,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.RequestID(middleware.Tracing(serviceName)(middleware.CORS(mux))),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("failed to listen", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "tracing", tp.IsEnabled())
	if err := serve(ctx, &server, ln, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := tp.Shutdown(flushCtx); err != nil {
		slog.Error("tracer flush failed", "error", err)
	}
	if err := s.Close(); err != nil {
		slog.Error("store close failed", "error", err)
	}
}

// serve runs server on ln until ctx is done, then drains in-flight
// requests. It returns only after Shutdown completes.
func serve(ctx context.Context, server *http.Server, ln net.Listener, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
