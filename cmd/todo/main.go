package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"todolist/internal/config"
	"todolist/internal/metrics"
	"todolist/internal/server"
	"todolist/internal/storage"
	"todolist/internal/view"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	renderer, err := view.New()
	if err != nil {
		logger.Error("unable to load templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := storage.Open(context.Background(), cfg.Database.URL, storage.Options{MaxConns: cfg.Database.MaxConns}, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	metrics.Register(prometheus.DefaultRegisterer)

	srv := server.New(store, renderer, logger, server.Options{
		StaticDir:      cfg.Server.StaticDir,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("store", store.Dialect()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
