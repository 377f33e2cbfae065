package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"todolist/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	logger := newLogger(config.LogConfig{Level: "debug", Format: "json"})
	require.True(t, logger.Enabled(ctx, slog.LevelDebug))
	_, isJSON := logger.Handler().(*slog.JSONHandler)
	require.True(t, isJSON)

	logger = newLogger(config.LogConfig{Level: "warn", Format: "text"})
	require.False(t, logger.Enabled(ctx, slog.LevelInfo))
	require.True(t, logger.Enabled(ctx, slog.LevelWarn))

	logger = newLogger(config.LogConfig{Level: "bogus"})
	require.True(t, logger.Enabled(ctx, slog.LevelInfo))
	require.False(t, logger.Enabled(ctx, slog.LevelDebug))
}
