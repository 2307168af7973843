package app

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandler(t *testing.T) {
	var debug, info bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))

	logger.With("movieId", 7).WithGroup("poster").Debug("cached", "name", "alien.jpg")
	logger.Info("movie added", "movieId", 8)

	assert.Contains(t, debug.String(), "movieId=7")
	assert.Contains(t, debug.String(), "poster.name=alien.jpg")
	assert.Contains(t, debug.String(), "movieId=8")

	assert.NotContains(t, info.String(), "cached")
	assert.Contains(t, info.String(), "movie added")
}

func TestNewLoggerLevel(t *testing.T) {
	assert.True(t, NewLogger(Config{Env: "development"}).Enabled(t.Context(), slog.LevelDebug))
	assert.False(t, NewLogger(Config{Env: "production"}).Enabled(t.Context(), slog.LevelDebug))
}
