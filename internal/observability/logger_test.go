package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"json_info", "info", "json"},
		{"text_debug", "debug", "text"},
		{"json_error", "error", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			assert.NotNil(t, logger)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown", "unknown", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
		{"uppercase", "DEBUG", slog.LevelInfo}, // Case sensitive, defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestFromContext(t *testing.T) {
	InitLogger("info", "text")

	t.Run("no_context_values", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("with_request_id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("with_user_id", func(t *testing.T) {
		ctx := WithUserID(context.Background(), "user-456")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("with_both_values", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		ctx = WithUserID(ctx, "user-456")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("fallback_when_not_initialized", func(t *testing.T) {
		savedLogger := logger
		defer func() { logger = savedLogger }()
		logger = nil

		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestRequestIDFromContext(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-789")

		got, ok := RequestIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-789", got)
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := RequestIDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("empty_is_absent", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "")
		_, ok := RequestIDFromContext(ctx)
		assert.False(t, ok)
	})
}
