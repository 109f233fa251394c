package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "json"})
	logger.Info("record created", slog.String("kind", "appointment"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), "JSON handler should produce valid JSON")
	assert.Equal(t, "record created", m["msg"])
	assert.Equal(t, "appointment", m["kind"])
	assert.Equal(t, "studio-bookings", m["app"])
	assert.NotContains(t, m, "source")
}

func TestNewLogger_TextFormatAddsSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "debug", Format: "TEXT"})
	logger.Debug("polling")

	out := buf.String()
	assert.Contains(t, out, "msg=polling")
	assert.Contains(t, out, "source=")
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := installLogger(&buf, config.LogConfig{Level: "info", Format: "json"})
	assert.Equal(t, logger.Handler(), slog.Default().Handler())

	ctx := ctxutil.WithRequestID(context.Background(), "req-9")
	slog.DebugContext(ctx, "hidden")
	slog.InfoContext(ctx, "via default")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &m))
	assert.Equal(t, "via default", m["msg"])
	assert.Equal(t, "studio-bookings", m["app"])
	assert.Equal(t, "req-9", m["request_id"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" Warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
		{"warn+2", slog.LevelWarn + 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseLevel(tt.input))
			assert.True(t, slog.New(slog.NewTextHandler(&strings.Builder{}, &slog.HandlerOptions{Level: parseLevel(tt.input)})).Enabled(context.Background(), tt.want))
		})
	}
}

func TestNewLogger_StampsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "json"})

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "status changed")
	logger.InfoContext(ctx, "access", slog.String("request_id", "req-42"))
	logger.Info("no context")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "req-42", first["request_id"])

	assert.Equal(t, 1, strings.Count(lines[1], `"request_id"`), "existing attr must not be duplicated")
	assert.NotContains(t, lines[2], "request_id")
}
