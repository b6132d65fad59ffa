package logger

import (
	"bytes"
	"encoding/json/v2"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormatInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
		Level:       slog.LevelInfo,
	})

	log.Info("catalog loaded", "count", 5)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "catalog loaded", record["msg"])
	assert.EqualValues(t, 5, record["count"])
}

func TestNew_PrettyFormatInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "development",
		Level:       slog.LevelInfo,
	})

	log.Info("genre filter changed", "genre", "Fantasy")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "genre filter changed")
	assert.Contains(t, out, "genre=Fantasy")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: formatPretty,
		Level:  slog.LevelWarn,
	})

	log.Debug("ignored")
	log.Info("also ignored")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input %q", tt.input)
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelInfo})

	scoped := log.With("store", "store-1")
	scoped.Info("load more", "cursor", "book-9")

	line := buf.String()
	assert.Contains(t, line, "store=store-1")
	assert.Contains(t, line, "cursor=book-9")
	// Pre-set attrs come before per-record attrs.
	assert.Less(t, strings.Index(line, "store="), strings.Index(line, "cursor="))
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelInfo})

	log.WithError(assert.AnError).Warn("upload failed")
	assert.Contains(t, buf.String(), "error=")
}
