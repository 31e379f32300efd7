package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/errcode"
	"github.com/katalvlaran/metatwin/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, config.LogConfig{Format: "json", Level: "warn"})
	log.Info("hidden")
	log.Warn("shown", "reaction", "R1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"reaction":"R1"`)
}

func TestNew_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, closer, err := logger.New(config.LogConfig{Format: "text", Level: "info", Destination: "file"}, dir)
	require.NoError(t, err)
	log.Info("solve done", "status", "optimal")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(filepath.Join(dir, logger.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), "status=optimal")
}

func TestNew_FileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := logger.New(config.LogConfig{Destination: "file"}, filepath.Join(blocker, "logs"))
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
