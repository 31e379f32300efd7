// SPDX-License-Identifier: MIT

// Package logger builds slog loggers from config.LogConfig.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gnames/gn"

	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/errcode"
)

// FileName is the log file created under the log directory.
const FileName = "metatwin.log"

// New creates a logger writing to the destination of cfg. For the "file"
// destination the log is created fresh in logDir and returned as the
// io.Closer; otherwise the closer is a no-op.
func New(cfg config.LogConfig, logDir string) (*slog.Logger, io.Closer, error) {
	var w io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Destination {
	case "stdout":
		w = os.Stdout
	case "file":
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, CreateLogFileError(logDir, err)
		}
		path := filepath.Join(logDir, FileName)
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, CreateLogFileError(path, err)
		}
		w, closer = f, f
	default:
		w = os.Stderr
	}

	return NewWriter(w, cfg), closer, nil
}

// NewWriter creates a logger on w. Unknown formats fall back to text.
func NewWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CreateLogFileError reports a log file that cannot be created.
func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot create log file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot create log file: %w", fn.Name(), err),
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
