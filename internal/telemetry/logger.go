// Package telemetry configures the process-wide slog logger.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log formats accepted by NewLogger.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// LoggerConfig describes where and how to log.
type LoggerConfig struct {
	// Writer receives console output. Defaults to os.Stderr so stdout stays
	// reserved for the report.
	Writer io.Writer
	// Verbose enables debug records.
	Verbose bool
	// Format is "text" or "json".
	Format string
	// File, when set, also receives every record as JSON.
	File string
}

// NewLogger builds a logger from cfg. The returned close function releases
// the log file and is safe to call when no file was opened.
func NewLogger(cfg LoggerConfig) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	var console slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		console = slog.NewTextHandler(w, opts)
	case FormatJSON:
		console = slog.NewJSONHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q (want %s or %s)", cfg.Format, FormatText, FormatJSON)
	}

	closeFn := func() error { return nil }
	if cfg.File == "" {
		return slog.New(console), closeFn, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := &multiHandler{handlers: []slog.Handler{console, slog.NewJSONHandler(f, opts)}}

	return slog.New(handler), f.Close, nil
}

// InitLogger installs the logger built from cfg as the slog default.
func InitLogger(cfg LoggerConfig) (func() error, error) {
	logger, closeFn, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	return closeFn, nil
}

// multiHandler fans every record out to all handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}

	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &multiHandler{handlers: handlers}
}
