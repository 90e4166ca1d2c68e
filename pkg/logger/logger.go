package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogger *slog.Logger

// Init builds the process logger from the logging section of the config.
// When a file path is configured, records go to stdout and to a rotated file.
func Init(cfg internal.LoggingConfig) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.File.Path != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    orDefault(cfg.File.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.File.MaxBackups, 5),
			MaxAge:     orDefault(cfg.File.MaxAgeDays, 30),
			Compress:   cfg.File.Compress,
		})
	}

	defaultLogger = New(out, cfg.Level, cfg.Format)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// New creates a logger writing to w without touching the process default.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init(internal.LoggingConfig{Level: "debug", Format: "text"})
	}
	return defaultLogger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
