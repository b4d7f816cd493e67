package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type implLogger struct {
	logger *slog.Logger
}

// New creates a new Logger instance writing to stdout at the given level.
// Unknown level strings default to info.
func New(level string) Logger {
	return &implLogger{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level),
		})),
	}
}

func parseLevel(level string) slog.Level {
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

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.DebugContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}
