package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services receive children of this
// logger with their component name attached.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
