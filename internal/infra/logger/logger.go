package logger

import (
	"log/slog"
	"os"
)

// New — JSON-логер на stdout; у dev-оточенні вмикається debug-рівень.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
