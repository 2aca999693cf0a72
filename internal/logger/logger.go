package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init configures the process-wide logger. DEBUG=true lowers the
// level to debug. Safe to call once from main before any other package
// logs.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

func get() *slog.Logger {
	if Logger == nil {
		return slog.Default()
	}
	return Logger
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}
