package util

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// InitLogger sets up the process-wide logger. Interactive runs get a text
// handler on stderr so status output stays readable next to the report;
// scripted runs can ask for JSON.
func InitLogger(jsonOutput bool) {
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func GetLogger() *slog.Logger {
	if Logger == nil {
		InitLogger(false)
	}
	return Logger
}
