package logger

import (
	"log/slog"
	"os"
	"strings"
)

const serviceName = "solemart"

// New creates the store-wide slog.Logger: JSON records on stdout with a
// service attribute. LOG_LEVEL=debug switches on debug output.
func New() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", serviceName))
}
