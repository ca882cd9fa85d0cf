package app

import (
	"io"
	"log/slog"
	"strings"
)

// logLevels maps the accepted --log-level values. Anything else logs at info.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances. Every record
// carries the app attribute so logs of several runs can be told apart.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, ok := logLevels[strings.ToLower(levelStr)]
	if !ok {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(formatStr, "json") {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler).With("app", "cryogeo")
}
