// Package log configures structured logging for the playground using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the default slog logger based on verbosity flags and
// returns it. Quiet wins over verbose. Output goes to stderr so that stdout
// stays clean for command output and the MCP stdio transport.
func Setup(verbose, quiet bool) *slog.Logger {
	return SetupWriter(os.Stderr, verbose, quiet)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbose, quiet bool) *slog.Logger {
	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redact,
	}))
	slog.SetDefault(logger)
	return logger
}

// redact masks attributes that could carry a user's API key.
func redact(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case "api_key", "apiKey", "authorization":
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}
