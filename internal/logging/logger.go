package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the bootstrap logger: JSON to stdout. The Postgres sink is
// attached later, once the database connection is up.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

// StdoutHandler is the always-on sink. Level comes from LOG_LEVEL so a
// deployment can turn on debug output without a rebuild.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
