package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const logLevelEnvKey = "FERRY_LOG_LEVEL"

// configureLogging sets the default slog logger from the environment,
// returning a warning line for invalid levels.
func configureLogging() string {
	raw := os.Getenv(logLevelEnvKey)
	level, err := parseLogLevel(raw)
	if err != nil {
		slog.SetDefault(newLogger(slog.LevelInfo))
		return fmt.Sprintf("warning: invalid %s=%q; defaulting to info", logLevelEnvKey, raw)
	}
	slog.SetDefault(newLogger(level))
	return ""
}

func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return slog.LevelInfo, nil
	}
	if strings.EqualFold(value, "warning") {
		value = "warn"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
