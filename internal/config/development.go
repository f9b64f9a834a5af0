package config

import (
	"log/slog"
	"os"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LogLevel reads LOG_LEVEL (debug, info, warn, error). Development mode
// defaults to debug, everything else to info.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if Development() {
		level = slog.LevelDebug
	}
	if s, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return slog.LevelInfo
		}
	}
	return level
}
