// Package config loads tourplan's runtime configuration: the SQLite
// database path and the log level, from the environment (with a .env
// fallback) and sets up the process-wide zerolog logger.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	defaultDB       = "tourplan.db"
	defaultLogLevel = "info"
)

// Config holds tourplan's runtime settings.
type Config struct {
	DBPath   string
	LogLevel string
}

// Load reads TOURPLAN_DB and TOURPLAN_LOG_LEVEL from the environment,
// falling back to a .env file in the working directory if present, and
// returns the resulting Config alongside a zerolog.Logger configured
// for the resolved level.
func Load() (*Config, zerolog.Logger) {
	if err := godotenv.Load(); err != nil {
		// Absence of a .env file is the common case outside development;
		// logged at debug once the logger below exists.
	}

	cfg := &Config{
		DBPath:   envOr("TOURPLAN_DB", defaultDB),
		LogLevel: envOr("TOURPLAN_LOG_LEVEL", defaultLogLevel),
	}

	logger := newLogger(cfg.LogLevel)
	logger.Debug().Msg(".env loaded if present, environment otherwise")
	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, logger
}

// newLogger builds a zerolog.Logger writing to stderr at the given
// level, leaving stdout free for command output (tables, JSON).
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(lvl)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
