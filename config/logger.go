package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process logger. It is usable before InitLogger runs.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// InitLogger configures Log from LOG_LEVEL and APP_ENV: JSON in production,
// console output otherwise.
func InitLogger(service string) {
	Log = NewLogger(service, os.Getenv("APP_ENV"), GetEnv("LOG_LEVEL", "info"), os.Stdout)
}

func NewLogger(service, env, level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if env != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
