package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel sets the log level when --log-level is not given.
const EnvLogLevel = "SCHEMA_LOG_LEVEL"

// newLogger builds the console logger. An unknown level falls back to info.
func newLogger(w io.Writer, levelStr string) zerolog.Logger {
	if levelStr == "" {
		levelStr = os.Getenv(EnvLogLevel)
	}

	if levelStr == "" {
		levelStr = "info"
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
