// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process-wide zerolog logger from
// configuration. Everything logs to stderr so stdout stays free for
// generated output and event streams.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/pkg/types"
)

// New constructs a logger for the given level and format. Format
// "json" emits machine-readable lines; anything else renders for a
// terminal. Unknown levels fall back to info.
func New(cfg types.LoggingConfig) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
