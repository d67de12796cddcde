// Package logging wraps zerolog for application logging.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// Logger is the application logger.
type Logger struct {
	zerolog.Logger
}

// New creates a logger with the given configuration. Text format produces
// console output for development; the default is JSON.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "text" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).Level(level).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	}

	return &Logger{logger}
}

// HTTPRequest logs one handled request.
func (l *Logger) HTTPRequest(requestID, method, path string, statusCode int, duration time.Duration) {
	event := l.Info()
	if statusCode >= 500 {
		event = l.Error()
	}

	event.
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status_code", statusCode).
		Dur("duration_ms", duration).
		Msg("HTTP request")
}
