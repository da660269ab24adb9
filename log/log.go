// Package log provides the process-wide structured logger. Every other
// package logs through here rather than importing zerolog directly, so
// the output format and level are configured in exactly one place.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()
}

// SetLevel adjusts the minimum level emitted by the process-wide logger.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger = logger.Level(lvl)
}

// SetJSON switches the writer to line-delimited JSON, for production
// deployments where logs are shipped to an aggregator.
func SetJSON() {
	logger = logger.Output(os.Stderr)
}

func Debug() *zerolog.Event { return logger.Debug() }
func Info() *zerolog.Event  { return logger.Info() }
func Warn() *zerolog.Event  { return logger.Warn() }
func Error() *zerolog.Event { return logger.Error() }
func Fatal() *zerolog.Event { return logger.Fatal() }

// With returns a child logger event builder carrying the given fields,
// useful when a caller wants to attach several fields to every log line
// for the remainder of a request's handling.
func With() zerolog.Context { return logger.With() }
