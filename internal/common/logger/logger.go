package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the process-wide logger. Production output is one
// JSON line per event so log shippers can ingest it as-is; debug mode
// switches to a console writer and lowers the level for local runs.
func Init(serviceName string, debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	log.Logger = newLogger(os.Stdout, serviceName, debug)
}

func newLogger(out io.Writer, serviceName string, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Package-level helpers over the global logger.

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
