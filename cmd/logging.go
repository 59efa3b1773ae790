package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if logFile == "" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	// JSON lines in a rotated file
	output := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// apiLogger adapts a zerolog logger to the lastfm.Logger interface
type apiLogger struct {
	logger zerolog.Logger
}

func newAPILogger(logger zerolog.Logger) apiLogger {
	return apiLogger{logger: logger.With().Str("component", "lastfm").Logger()}
}

func (l apiLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
