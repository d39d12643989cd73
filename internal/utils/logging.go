package utils

import (
	"io"
	"log/slog"
	"os"

	"github.com/jmylchreest/aveactl/internal/config"
)

// LogLevel defines log level types
type LogLevel string

// Log level constants - using values from config package
const (
	LogLevelDebug LogLevel = LogLevel(config.LogLevelDebug)
	LogLevelInfo  LogLevel = LogLevel(config.LogLevelInfo)
	LogLevelWarn  LogLevel = LogLevel(config.LogLevelWarn)
	LogLevelError LogLevel = LogLevel(config.LogLevelError)
)

// LogFormat defines log format types
type LogFormat string

// Log format constants - using values from config package
const (
	LogFormatText LogFormat = LogFormat(config.LogFormatText)
	LogFormatJSON LogFormat = LogFormat(config.LogFormatJSON)
)

// GetLogLevel converts a string log level to slog.Level
func GetLogLevel(level string) slog.Level {
	switch level {
	case string(LogLevelDebug):
		return slog.LevelDebug
	case string(LogLevelWarn):
		return slog.LevelWarn
	case string(LogLevelError):
		return slog.LevelError
	case string(LogLevelInfo):
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// ValidateLogLevel ensures the provided level is valid, returning a default if not
func ValidateLogLevel(level string) string {
	switch level {
	case string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError):
		return level
	default:
		return string(LogLevelInfo)
	}
}

// ValidateLogFormat ensures the provided format is valid, returning a default if not
func ValidateLogFormat(format string) string {
	switch format {
	case string(LogFormatText), string(LogFormatJSON):
		return format
	default:
		return string(LogFormatText)
	}
}

// SetupLogger creates a logger writing to stderr with the given level and format
func SetupLogger(level string, format string) *slog.Logger {
	return NewLogger(os.Stderr, level, format)
}

// NewLogger creates a logger writing to w. Invalid levels fall back to info
// and invalid formats to text.
func NewLogger(w io.Writer, level string, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     GetLogLevel(ValidateLogLevel(level)),
		AddSource: GetLogLevel(level) == slog.LevelDebug,
	}

	var handler slog.Handler
	if ValidateLogFormat(format) == string(LogFormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupErrorLogger creates a simple text logger for reporting errors during startup
func SetupErrorLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// SetAsDefaultLogger sets a logger as the default logger
func SetAsDefaultLogger(logger *slog.Logger) {
	slog.SetDefault(logger)
}
