package config

import "time"

// Common constants shared between the CLI and the bulb package
const (
	// ConfigDirName is the name of the config directory within XDG_CONFIG_HOME
	ConfigDirName = "avea"

	// ClientConfigFilename is the base filename for the CLI config
	ClientConfigFilename = "aveactl.yaml"

	// DefaultsFilename is the base filename for the persisted last-used values
	DefaultsFilename = "avea.yaml"

	// DefaultsSection is the single section of the defaults file
	DefaultsSection = "avea"

	// PlaceholderAddress is written to a freshly created defaults file
	PlaceholderAddress = "00:00:00:00:00:00"

	// EnvPrefix is the prefix for environment overrides (AVEA_LOGGING_LEVEL, AVEA_ADDRESS, ...)
	EnvPrefix = "AVEA"
)

// Default timeouts and intervals
const (
	// DefaultNotifyTimeout bounds the wait for a notification after a read request
	DefaultNotifyTimeout = 1 * time.Second

	// DefaultSettleDelay is slept before a color read so a preceding set has been applied
	DefaultSettleDelay = 500 * time.Millisecond

	// DefaultScanTimeout is the default duration of a BLE scan
	DefaultScanTimeout = 6 * time.Second

	// MinScanTimeout is the minimum allowed scan duration
	MinScanTimeout = 1 * time.Second

	// DefaultScanNameFilter selects advertisements whose local name contains it
	DefaultScanNameFilter = "Avea"
)

// Bulb value constraints
const (
	// MinValue is the minimum channel/brightness value
	MinValue = 0

	// MaxValue is the maximum channel/brightness value (12 bits)
	MaxValue = 4095

	// DefaultValue is written for every channel in a freshly created defaults file
	DefaultValue = 2000
)

// Logging constants
const (
	// LogLevelDebug represents debug log level
	LogLevelDebug = "debug"

	// LogLevelInfo represents info log level
	LogLevelInfo = "info"

	// LogLevelWarn represents warning log level
	LogLevelWarn = "warn"

	// LogLevelError represents error log level
	LogLevelError = "error"

	// LogFormatText represents text log format
	LogFormatText = "text"

	// LogFormatJSON represents JSON log format
	LogFormatJSON = "json"
)
