package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the CLI configuration
type Config struct {
	Logging LoggingConfig
	Bulb    BulbConfig
	Scan    ScanConfig

	// DefaultsFile is the path of the persisted last-used values
	DefaultsFile string `mapstructure:"defaults_file"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// BulbConfig represents per-session bulb settings
type BulbConfig struct {
	NotifyTimeout time.Duration `mapstructure:"notify_timeout"` // Bounded wait for a notification after a read request
	SettleDelay   time.Duration `mapstructure:"settle_delay"`   // Sleep before a color read
	WithResponse  bool          `mapstructure:"with_response"`  // Write commands with response (wrr) instead of without (wr)
}

// ScanConfig represents the BLE scan configuration
type ScanConfig struct {
	Timeout    time.Duration
	NameFilter string `mapstructure:"name_filter"`
}

// flagKeys maps CLI flag names to config keys
var flagKeys = map[string]string{
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"defaults-file": "defaults_file",
}

// Load loads configuration from a file, environment variables and bound flags.
// A missing file is not an error; an unreadable or invalid one is.
func Load(configName, configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set default values
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.format", LogFormatText)
	v.SetDefault("bulb.notify_timeout", DefaultNotifyTimeout)
	v.SetDefault("bulb.settle_delay", DefaultSettleDelay)
	v.SetDefault("bulb.with_response", false)
	v.SetDefault("scan.timeout", DefaultScanTimeout)
	v.SetDefault("scan.name_filter", DefaultScanNameFilter)
	v.SetDefault("defaults_file", GetDefaultsPath())

	configPath := configFile
	if configPath == "" {
		configPath = GetConfigPath(configName)
	}
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		slog.Debug("Using config file", "path", configPath)
	}

	// Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flags take precedence when set on the command line
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Bulb: BulbConfig{
			NotifyTimeout: v.GetDuration("bulb.notify_timeout"),
			SettleDelay:   v.GetDuration("bulb.settle_delay"),
			WithResponse:  v.GetBool("bulb.with_response"),
		},
		Scan: ScanConfig{
			Timeout:    ValidateScanTimeout(v.GetDuration("scan.timeout")),
			NameFilter: v.GetString("scan.name_filter"),
		},
		DefaultsFile: v.GetString("defaults_file"),
	}

	return cfg, nil
}
