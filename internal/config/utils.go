package config

import (
	"os"
	"path/filepath"
	"time"
)

// GetConfigBaseDir returns the base directory for configuration files
func GetConfigBaseDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, ConfigDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", ConfigDirName)
}

// GetConfigPath returns the full path to a configuration file
func GetConfigPath(filename string) string {
	return filepath.Join(GetConfigBaseDir(), filename)
}

// GetDefaultsPath returns the full path to the persisted defaults file
func GetDefaultsPath() string {
	return GetConfigPath(DefaultsFilename)
}

// ValidateScanTimeout clamps the scan duration to the minimum allowed value
func ValidateScanTimeout(timeout time.Duration) time.Duration {
	if timeout < MinScanTimeout {
		return MinScanTimeout
	}
	return timeout
}
