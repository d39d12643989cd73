package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configPath := filepath.Join(tmpDir, "missing.yaml")

	cfg, err := Load(ClientConfigFilename, configPath, nil)
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, time.Second, cfg.Bulb.NotifyTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Bulb.SettleDelay)
	assert.False(t, cfg.Bulb.WithResponse)
	assert.Equal(t, 6*time.Second, cfg.Scan.Timeout)
	assert.Equal(t, "Avea", cfg.Scan.NameFilter)
	assert.Equal(t, filepath.Join(tmpDir, "avea", "avea.yaml"), cfg.DefaultsFile)
}

func TestLoadConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aveactl.yaml")
	content := `logging:
  level: debug
  format: json
bulb:
  notify_timeout: 2s
  settle_delay: 0s
  with_response: true
scan:
  timeout: 200ms
defaults_file: /tmp/elsewhere.yaml
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(ClientConfigFilename, configPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Bulb.NotifyTimeout)
	assert.Equal(t, time.Duration(0), cfg.Bulb.SettleDelay)
	assert.True(t, cfg.Bulb.WithResponse)
	assert.Equal(t, MinScanTimeout, cfg.Scan.Timeout, "scan timeout is clamped to the minimum")
	assert.Equal(t, "/tmp/elsewhere.yaml", cfg.DefaultsFile)
}

func TestLoadConfig_EnvAndFlags(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aveactl.yaml")
	t.Setenv("AVEA_LOGGING_LEVEL", "warn")
	t.Setenv("AVEA_BULB_NOTIFY_TIMEOUT", "3s")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	fs.String("log-format", "text", "")
	fs.String("defaults-file", "", "")
	require.NoError(t, fs.Parse([]string{"--log-format", "json", "--defaults-file", "/tmp/d.yaml"}))

	cfg, err := Load(ClientConfigFilename, configPath, fs)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3*time.Second, cfg.Bulb.NotifyTimeout)
	assert.Equal(t, "/tmp/d.yaml", cfg.DefaultsFile)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("not: [valid: yaml"), 0644))

	_, err := Load("bad.yaml", configPath, nil)
	assert.Error(t, err)
}
