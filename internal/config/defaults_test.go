package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "avea.yaml")

	d, err := LoadDefaults(path, nil)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderAddress, d.Address)
	assert.True(t, d.IsPlaceholderAddress())
	for _, v := range []string{d.Light, d.White, d.Red, d.Green, d.Blue} {
		assert.Equal(t, "2000", v)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o666), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "avea:")
	assert.Contains(t, string(raw), "Address:")
	assert.Contains(t, string(raw), PlaceholderAddress)
	assert.Contains(t, string(raw), `light: "2000"`)
	assert.Contains(t, string(raw), `blue: "2000"`)
}

func TestSaveAndLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avea.yaml")
	in := &Defaults{
		Address: "78:A5:04:8E:9E:57",
		Light:   "10",
		White:   "0",
		Red:     "4095",
		Green:   "0",
		Blue:    "0",
	}
	require.NoError(t, SaveDefaults(path, in))

	out, err := LoadDefaults(path, nil)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.False(t, out.IsPlaceholderAddress())
}

func TestLoadDefaults_CaseInsensitiveKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avea.yaml")
	content := "avea:\n  address: AA:BB:CC:DD:EE:FF\n  LIGHT: \"12\"\n  white: \"abc\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	d, err := LoadDefaults(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", d.Address)
	assert.Equal(t, "12", d.Light)
	assert.Equal(t, "abc", d.White, "parsing is left to the caller")
	assert.Equal(t, "", d.Red)
}

func TestLoadDefaults_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avea.yaml")
	require.NoError(t, SaveDefaults(path, NewDefaults()))
	t.Setenv("AVEA_ADDRESS", "11:22:33:44:55:66")
	t.Setenv("AVEA_RED", "100")

	d, err := LoadDefaults(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "11:22:33:44:55:66", d.Address)
	assert.Equal(t, "100", d.Red)
	assert.Equal(t, "2000", d.Green)
}

func TestLoadDefaults_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avea.yaml")
	require.NoError(t, os.WriteFile(path, []byte("avea: [broken"), 0644))

	_, err := LoadDefaults(path, nil)
	assert.Error(t, err)
}
