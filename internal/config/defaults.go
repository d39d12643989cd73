package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// defaultsFileMode keeps the defaults file world-writable.
const defaultsFileMode fs.FileMode = 0o666

// Defaults holds the address and last requested values persisted between runs.
// Values stay string-encoded; parsing and clamping belong to the bulb package.
type Defaults struct {
	Address string
	Light   string
	White   string
	Red     string
	Green   string
	Blue    string
}

// defaultsDocument is the on-disk layout: a single section with fixed key names
type defaultsDocument struct {
	Avea defaultsSection `yaml:"avea"`
}

type defaultsSection struct {
	Address string `yaml:"Address"`
	Light   string `yaml:"light"`
	White   string `yaml:"white"`
	Red     string `yaml:"red"`
	Green   string `yaml:"green"`
	Blue    string `yaml:"blue"`
}

// NewDefaults returns the values written to a freshly created defaults file
func NewDefaults() *Defaults {
	v := strconv.Itoa(DefaultValue)
	return &Defaults{
		Address: PlaceholderAddress,
		Light:   v,
		White:   v,
		Red:     v,
		Green:   v,
		Blue:    v,
	}
}

// IsPlaceholderAddress reports whether the address was never configured
func (d *Defaults) IsPlaceholderAddress() bool {
	return d.Address == "" || d.Address == PlaceholderAddress
}

// LoadDefaults reads the defaults file, creating it first when it does not exist.
// Environment variables (AVEA_ADDRESS, AVEA_LIGHT, ...) override file values.
func LoadDefaults(path string, logger *slog.Logger) (*Defaults, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info("Defaults file not found, creating it", "path", path)
		if err := SaveDefaults(path, NewDefaults()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("error checking defaults file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading defaults file %s: %w", path, err)
	}

	for _, key := range []string{"address", "light", "white", "red", "green", "blue"} {
		_ = v.BindEnv(DefaultsSection+"."+key, EnvPrefix+"_"+strings.ToUpper(key))
	}

	d := &Defaults{
		Address: v.GetString(DefaultsSection + ".address"),
		Light:   v.GetString(DefaultsSection + ".light"),
		White:   v.GetString(DefaultsSection + ".white"),
		Red:     v.GetString(DefaultsSection + ".red"),
		Green:   v.GetString(DefaultsSection + ".green"),
		Blue:    v.GetString(DefaultsSection + ".blue"),
	}
	logger.Debug("Loaded defaults", "path", path, "address", d.Address)
	return d, nil
}

// SaveDefaults rewrites the defaults file. Last writer wins.
func SaveDefaults(path string, d *Defaults) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	doc := defaultsDocument{Avea: defaultsSection{
		Address: d.Address,
		Light:   d.Light,
		White:   d.White,
		Red:     d.Red,
		Green:   d.Green,
		Blue:    d.Blue,
	}}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("error encoding defaults: %w", err)
	}

	if err := os.WriteFile(path, data, defaultsFileMode); err != nil {
		return fmt.Errorf("error writing defaults file: %w", err)
	}
	// WriteFile is subject to the umask
	if err := os.Chmod(path, defaultsFileMode); err != nil {
		return fmt.Errorf("error setting defaults file mode: %w", err)
	}
	return nil
}
