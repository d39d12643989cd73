package commands

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/aveactl/internal/config"
	"github.com/jmylchreest/aveactl/internal/errors"
	"github.com/jmylchreest/aveactl/pkg/avea"
)

// session bundles what a bulb command needs: the persisted defaults and an
// open bulb connection
type session struct {
	cfg      *config.Config
	defaults *config.Defaults
	bulb     *avea.Bulb
	logger   *slog.Logger
}

// loadDefaults reads the defaults file named by the configuration
func loadDefaults(cmd *cobra.Command) (*config.Config, *config.Defaults, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	d, err := config.LoadDefaults(cfg.DefaultsFile, getLoggerFromCmd(cmd))
	if err != nil {
		return nil, nil, err
	}
	return cfg, d, nil
}

// openSession loads defaults and connects to the bulb at address, or at the
// persisted address when address is empty
func openSession(cmd *cobra.Command, address string) (*session, error) {
	cfg, d, err := loadDefaults(cmd)
	if err != nil {
		return nil, err
	}
	return connectSession(cmd, cfg, d, address)
}

// connectSession connects to the bulb once the defaults are loaded
func connectSession(cmd *cobra.Command, cfg *config.Config, d *config.Defaults, address string) (*session, error) {
	logger := getLoggerFromCmd(cmd)

	if address == "" {
		if d.IsPlaceholderAddress() {
			return nil, errors.InvalidInputf("no bulb address configured in %s, run 'aveactl scan --save' or pass --address", cfg.DefaultsFile)
		}
		address = d.Address
	}

	t, err := getTransport(cmd)
	if err != nil {
		return nil, err
	}

	b, err := avea.Connect(cmd.Context(), t, address, bulbOptions(cfg), logger)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, defaults: d, bulb: b, logger: logger}, nil
}

func (s *session) Close() {
	if err := s.bulb.Close(); err != nil {
		s.logger.Warn("Failed to disconnect cleanly", "error", err)
	}
}

func bulbOptions(cfg *config.Config) avea.Options {
	return avea.Options{
		NotifyTimeout: cfg.Bulb.NotifyTimeout,
		SettleDelay:   cfg.Bulb.SettleDelay,
		WithResponse:  cfg.Bulb.WithResponse,
	}
}

// previousValues parses the persisted values; unparseable ones become 0
func previousValues(d *config.Defaults, logger *slog.Logger) avea.Values {
	return avea.Values{
		Light: avea.ParseValue(d.Light, logger.With("field", "light")),
		White: avea.ParseValue(d.White, logger.With("field", "white")),
		Red:   avea.ParseValue(d.Red, logger.With("field", "red")),
		Green: avea.ParseValue(d.Green, logger.With("field", "green")),
		Blue:  avea.ParseValue(d.Blue, logger.With("field", "blue")),
	}
}

// storeValues writes v into d
func storeValues(d *config.Defaults, v avea.Values) {
	d.Light = strconv.Itoa(v.Light)
	d.White = strconv.Itoa(v.White)
	d.Red = strconv.Itoa(v.Red)
	d.Green = strconv.Itoa(v.Green)
	d.Blue = strconv.Itoa(v.Blue)
}
