package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/aveactl/internal/config"
	"github.com/jmylchreest/aveactl/internal/errors"
	"github.com/jmylchreest/aveactl/pkg/avea"
)

// newScanCommand creates the scan command
func newScanCommand() *cobra.Command {
	var (
		timeout   time.Duration
		save      bool
		names     bool
		parseable bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan for nearby bulbs",
		Long: `Scan for bulbs advertising a name containing the configured filter
("Avea" by default). With --save the first bulb found becomes the default
for other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := getLoggerFromCmd(cmd)
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}
			t, err := getTransport(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Scan.Timeout
			}
			timeout = config.ValidateScanTimeout(timeout)

			if !parseable {
				pterm.Info.Printfln("Scanning for bulbs for %s", timeout)
			}
			scanCtx, cancel := context.WithTimeout(cmd.Context(), timeout)
			devices, err := t.Scan(scanCtx, cfg.Scan.NameFilter)
			cancel()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				return errors.NotFoundf("no bulbs found within %s", timeout)
			}

			if names {
				for i := range devices {
					devices[i].Name = readName(cmd, t, cfg, devices[i])
				}
			}

			if save {
				d, err := config.LoadDefaults(cfg.DefaultsFile, logger)
				if err != nil {
					return err
				}
				d.Address = devices[0].Address
				if err := config.SaveDefaults(cfg.DefaultsFile, d); err != nil {
					return fmt.Errorf("failed to save defaults: %w", err)
				}
				logger.Info("Saved bulb address", "address", d.Address, "path", cfg.DefaultsFile)
			}

			if parseable {
				for _, d := range devices {
					fmt.Println(DeviceParseable(d))
				}
				return nil
			}

			table := pterm.TableData{
				[]string{"Address", "Name", "RSSI"},
			}
			for _, d := range devices {
				table = append(table, []string{d.Address, d.Name, fmt.Sprint(d.RSSI)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultScanTimeout, "How long to scan")
	cmd.Flags().BoolVar(&save, "save", false, "Save the first bulb found as the default address")
	cmd.Flags().BoolVar(&names, "names", false, "Connect to each bulb and read its configured name")
	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	return cmd
}

// readName connects to a scanned bulb and reads its name. Failures keep the
// advertised name.
func readName(cmd *cobra.Command, t avea.Transport, cfg *config.Config, d avea.Device) string {
	logger := getLoggerFromCmd(cmd)

	b, err := avea.Connect(cmd.Context(), t, d.Address, bulbOptions(cfg), logger)
	if err != nil {
		logger.Warn("Failed to read bulb name", "address", d.Address, "error", err)
		return d.Name
	}
	defer func() { _ = b.Close() }()

	name, fresh, err := b.GetName(cmd.Context())
	if err != nil || !fresh {
		logger.Warn("Bulb did not report its name", "address", d.Address, "error", err)
		return d.Name
	}
	return name
}
