package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/aveactl/internal/config"
	"github.com/jmylchreest/aveactl/internal/errors"
	"github.com/jmylchreest/aveactl/internal/utils"
	"github.com/jmylchreest/aveactl/pkg/avea"
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "aveactl",
		Short:        "Control Elgato Avea bulbs over Bluetooth LE",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupCommand(cmd, configFile)
		},
	}

	// Add global flags
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the aveactl config file")
	cmd.PersistentFlags().String("defaults-file", "", "Path to the file holding the bulb address and last values")
	cmd.PersistentFlags().String("log-level", config.LogLevelInfo, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", config.LogFormatText, "Log format (text, json)")

	// Add commands
	cmd.AddCommand(newVersionCommand(version, commit, buildDate))
	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newNameCommand())
	cmd.AddCommand(newMoodsCommand())
	cmd.AddCommand(newScanCommand())

	return cmd
}

// setupCommand loads configuration and stores the logger, config and
// transport on the command context
func setupCommand(cmd *cobra.Command, configFile string) error {
	cfg, err := config.Load(config.ClientConfigFilename, configFile, cmd.Flags())
	if err != nil {
		utils.SetupErrorLogger().Error("failed to load configuration", "error", err)
		return err
	}

	logger := utils.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)
	utils.SetAsDefaultLogger(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, loggerContextKey, logger)
	ctx = context.WithValue(ctx, configContextKey, cfg)
	if _, ok := ctx.Value(transportContextKey).(Transport); !ok {
		ctx = WithTransport(ctx, avea.NewBLETransport(logger))
	}
	cmd.SetContext(ctx)
	return nil
}

func getConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configContextKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.Internalf("configuration not loaded")
	}
	return cfg, nil
}

func getTransport(cmd *cobra.Command) (Transport, error) {
	t, ok := cmd.Context().Value(transportContextKey).(Transport)
	if !ok || t == nil {
		return nil, errors.Internalf("bluetooth transport not set up")
	}
	return t, nil
}

// newVersionCommand creates the version command
func newVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aveactl:\n")
			fmt.Printf("  Version:    %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
