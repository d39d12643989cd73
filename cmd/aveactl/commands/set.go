package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/aveactl/internal/config"
	"github.com/jmylchreest/aveactl/pkg/avea"
)

// newSetCommand creates the set command
func newSetCommand() *cobra.Command {
	var (
		req     avea.Request
		address string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the color and brightness of a bulb",
		Long: `Set the color channels and brightness of a bulb.

Each value is either absolute (0-4095) or relative to the last value sent
when it starts with + or -. Channels that are not given keep their last
value. A mood replaces every channel and the brightness.`,
		Example: `  aveactl set -r 4095 -g 0 -b 0 -w 0
  aveactl set -l +500
  aveactl set -m sleep`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := getLoggerFromCmd(cmd)
			cfg, d, err := loadDefaults(cmd)
			if err != nil {
				return err
			}

			next, err := avea.Resolve(previousValues(d, logger), req, logger)
			if err != nil {
				return err
			}

			s, err := connectSession(cmd, cfg, d, address)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if req.Mood != "" {
				mood, err := s.bulb.SetMood(ctx, req.Mood)
				if err != nil {
					return fmt.Errorf("failed to set mood %s: %w", req.Mood, err)
				}
				next = mood.Values
			} else {
				if err := s.bulb.SetColor(ctx, next.Color()); err != nil {
					return fmt.Errorf("failed to set color: %w", err)
				}
				if err := s.bulb.SetBrightness(ctx, next.Light); err != nil {
					return fmt.Errorf("failed to set brightness: %w", err)
				}
			}

			s.defaults.Address = s.bulb.Address()
			storeValues(s.defaults, next)
			if err := config.SaveDefaults(s.cfg.DefaultsFile, s.defaults); err != nil {
				return fmt.Errorf("failed to save defaults: %w", err)
			}

			pterm.Success.Printfln("Set %s: light=%d white=%d red=%d green=%d blue=%d",
				s.bulb.Address(), next.Light, next.White, next.Red, next.Green, next.Blue)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.White, "white", "w", "", "White channel (0-4095, or +N/-N)")
	cmd.Flags().StringVarP(&req.Red, "red", "r", "", "Red channel (0-4095, or +N/-N)")
	cmd.Flags().StringVarP(&req.Green, "green", "g", "", "Green channel (0-4095, or +N/-N)")
	cmd.Flags().StringVarP(&req.Blue, "blue", "b", "", "Blue channel (0-4095, or +N/-N)")
	cmd.Flags().StringVarP(&req.Light, "light", "l", "", "Brightness (0-4095, or +N/-N)")
	cmd.Flags().StringVarP(&req.Mood, "mood", "m", "", "Mood preset (red, blue, green, white, sleep)")
	cmd.Flags().StringVar(&address, "address", "", "Bulb address, overrides the saved one")

	return cmd
}
