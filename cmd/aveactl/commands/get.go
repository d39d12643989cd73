package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/aveactl/internal/errors"
)

// newGetCommand creates the get command
func newGetCommand() *cobra.Command {
	var (
		parseable bool
		address   string
	)

	cmd := &cobra.Command{
		Use:       "get [color|brightness|name]",
		Short:     "Read the state of a bulb",
		Long:      "Read the name, color and brightness of a bulb. Values the bulb does not report in time are shown from the last known state and marked stale.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: orderedProperties,
		RunE: func(cmd *cobra.Command, args []string) error {
			properties := orderedProperties
			if len(args) > 0 {
				property := strings.ToLower(args[0])
				if !slices.Contains(orderedProperties, property) {
					return errors.InvalidInputf("invalid property: %s", property)
				}
				properties = []string{property}
			}

			s, err := openSession(cmd, address)
			if err != nil {
				return err
			}
			defer s.Close()

			r := reading{address: s.bulb.Address(), fresh: make(map[string]bool)}
			ctx := cmd.Context()
			for _, p := range properties {
				var (
					fresh bool
					err   error
				)
				switch p {
				case propertyName:
					_, fresh, err = s.bulb.GetName(ctx)
				case propertyColor:
					_, fresh, err = s.bulb.GetColor(ctx)
				case propertyBrightness:
					_, fresh, err = s.bulb.GetBrightness(ctx)
				}
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", p, err)
				}
				if !fresh {
					s.logger.Warn("Bulb did not report in time, showing last known value", "property", p)
				}
				r.fresh[p] = fresh
			}
			r.state = s.bulb.State()

			if parseable {
				fmt.Println(bulbParseable(r, properties))
				return nil
			}
			return pterm.DefaultTable.WithData(bulbTableData(r, properties)).Render()
		},
	}

	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	cmd.Flags().StringVar(&address, "address", "", "Bulb address, overrides the saved one")
	return cmd
}
