package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// newNameCommand creates the name command
func newNameCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "name NEW_NAME",
		Short: "Rename a bulb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, address)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.bulb.SetName(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to rename bulb: %w", err)
			}
			pterm.Success.Printfln("Renamed %s to %q", s.bulb.Address(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Bulb address, overrides the saved one")
	return cmd
}
