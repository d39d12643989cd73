package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/aveactl/pkg/avea"
)

// newMoodsCommand creates the moods command
func newMoodsCommand() *cobra.Command {
	var parseable bool

	cmd := &cobra.Command{
		Use:   "moods",
		Short: "List mood presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			moods := avea.Moods()

			if parseable {
				for _, m := range moods {
					fmt.Println(MoodParseable(m))
				}
				return nil
			}

			table := pterm.TableData{
				[]string{"Mood", "Light", "White", "Red", "Green", "Blue"},
			}
			for _, m := range moods {
				v := m.Values
				table = append(table, []string{
					m.Name,
					fmt.Sprint(v.Light),
					fmt.Sprint(v.White),
					fmt.Sprint(v.Red),
					fmt.Sprint(v.Green),
					fmt.Sprint(v.Blue),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}

	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	return cmd
}
