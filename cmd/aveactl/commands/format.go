package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/jmylchreest/aveactl/pkg/avea"
)

// Properties that can be read from a bulb, in output order
const (
	propertyName       = "name"
	propertyColor      = "color"
	propertyBrightness = "brightness"
)

var orderedProperties = []string{propertyName, propertyColor, propertyBrightness}

// reading is the result of reading a bulb
type reading struct {
	address string
	state   avea.State
	fresh   map[string]bool
}

// bulbTableData returns the table data for a bulb reading, with bold address
func bulbTableData(r reading, properties []string) pterm.TableData {
	table := pterm.TableData{
		[]string{pterm.Bold.Sprint("Address"), pterm.Bold.Sprint(r.address)},
	}
	for _, p := range properties {
		switch p {
		case propertyName:
			table = append(table, []string{"Name", staleMark(r.state.Name, r.fresh[p])})
		case propertyColor:
			c := r.state.Color
			table = append(table,
				[]string{"White", staleMark(fmt.Sprint(c.White), r.fresh[p])},
				[]string{"Red", staleMark(fmt.Sprint(c.Red), r.fresh[p])},
				[]string{"Green", staleMark(fmt.Sprint(c.Green), r.fresh[p])},
				[]string{"Blue", staleMark(fmt.Sprint(c.Blue), r.fresh[p])},
			)
		case propertyBrightness:
			table = append(table, []string{"Brightness", staleMark(fmt.Sprint(r.state.Brightness), r.fresh[p])})
		}
	}
	table = append(table, []string{"Last Update", formatUpdated(lastUpdated(r.state))})
	return table
}

func staleMark(v string, fresh bool) string {
	if fresh {
		return v
	}
	return v + " (stale)"
}

// lastUpdated returns the most recent observation time of the state
func lastUpdated(s avea.State) time.Time {
	t := s.ColorUpdated
	for _, u := range []time.Time{s.BrightnessUpdated, s.NameUpdated} {
		if u.After(t) {
			t = u
		}
	}
	return t
}

// formatUpdated formats an observation time for display
func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(time.RFC1123Z)
}

// bulbParseable returns the parseable key=value string for a bulb reading
func bulbParseable(r reading, properties []string) string {
	parts := []string{fmt.Sprintf("address=%q", r.address)}
	for _, p := range properties {
		switch p {
		case propertyName:
			parts = append(parts, fmt.Sprintf("name=%q", r.state.Name))
		case propertyColor:
			c := r.state.Color
			parts = append(parts,
				fmt.Sprintf("white=%d", c.White),
				fmt.Sprintf("red=%d", c.Red),
				fmt.Sprintf("green=%d", c.Green),
				fmt.Sprintf("blue=%d", c.Blue),
			)
		case propertyBrightness:
			parts = append(parts, fmt.Sprintf("brightness=%d", r.state.Brightness))
		}
		parts = append(parts, fmt.Sprintf("%s_fresh=%t", p, r.fresh[p]))
	}
	return strings.Join(parts, " ")
}

// DeviceParseable returns the parseable key=value string for a scanned bulb
func DeviceParseable(d avea.Device) string {
	return fmt.Sprintf("address=%q name=%q rssi=%d", d.Address, d.Name, d.RSSI)
}

// MoodParseable returns the parseable key=value string for a mood preset
func MoodParseable(m avea.Mood) string {
	v := m.Values
	return fmt.Sprintf("mood=%q light=%d white=%d red=%d green=%d blue=%d",
		m.Name, v.Light, v.White, v.Red, v.Green, v.Blue)
}
