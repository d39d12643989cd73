package avea

import (
	"strings"

	"github.com/jmylchreest/aveactl/internal/config"
	"github.com/jmylchreest/aveactl/internal/errors"
)

// Mood is a named preset of brightness and channel values
type Mood struct {
	Name   string
	Values Values
}

// moods is checked in order; when a mood argument matches several presets
// the last one wins.
var moods = []Mood{
	{Name: "red", Values: Values{Light: config.MaxValue, Red: config.MaxValue}},
	{Name: "blue", Values: Values{Light: config.MaxValue, Blue: config.MaxValue}},
	{Name: "green", Values: Values{Light: config.MaxValue, Green: config.MaxValue}},
	{Name: "white", Values: Values{Light: config.MaxValue, White: config.MaxValue}},
	{Name: "sleep", Values: Values{Light: 10, Red: config.MaxValue}},
}

// Moods returns the available presets
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

// ResolveMood returns the preset whose name is contained in the argument
func ResolveMood(name string) (Mood, error) {
	arg := strings.ToLower(strings.TrimSpace(name))

	var (
		found Mood
		ok    bool
	)
	for _, m := range moods {
		if arg != "" && strings.Contains(arg, m.Name) {
			found, ok = m, true
		}
	}
	if !ok {
		return Mood{}, errors.InvalidInputf("unknown mood %q", name)
	}
	return found, nil
}
