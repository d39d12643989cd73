package avea

import (
	"log/slog"
	"strconv"
	"strings"
)

// Values is a snapshot of the requested brightness and channel values.
// It is passed by value from argument resolution to the codec.
type Values struct {
	Light int
	White int
	Red   int
	Green int
	Blue  int
}

// Color returns the channel part of v
func (v Values) Color() Color {
	return Color{White: v.White, Red: v.Red, Green: v.Green, Blue: v.Blue}
}

// Clamped returns v with every field clamped to [0, 4095]
func (v Values) Clamped() Values {
	return Values{
		Light: Clamp(v.Light),
		White: Clamp(v.White),
		Red:   Clamp(v.Red),
		Green: Clamp(v.Green),
		Blue:  Clamp(v.Blue),
	}
}

// Request holds the raw arguments of one invocation. An empty field keeps
// the previous value; a leading sign makes it relative to the previous value.
// A non-empty Mood overrides every channel field.
type Request struct {
	Light string
	White string
	Red   string
	Green string
	Blue  string
	Mood  string
}

// IsEmpty reports whether the request changes nothing
func (r Request) IsEmpty() bool {
	return r == Request{}
}

// Resolve computes the values to send from the previous values and a request
func Resolve(prev Values, req Request, logger *slog.Logger) (Values, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if req.Mood != "" {
		mood, err := ResolveMood(req.Mood)
		if err != nil {
			return prev, err
		}
		logger.Debug("Using mood preset, ignoring channel arguments", "mood", mood.Name)
		return mood.Values, nil
	}

	next := Values{
		Light: resolveField(prev.Light, req.Light, "light", logger),
		White: resolveField(prev.White, req.White, "white", logger),
		Red:   resolveField(prev.Red, req.Red, "red", logger),
		Green: resolveField(prev.Green, req.Green, "green", logger),
		Blue:  resolveField(prev.Blue, req.Blue, "blue", logger),
	}
	return next.Clamped(), nil
}

func resolveField(prev int, arg, field string, logger *slog.Logger) int {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return Clamp(prev)
	}

	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		delta, err := strconv.Atoi(arg)
		if err != nil {
			logger.Warn("Value was not a number, using 0", "field", field, "value", arg)
			return 0
		}
		return Clamp(prev + delta)
	}

	return ParseValue(arg, logger.With("field", field))
}
