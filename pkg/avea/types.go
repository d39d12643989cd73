package avea

import (
	"fmt"
	"time"
)

// Opcode identifies a command or report in the bulb's binary protocol
type Opcode byte

const (
	// OpColor sets or reports the four channel values
	OpColor Opcode = 0x35
	// OpBrightness sets or reports the brightness
	OpBrightness Opcode = 0x57
	// OpName sets or reports the bulb's name
	OpName Opcode = 0x58
)

func (o Opcode) String() string {
	switch o {
	case OpColor:
		return "color"
	case OpBrightness:
		return "brightness"
	case OpName:
		return "name"
	default:
		return fmt.Sprintf("0x%02x", byte(o))
	}
}

// Handle is a GATT attribute handle on the bulb
type Handle uint16

const (
	// HandleCommand is the value handle of the command characteristic
	HandleCommand Handle = 40
	// HandleNotify is the client characteristic configuration descriptor of
	// the command characteristic; writing 0x0100 enables notifications
	HandleNotify Handle = 41
)

// Color holds the four 12-bit channel values of a bulb
type Color struct {
	White int
	Red   int
	Green int
	Blue  int
}

// Clamped returns c with every channel clamped to [0, 4095]
func (c Color) Clamped() Color {
	return Color{
		White: Clamp(c.White),
		Red:   Clamp(c.Red),
		Green: Clamp(c.Green),
		Blue:  Clamp(c.Blue),
	}
}

// State is the last-known state of a bulb, from sent commands or received
// notifications. A zero timestamp means the field was never observed.
type State struct {
	Color      Color
	Brightness int
	Name       string

	ColorUpdated      time.Time
	BrightnessUpdated time.Time
	NameUpdated       time.Time
}

// Notification is a decoded frame pushed by the bulb
type Notification struct {
	Opcode     Opcode
	Color      Color
	Brightness int
	Name       string
}

// Device is a bulb found by a scan
type Device struct {
	Address string
	Name    string
	RSSI    int
}
