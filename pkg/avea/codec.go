package avea

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/aveactl/internal/config"
)

// Codec errors
var (
	ErrMalformedFrame = errors.New("malformed notification frame")
	ErrUnknownOpcode  = errors.New("unknown notification opcode")
)

// Channel tags occupy the high nibble of each 16-bit color field
const (
	tagWhite uint16 = 0x8000
	tagRed   uint16 = 0x3000
	tagGreen uint16 = 0x2000
	tagBlue  uint16 = 0x1000

	tagMask   uint16 = 0xF000
	valueMask uint16 = 0x0FFF
)

// Fixed fields of a color command
var (
	colorFading   = []byte{0x11, 0x01}
	colorReserved = []byte{0x0a, 0x00}
)

// colorFieldsLen is the size of the four trailing channel fields of a color frame
const colorFieldsLen = 8

// Payload is an encoded command, written as-is to the command characteristic
type Payload []byte

// String returns the payload as lowercase hex
func (p Payload) String() string {
	return hex.EncodeToString(p)
}

// Clamp bounds v to the 12-bit range [0, 4095]
func Clamp(v int) int {
	if v > config.MaxValue {
		return config.MaxValue
	}
	if v < config.MinValue {
		return config.MinValue
	}
	return v
}

// ParseValue parses a channel or brightness value. Non-numeric input is
// logged and replaced by 0; numeric input is clamped.
func ParseValue(s string, logger *slog.Logger) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("Value was not a number, using 0", "value", s)
		return 0
	}
	return Clamp(v)
}

// EncodeColor builds a color command. Each channel is clamped and merged
// with its tag into a little-endian 16-bit field, in white, red, green,
// blue order.
func EncodeColor(c Color) Payload {
	c = c.Clamped()

	p := make(Payload, 0, 1+len(colorFading)+len(colorReserved)+colorFieldsLen)
	p = append(p, byte(OpColor))
	p = append(p, colorFading...)
	p = append(p, colorReserved...)
	p = binary.LittleEndian.AppendUint16(p, uint16(c.White)|tagWhite)
	p = binary.LittleEndian.AppendUint16(p, uint16(c.Red)|tagRed)
	p = binary.LittleEndian.AppendUint16(p, uint16(c.Green)|tagGreen)
	p = binary.LittleEndian.AppendUint16(p, uint16(c.Blue)|tagBlue)
	return p
}

// EncodeBrightness builds a brightness command carrying the clamped raw value
func EncodeBrightness(v int) Payload {
	p := make(Payload, 0, 3)
	p = append(p, byte(OpBrightness))
	return binary.LittleEndian.AppendUint16(p, uint16(Clamp(v)))
}

// EncodeName builds a rename command carrying the UTF-8 bytes of name
func EncodeName(name string) Payload {
	p := make(Payload, 0, 1+len(name))
	p = append(p, byte(OpName))
	return append(p, name...)
}

// EncodeRequest builds a bare read request; the bulb answers with a notification
func EncodeRequest(op Opcode) Payload {
	return Payload{byte(op)}
}

// Decode parses a notification frame. Frames with an opcode other than
// color, brightness or name return ErrUnknownOpcode.
func Decode(data []byte) (Notification, error) {
	if len(data) == 0 {
		return Notification{}, fmt.Errorf("empty frame: %w", ErrMalformedFrame)
	}

	n := Notification{Opcode: Opcode(data[0])}
	body := data[1:]

	switch n.Opcode {
	case OpBrightness:
		// 16-bit little-endian, some firmware sends a single byte
		switch len(body) {
		case 1:
			n.Brightness = int(body[0])
		case 2:
			n.Brightness = Clamp(int(binary.LittleEndian.Uint16(body)))
		default:
			return n, fmt.Errorf("brightness frame with %d value bytes: %w", len(body), ErrMalformedFrame)
		}

	case OpColor:
		c, err := decodeColor(body)
		if err != nil {
			return n, err
		}
		n.Color = c

	case OpName:
		name := strings.TrimRight(string(body), "\x00")
		if !utf8.ValidString(name) {
			name = strings.ToValidUTF8(name, "\uFFFD")
		}
		n.Name = name

	default:
		return n, fmt.Errorf("opcode 0x%02x: %w", data[0], ErrUnknownOpcode)
	}

	return n, nil
}

// decodeColor reads the last eight bytes of a color frame as four
// little-endian fields. The channel of each field is identified by its tag
// and its value recovered by XOR with that tag. White is reported either
// with its command tag or untagged.
func decodeColor(body []byte) (Color, error) {
	if len(body) < colorFieldsLen {
		return Color{}, fmt.Errorf("color frame with %d bytes: %w", len(body), ErrMalformedFrame)
	}
	fields := body[len(body)-colorFieldsLen:]

	var c Color
	for i := 0; i < colorFieldsLen; i += 2 {
		raw := binary.LittleEndian.Uint16(fields[i:])
		switch raw & tagMask {
		case tagRed:
			c.Red = int(raw ^ tagRed)
		case tagGreen:
			c.Green = int(raw ^ tagGreen)
		case tagBlue:
			c.Blue = int(raw ^ tagBlue)
		case tagWhite:
			c.White = int(raw ^ tagWhite)
		case 0:
			c.White = int(raw & valueMask)
		default:
			return Color{}, fmt.Errorf("color field 0x%04x has unknown channel tag: %w", raw, ErrMalformedFrame)
		}
	}
	return c, nil
}

// IsUnknownOpcode reports whether err came from a frame with an unhandled opcode
func IsUnknownOpcode(err error) bool {
	return errors.Is(err, ErrUnknownOpcode)
}
