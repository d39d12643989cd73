package avea

import (
	"bytes"
	"encoding/hex"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/aveactl/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, 0},
		{0, 0},
		{2000, 2000},
		{4095, 4095},
		{4096, 4095},
		{70000, 4095},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.in), "Clamp(%d)", tt.in)
	}
}

func TestParseValue(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))

	assert.Equal(t, 100, ParseValue("100", logger))
	assert.Equal(t, 4095, ParseValue(" 9999 ", logger))
	assert.Equal(t, 0, ParseValue("-5", logger))
	assert.Empty(t, logs.String())

	assert.Equal(t, 0, ParseValue("bright", logger))
	assert.Contains(t, logs.String(), "not a number")
}

func TestEncodeBrightness(t *testing.T) {
	assert.Equal(t, "57d007", EncodeBrightness(2000).String())
	assert.Equal(t, "57ff0f", EncodeBrightness(5000).String())
	assert.Equal(t, "570000", EncodeBrightness(-3).String())
}

func TestEncodeColor(t *testing.T) {
	p := EncodeColor(Color{White: 0, Red: 4095, Green: 0, Blue: 0})
	assert.Equal(t, "3511010a000080ff3f00200010", p.String())
	assert.Len(t, p, 13)

	// Out-of-range channels are clamped before tagging
	p = EncodeColor(Color{White: 5000, Red: -1, Green: 100, Blue: 4095})
	assert.Equal(t, "3511010a00ff8f00306420ff1f", p.String())
}

func TestEncodeName(t *testing.T) {
	assert.Equal(t, "586b69746368656e", EncodeName("kitchen").String())
	assert.Equal(t, []byte{0x58}, []byte(EncodeName("")))
}

func TestEncodeRequest(t *testing.T) {
	assert.Equal(t, Payload{0x35}, EncodeRequest(OpColor))
	assert.Equal(t, Payload{0x57}, EncodeRequest(OpBrightness))
	assert.Equal(t, Payload{0x58}, EncodeRequest(OpName))
}

func TestDecodeColorRoundTrip(t *testing.T) {
	colors := []Color{
		{},
		{White: 4095, Red: 4095, Green: 4095, Blue: 4095},
		{White: 1, Red: 2, Green: 3, Blue: 4},
		{White: 2000, Red: 0, Green: 1234, Blue: 4000},
	}
	for _, c := range colors {
		n, err := Decode(EncodeColor(c))
		require.NoError(t, err)
		assert.Equal(t, OpColor, n.Opcode)
		assert.Equal(t, c, n.Color)
	}
}

func TestDecodeColorDeviceOrder(t *testing.T) {
	// Reported as white (untagged), blue, green, red
	frame, err := hex.DecodeString("3511010a00" + "e803" + "d017" + "0020" + "ff3f")
	require.NoError(t, err)

	n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, Color{White: 1000, Red: 4095, Green: 0, Blue: 2000}, n.Color)
}

func TestDecodeColorUsesTrailingFields(t *testing.T) {
	// Only the last eight bytes carry channel values
	frame := append([]byte{0x35, 0xaa}, EncodeColor(Color{Red: 7})[5:]...)
	n, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, Color{Red: 7}, n.Color)
}

func TestDecodeColorMalformed(t *testing.T) {
	_, err := Decode([]byte{0x35, 0x00, 0x80})
	assert.ErrorIs(t, err, ErrMalformedFrame)

	// 0x4000 is not a channel tag
	_, err = Decode([]byte{0x35, 0x00, 0x40, 0x00, 0x30, 0x00, 0x20, 0x00, 0x10})
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestDecodeBrightness(t *testing.T) {
	n, err := Decode([]byte{0x57, 0xd0, 0x07})
	require.NoError(t, err)
	assert.Equal(t, OpBrightness, n.Opcode)
	assert.Equal(t, 2000, n.Brightness)

	n, err = Decode([]byte{0x57, 0x0a})
	require.NoError(t, err)
	assert.Equal(t, 10, n.Brightness)

	n, err = Decode([]byte{0x57, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, 4095, n.Brightness, "out of range values are clamped")

	_, err = Decode([]byte{0x57})
	assert.ErrorIs(t, err, ErrMalformedFrame)

	_, err = Decode([]byte{0x57, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrMalformedFrame)

	_, err = Decode([]byte{0x57, 0xd0, 0x07, 0x00})
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestDecodeName(t *testing.T) {
	n, err := Decode(append([]byte{0x58}, "Living Room\x00\x00"...))
	require.NoError(t, err)
	assert.Equal(t, OpName, n.Opcode)
	assert.Equal(t, "Living Room", n.Name)

	n, err = Decode([]byte{0x58, 'a', 0xff, 'b'})
	require.NoError(t, err)
	assert.Equal(t, "a\uFFFDb", n.Name)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, err := Decode([]byte{0x99, 0x01})
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	assert.True(t, IsUnknownOpcode(err))

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrMalformedFrame)
	assert.False(t, IsUnknownOpcode(err))
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "color", OpColor.String())
	assert.Equal(t, "brightness", OpBrightness.String())
	assert.Equal(t, "name", OpName.String())
	assert.Equal(t, "0x99", Opcode(0x99).String())
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"7C:EC:79:1A:2B:3C", "7C:EC:79:1A:2B:3C"},
		{"7c:ec:79:1a:2b:3c", "7C:EC:79:1A:2B:3C"},
		{"7c-ec-79-1a-2b-3c", "7C:EC:79:1A:2B:3C"},
		{"7cec.791a.2b3c", "7C:EC:79:1A:2B:3C"},
	}
	for _, tt := range tests {
		got, err := NormalizeAddress(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, in := range []string{
		"",
		"not-an-address",
		"02:00:5e:10:00:00:00:01",
		"00:00:00:00:fe:80:00:00:00:00:00:00:02:00:5e:10:00:00:00:01",
	} {
		_, err := NormalizeAddress(in)
		assert.True(t, errors.IsInvalidInput(err), in)
	}
}
