// Package aveatest provides an in-memory bulb transport for tests.
package aveatest

import (
	"context"
	"encoding/binary"
	"strings"
	"sync"

	"github.com/jmylchreest/aveactl/pkg/avea"
)

// Write is one recorded write to the fake bulb
type Write struct {
	Handle       avea.Handle
	Payload      []byte
	WithResponse bool
}

// Transport is a fake avea.Transport and avea.Scanner. Every Dial returns
// the same Conn so tests can inspect what was written.
type Transport struct {
	Conn    *Conn
	DialErr error

	Devices []avea.Device
	ScanErr error

	mu    sync.Mutex
	dials []string
}

// NewTransport returns a transport whose bulb answers read requests with reply
func NewTransport(reply func(request []byte) []byte) *Transport {
	return &Transport{Conn: &Conn{Reply: reply}}
}

// Dial records the address and returns t.Conn
func (t *Transport) Dial(_ context.Context, address string) (avea.Conn, error) {
	t.mu.Lock()
	t.dials = append(t.dials, address)
	t.mu.Unlock()

	if t.DialErr != nil {
		return nil, t.DialErr
	}
	return t.Conn, nil
}

// Dials returns the addresses passed to Dial
func (t *Transport) Dials() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.dials...)
}

// Scan returns the preset devices whose name contains nameFilter
func (t *Transport) Scan(ctx context.Context, nameFilter string) ([]avea.Device, error) {
	if t.ScanErr != nil {
		return nil, t.ScanErr
	}
	var out []avea.Device
	for _, d := range t.Devices {
		if nameFilter == "" || strings.Contains(d.Name, nameFilter) {
			out = append(out, d)
		}
	}
	return out, ctx.Err()
}

// Conn is a fake bulb connection
type Conn struct {
	// Reply, when set, is called for every single-byte read request and its
	// result delivered asynchronously as a notification. A nil result sends nothing.
	Reply func(request []byte) []byte

	WriteErr     error
	SubscribeErr error

	mu      sync.Mutex
	writes  []Write
	handler avea.NotificationHandler
	closed  bool
	wg      sync.WaitGroup
}

// Write records the payload and triggers Reply for read requests
func (c *Conn) Write(handle avea.Handle, payload []byte, withResponse bool) error {
	if c.WriteErr != nil {
		return c.WriteErr
	}

	p := append([]byte(nil), payload...)
	c.mu.Lock()
	c.writes = append(c.writes, Write{Handle: handle, Payload: p, WithResponse: withResponse})
	reply := c.Reply
	c.mu.Unlock()

	if reply != nil && len(p) == 1 {
		if frame := reply(p); frame != nil {
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				c.Notify(frame)
			}()
		}
	}
	return nil
}

// Subscribe records the CCCD write and keeps the handler
func (c *Conn) Subscribe(fn avea.NotificationHandler) error {
	if c.SubscribeErr != nil {
		return c.SubscribeErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, Write{Handle: avea.HandleNotify, Payload: []byte{0x01, 0x00}, WithResponse: true})
	c.handler = fn
	return nil
}

// Close marks the connection closed
func (c *Conn) Close() error {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Notify delivers a notification frame to the subscribed handler
func (c *Conn) Notify(frame []byte) {
	c.mu.Lock()
	fn := c.handler
	c.mu.Unlock()
	if fn != nil {
		fn(avea.HandleCommand, frame)
	}
}

// Writes returns every recorded write, in order
func (c *Conn) Writes() []Write {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Write(nil), c.writes...)
}

// CommandPayloads returns the payloads written to the command handle
func (c *Conn) CommandPayloads() [][]byte {
	var out [][]byte
	for _, w := range c.Writes() {
		if w.Handle == avea.HandleCommand {
			out = append(out, w.Payload)
		}
	}
	return out
}

// Closed reports whether Close was called
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ColorReport builds a color notification the way the bulb reports it:
// white untagged, then blue, green and red with their tags.
func ColorReport(c avea.Color) []byte {
	p := []byte{byte(avea.OpColor), 0x11, 0x01, 0x0a, 0x00}
	p = binary.LittleEndian.AppendUint16(p, uint16(c.White))
	p = binary.LittleEndian.AppendUint16(p, uint16(c.Blue)|0x1000)
	p = binary.LittleEndian.AppendUint16(p, uint16(c.Green)|0x2000)
	p = binary.LittleEndian.AppendUint16(p, uint16(c.Red)|0x3000)
	return p
}

// BrightnessReport builds a brightness notification
func BrightnessReport(v int) []byte {
	return binary.LittleEndian.AppendUint16([]byte{byte(avea.OpBrightness)}, uint16(v))
}

// NameReport builds a name notification
func NameReport(name string) []byte {
	return append([]byte{byte(avea.OpName)}, name...)
}

// Bulb returns a Reply func that answers like a bulb in the given state
func Bulb(c avea.Color, brightness int, name string) func([]byte) []byte {
	return func(req []byte) []byte {
		switch avea.Opcode(req[0]) {
		case avea.OpColor:
			return ColorReport(c)
		case avea.OpBrightness:
			return BrightnessReport(brightness)
		case avea.OpName:
			return NameReport(name)
		}
		return nil
	}
}
