//go:build linux

package avea

import (
	"context"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"tinygo.org/x/bluetooth"

	"github.com/jmylchreest/aveactl/internal/errors"
)

// BLETransport talks to bulbs through the host's default Bluetooth adapter
type BLETransport struct {
	adapter *bluetooth.Adapter
	logger  *slog.Logger

	enableOnce sync.Once
	enableErr  error
}

// NewBLETransport returns a transport on the default adapter
func NewBLETransport(logger *slog.Logger) *BLETransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &BLETransport{
		adapter: bluetooth.DefaultAdapter,
		logger:  logger,
	}
}

func (t *BLETransport) enable() error {
	t.enableOnce.Do(func() {
		t.logger.Debug("Enabling Bluetooth adapter")
		if err := t.adapter.Enable(); err != nil {
			t.enableErr = errors.DeviceUnavailablef("failed to enable Bluetooth adapter: %w", err)
		}
	})
	return t.enableErr
}

// Dial connects to the bulb and resolves its command characteristic
func (t *BLETransport) Dial(ctx context.Context, address string) (Conn, error) {
	if err := t.enable(); err != nil {
		return nil, err
	}
	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return nil, errors.InvalidInputf("invalid bulb address %q", address)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	device, err := t.adapter.Connect(bluetooth.Address{MACAddress: bluetooth.MACAddress{MAC: mac}}, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, err
	}

	char, err := discoverCommand(device)
	if err != nil {
		_ = device.Disconnect()
		return nil, err
	}

	t.logger.Debug("Resolved command characteristic", "address", address, "uuid", char.UUID().String())
	return &bleConn{address: address, device: device, char: char}, nil
}

func discoverCommand(device bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	serviceUUID, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, errors.Internalf("parse service uuid: %v", err)
	}
	charUUID, err := bluetooth.ParseUUID(CharacteristicUUID)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, errors.Internalf("parse characteristic uuid: %v", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, errors.WrapErrorf(err, "failed to discover bulb service")
	}
	if len(services) == 0 {
		return bluetooth.DeviceCharacteristic{}, errors.NotFoundf("bulb service %s", ServiceUUID)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{charUUID})
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, errors.WrapErrorf(err, "failed to discover command characteristic")
	}
	if len(chars) == 0 {
		return bluetooth.DeviceCharacteristic{}, errors.NotFoundf("command characteristic %s", CharacteristicUUID)
	}
	return chars[0], nil
}

// Scan collects advertising bulbs until ctx is done
func (t *BLETransport) Scan(ctx context.Context, nameFilter string) ([]Device, error) {
	if err := t.enable(); err != nil {
		return nil, err
	}
	return collectDevices(ctx, adapterScanner{t.adapter}, nameFilter, t.logger)
}

type adapterScanner struct {
	adapter *bluetooth.Adapter
}

func (s adapterScanner) start(fn func(advertisement)) error {
	return s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		fn(advertisement{
			address: result.Address.String(),
			name:    result.LocalName(),
			rssi:    int(result.RSSI),
		})
	})
}

func (s adapterScanner) stop() error {
	return s.adapter.StopScan()
}

type bleConn struct {
	address string
	device  bluetooth.Device
	char    bluetooth.DeviceCharacteristic

	// BlueZ object of the command characteristic, resolved on the first
	// write with response
	gattOnce sync.Once
	gattObj  dbus.BusObject
	gattErr  error
}

// Write only supports the command characteristic; the notification
// descriptor is written through Subscribe.
func (c *bleConn) Write(handle Handle, payload []byte, withResponse bool) error {
	if handle != HandleCommand {
		return errors.InvalidInputf("unsupported handle %d", handle)
	}
	if withResponse {
		return c.writeRequest(payload)
	}
	_, err := c.char.WriteWithoutResponse(payload)
	return err
}

// writeRequest writes through BlueZ directly, the adapter only exposes
// writes without response on Linux
func (c *bleConn) writeRequest(payload []byte) error {
	c.gattOnce.Do(func() {
		c.gattObj, c.gattErr = commandObject(c.address)
	})
	if c.gattErr != nil {
		return c.gattErr
	}
	return c.gattObj.Call(gattCharacteristicIface+".WriteValue", 0, payload, writeRequestOptions()).Err
}

func (c *bleConn) Subscribe(fn NotificationHandler) error {
	return c.char.EnableNotifications(func(buf []byte) {
		data := make([]byte, len(buf))
		copy(data, buf)
		fn(HandleCommand, data)
	})
}

func (c *bleConn) Close() error {
	return c.device.Disconnect()
}
