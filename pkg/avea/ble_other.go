//go:build !linux

package avea

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/aveactl/internal/errors"
)

// BLETransport is only implemented on Linux
type BLETransport struct {
	logger *slog.Logger
}

// NewBLETransport returns a transport that always fails on this platform
func NewBLETransport(logger *slog.Logger) *BLETransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &BLETransport{logger: logger}
}

func (t *BLETransport) Dial(_ context.Context, address string) (Conn, error) {
	return nil, errors.DeviceUnavailablef("bluetooth is not supported on this platform, cannot reach %s", address)
}

func (t *BLETransport) Scan(_ context.Context, _ string) ([]Device, error) {
	return nil, errors.DeviceUnavailablef("bluetooth is not supported on this platform")
}
