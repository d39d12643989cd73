package avea

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/aveactl/internal/errors"
)

// stopScanRetryInterval is how often a failed stop is retried while the
// adapter has not started scanning yet
var stopScanRetryInterval = 50 * time.Millisecond

// advertisement is a single scan result reported by an adapter
type advertisement struct {
	address string
	name    string
	rssi    int
}

// scanRunner is the part of an adapter used while scanning. start blocks
// until stop succeeds; stop fails while the adapter is not scanning.
type scanRunner interface {
	start(fn func(advertisement)) error
	stop() error
}

// collectDevices runs a scan until ctx is done and returns the bulbs whose
// name contains nameFilter, in the order they were first seen. Repeated
// advertisements refresh the name and RSSI.
func collectDevices(ctx context.Context, r scanRunner, nameFilter string, logger *slog.Logger) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		devices []Device
		index   = make(map[string]int)
	)

	scanDone := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(scanDone)
		return r.start(func(a advertisement) {
			if nameFilter != "" && !strings.Contains(a.name, nameFilter) {
				return
			}
			addr := strings.ToUpper(a.address)
			d := Device{Address: addr, Name: a.name, RSSI: a.rssi}

			mu.Lock()
			defer mu.Unlock()
			if i, seen := index[addr]; seen {
				devices[i] = d
				return
			}
			logger.Debug("Found bulb", "address", addr, "name", a.name, "rssi", a.rssi)
			index[addr] = len(devices)
			devices = append(devices, d)
		})
	})
	g.Go(func() error {
		select {
		case <-scanDone:
			return nil
		case <-gctx.Done():
		}

		// The context can end before the adapter is scanning, in which case
		// stop fails and start would block forever.
		ticker := time.NewTicker(stopScanRetryInterval)
		defer ticker.Stop()
		for {
			err := r.stop()
			if err == nil {
				return nil
			}
			logger.Debug("Stopping scan failed, retrying", "error", err)
			select {
			case <-scanDone:
				return nil
			case <-ticker.C:
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, errors.DeviceUnavailablef("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return devices, nil
}
