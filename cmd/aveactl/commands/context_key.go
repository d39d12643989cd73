package commands

import (
	"context"

	"github.com/jmylchreest/aveactl/pkg/avea"
)

// contextKey is a private type for values stored on the command context
type contextKey string

const (
	loggerContextKey    contextKey = "logger"
	configContextKey    contextKey = "config"
	transportContextKey contextKey = "transport"
)

// Transport is the Bluetooth layer used by commands: it connects to and scans for bulbs
type Transport interface {
	avea.Transport
	avea.Scanner
}

// WithTransport returns a context carrying t. Commands fall back to the
// host Bluetooth adapter when no transport is set.
func WithTransport(ctx context.Context, t Transport) context.Context {
	return context.WithValue(ctx, transportContextKey, t)
}
