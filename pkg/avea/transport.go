package avea

import (
	"context"
	"net"
	"strings"

	"github.com/jmylchreest/aveactl/internal/errors"
)

// GATT identifiers of the bulb's control service
const (
	ServiceUUID        = "f815e810-456c-6761-746f-4d756e696368"
	CharacteristicUUID = "f815e811-456c-6761-746f-4d756e696368"
)

// NotificationHandler receives raw notification bytes and the handle they came from.
// It runs on the transport's event goroutine and must not block.
type NotificationHandler func(handle Handle, data []byte)

// Transport opens byte-level connections to bulbs
type Transport interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// Conn is a connection to one bulb
type Conn interface {
	// Write sends payload to the attribute at handle
	Write(handle Handle, payload []byte, withResponse bool) error
	// Subscribe enables notifications and registers the handler for them
	Subscribe(fn NotificationHandler) error
	// Close tears the connection down
	Close() error
}

// Scanner finds nearby bulbs
type Scanner interface {
	// Scan collects devices whose advertised name contains nameFilter until ctx is done
	Scan(ctx context.Context, nameFilter string) ([]Device, error)
}

// NormalizeAddress checks that address is a 48-bit hardware address in any
// of the usual notations and returns it as upper-case colon-separated hex
func NormalizeAddress(address string) (string, error) {
	hw, err := net.ParseMAC(address)
	if err != nil {
		return "", errors.InvalidInputf("invalid bulb address %q", address)
	}
	if len(hw) != 6 {
		return "", errors.InvalidInputf("bulb address %q is not a 48-bit address", address)
	}
	return strings.ToUpper(hw.String()), nil
}
