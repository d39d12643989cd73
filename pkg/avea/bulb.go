package avea

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/jmylchreest/aveactl/internal/config"
	"github.com/jmylchreest/aveactl/internal/errors"
	"github.com/jmylchreest/aveactl/internal/events"
)

// SessionState is the connection state of a Bulb
type SessionState int32

const (
	StateDisconnected SessionState = iota
	StateIdle
	StateAwaitingNotification
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateIdle:
		return "idle"
	case StateAwaitingNotification:
		return "awaiting-notification"
	default:
		return "unknown"
	}
}

// Options tunes a bulb session
type Options struct {
	NotifyTimeout time.Duration // Bounded wait for a notification after a read request
	SettleDelay   time.Duration // Sleep before a color read so a preceding set is reported
	WithResponse  bool          // Write commands with response
}

// DefaultOptions returns the default session options
func DefaultOptions() Options {
	return Options{
		NotifyTimeout: config.DefaultNotifyTimeout,
		SettleDelay:   config.DefaultSettleDelay,
	}
}

// Bulb is a session with one physical bulb. It lives for one control
// operation: Connect, a few reads and writes, Close.
type Bulb struct {
	address string
	conn    Conn
	opts    Options
	logger  *slog.Logger
	bus     *events.Bus

	state atomic.Int32

	mu   sync.RWMutex
	last State
}

// Connect opens a session with the bulb at address and enables its notifications
func Connect(ctx context.Context, t Transport, address string, opts Options, logger *slog.Logger) (*Bulb, error) {
	if logger == nil {
		logger = slog.Default()
	}
	address, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = config.DefaultNotifyTimeout
	}

	logger = logger.With("address", address, "session", uuid.NewString())
	logger.Debug("Connecting to bulb")

	conn, err := t.Dial(ctx, address)
	if err != nil {
		return nil, errors.LogErrorAndReturn(
			logger,
			errors.DeviceUnavailablef("failed to connect to bulb %s: %w", address, err),
			"failed to connect to bulb",
		)
	}

	b := &Bulb{
		address: address,
		conn:    conn,
		opts:    opts,
		logger:  logger,
		bus:     events.NewBus(),
	}

	if err := conn.Subscribe(b.handleNotification); err != nil {
		_ = conn.Close()
		return nil, errors.LogErrorAndReturn(
			logger,
			errors.DeviceUnavailablef("failed to enable notifications on bulb %s: %w", address, err),
			"failed to enable notifications",
		)
	}

	b.state.Store(int32(StateIdle))
	logger.Debug("Connected to bulb")
	return b, nil
}

// Address returns the hardware address of the bulb
func (b *Bulb) Address() string {
	return b.address
}

// SessionState returns the current connection state
func (b *Bulb) SessionState() SessionState {
	return SessionState(b.state.Load())
}

// State returns a copy of the last-known bulb state
func (b *Bulb) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

// SetColor clamps and sends the four channel values
func (b *Bulb) SetColor(ctx context.Context, c Color) error {
	c = c.Clamped()
	if err := b.send(ctx, EncodeColor(c)); err != nil {
		return err
	}

	b.mu.Lock()
	b.last.Color = c
	b.last.ColorUpdated = time.Now()
	b.mu.Unlock()
	return nil
}

// SetBrightness clamps and sends the brightness
func (b *Bulb) SetBrightness(ctx context.Context, v int) error {
	v = Clamp(v)
	if err := b.send(ctx, EncodeBrightness(v)); err != nil {
		return err
	}

	b.mu.Lock()
	b.last.Brightness = v
	b.last.BrightnessUpdated = time.Now()
	b.mu.Unlock()
	return nil
}

// SetName renames the bulb
func (b *Bulb) SetName(ctx context.Context, name string) error {
	if name == "" {
		return errors.InvalidInputf("bulb name must not be empty")
	}
	if err := b.send(ctx, EncodeName(name)); err != nil {
		return err
	}

	b.mu.Lock()
	b.last.Name = name
	b.last.NameUpdated = time.Now()
	b.mu.Unlock()
	return nil
}

// SetMood resolves a preset and sends its color and brightness
func (b *Bulb) SetMood(ctx context.Context, name string) (Mood, error) {
	mood, err := ResolveMood(name)
	if err != nil {
		return Mood{}, err
	}
	if err := b.SetColor(ctx, mood.Values.Color()); err != nil {
		return mood, err
	}
	if err := b.SetBrightness(ctx, mood.Values.Light); err != nil {
		return mood, err
	}
	return mood, nil
}

// GetColor requests the current color. The returned bool is false when the
// bulb did not answer in time, in which case the color is the cached one.
func (b *Bulb) GetColor(ctx context.Context) (Color, bool, error) {
	if b.opts.SettleDelay > 0 {
		select {
		case <-time.After(b.opts.SettleDelay):
		case <-ctx.Done():
			return b.State().Color, false, ctx.Err()
		}
	}
	fresh, err := b.request(ctx, OpColor, events.ColorReported)
	return b.State().Color, fresh, err
}

// GetBrightness requests the current brightness; see GetColor for the bool
func (b *Bulb) GetBrightness(ctx context.Context) (int, bool, error) {
	fresh, err := b.request(ctx, OpBrightness, events.BrightnessReported)
	return b.State().Brightness, fresh, err
}

// GetName requests the bulb's name; see GetColor for the bool
func (b *Bulb) GetName(ctx context.Context) (string, bool, error) {
	fresh, err := b.request(ctx, OpName, events.NameReported)
	return b.State().Name, fresh, err
}

// Close ends the session. Closing twice is a no-op.
func (b *Bulb) Close() error {
	if SessionState(b.state.Swap(int32(StateDisconnected))) == StateDisconnected {
		return nil
	}
	b.logger.Debug("Disconnecting from bulb")
	if err := b.conn.Close(); err != nil {
		return errors.WrapErrorf(err, "failed to disconnect from bulb %s", b.address)
	}
	return nil
}

// send writes a payload to the command characteristic
func (b *Bulb) send(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.SessionState() == StateDisconnected {
		return errors.NotConnectedf("bulb %s", b.address)
	}

	b.logger.Debug("Writing payload", "handle", HandleCommand, "payload", p.String())
	if err := b.conn.Write(HandleCommand, p, b.opts.WithResponse); err != nil {
		return errors.LogErrorAndReturn(
			b.logger,
			errors.DeviceUnavailablef("failed to write to bulb %s: %w", b.address, err),
			"failed to write payload",
			"payload", p.String(),
		)
	}
	return nil
}

// request writes a bare opcode and waits for the matching notification.
// It returns false without error when the wait times out.
func (b *Bulb) request(ctx context.Context, op Opcode, reply events.EventType) (bool, error) {
	// Subscribe before writing so a fast reply is not missed
	ch, cancel := b.bus.Next(reply)
	defer cancel()

	if !b.state.CompareAndSwap(int32(StateIdle), int32(StateAwaitingNotification)) {
		if b.SessionState() == StateDisconnected {
			return false, errors.NotConnectedf("bulb %s", b.address)
		}
		return false, errors.Internalf("request %s while another request is pending", op)
	}
	defer b.state.CompareAndSwap(int32(StateAwaitingNotification), int32(StateIdle))

	if err := b.send(ctx, EncodeRequest(op)); err != nil {
		return false, err
	}

	timer := time.NewTimer(b.opts.NotifyTimeout)
	defer timer.Stop()

	select {
	case <-ch:
		return true, nil
	case <-timer.C:
		b.logger.Debug("No notification before timeout, keeping cached state", "request", op, "timeout", b.opts.NotifyTimeout)
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// handleNotification decodes a frame, updates the cache and wakes waiters
func (b *Bulb) handleNotification(handle Handle, data []byte) {
	n, err := Decode(data)
	if err != nil {
		if IsUnknownOpcode(err) {
			b.logger.Debug("Ignoring notification", "handle", handle, "data", Payload(data).String())
		} else {
			b.logger.Warn("Dropping malformed notification", "handle", handle, "data", Payload(data).String(), "error", err)
		}
		return
	}

	now := time.Now()
	var evt events.EventType

	b.mu.Lock()
	switch n.Opcode {
	case OpColor:
		b.last.Color = n.Color
		b.last.ColorUpdated = now
		evt = events.ColorReported
	case OpBrightness:
		b.last.Brightness = n.Brightness
		b.last.BrightnessUpdated = now
		evt = events.BrightnessReported
	case OpName:
		b.last.Name = n.Name
		b.last.NameUpdated = now
		evt = events.NameReported
	}
	b.mu.Unlock()

	b.logger.Debug("Notification received", "opcode", n.Opcode, "data", Payload(data).String())
	b.bus.Publish(events.NewEvent(evt, b.address, n))
}
