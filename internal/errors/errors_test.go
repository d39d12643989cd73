package errors

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrDeviceUnavailable", ErrDeviceUnavailable, "device unavailable"},
		{"ErrNotConnected", ErrNotConnected, "not connected"},
		{"ErrInternal", ErrInternal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.expected)
			}
		})
	}
}

func TestLogErrorAndReturn(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("returns nil for nil error", func(t *testing.T) {
		if result := LogErrorAndReturn(logger, nil, "test message"); result != nil {
			t.Errorf("LogErrorAndReturn(nil) = %v, want nil", result)
		}
	})

	t.Run("returns the same error", func(t *testing.T) {
		err := errors.New("test error")
		if result := LogErrorAndReturn(logger, err, "test message", "address", "AA:BB"); result != err {
			t.Errorf("LogErrorAndReturn returned different error")
		}
	})
}

func TestWrapErrorf(t *testing.T) {
	t.Run("returns nil for nil error", func(t *testing.T) {
		if result := WrapErrorf(nil, "context %s", "value"); result != nil {
			t.Errorf("WrapErrorf(nil) = %v, want nil", result)
		}
	})

	t.Run("wraps error with context", func(t *testing.T) {
		original := errors.New("original error")
		wrapped := WrapErrorf(original, "write to %s", "AA:BB")

		if !strings.Contains(wrapped.Error(), "write to AA:BB") {
			t.Errorf("wrapped error should contain context: %v", wrapped)
		}
		if !errors.Is(wrapped, original) {
			t.Error("wrapped error should unwrap to original")
		}
	})
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		check func(error) bool
		match error
		other error
	}{
		{"IsNotFound", IsNotFound, NotFoundf("no bulb named %q", "Avea_1"), ErrInvalidInput},
		{"IsInvalidInput", IsInvalidInput, InvalidInputf("unknown mood %q", "party"), ErrNotFound},
		{"IsDeviceUnavailable", IsDeviceUnavailable, DeviceUnavailablef("connect %s", "AA:BB"), ErrNotConnected},
		{"IsNotConnected", IsNotConnected, NotConnectedf("bulb %s", "AA:BB"), ErrDeviceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.match) {
				t.Errorf("%s(%v) = false, want true", tt.name, tt.match)
			}
			if tt.check(tt.other) {
				t.Errorf("%s(%v) = true, want false", tt.name, tt.other)
			}
		})
	}
}

func TestDeviceUnavailablef_KeepsCause(t *testing.T) {
	cause := errors.New("le-connection-abort-by-local")
	err := DeviceUnavailablef("failed to connect to %s: %w", "AA:BB", cause)

	if !strings.Contains(err.Error(), "failed to connect to AA:BB") {
		t.Errorf("DeviceUnavailablef error message incorrect: %v", err)
	}
	if !errors.Is(err, ErrDeviceUnavailable) {
		t.Error("DeviceUnavailablef should wrap ErrDeviceUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("DeviceUnavailablef should keep the wrapped cause")
	}
}

func TestInternalf(t *testing.T) {
	err := Internalf("unexpected state: %s", "awaiting")

	if !strings.Contains(err.Error(), "unexpected state: awaiting") {
		t.Errorf("Internalf error message incorrect: %v", err)
	}
	if !errors.Is(err, ErrInternal) {
		t.Error("Internalf should wrap ErrInternal")
	}
}
