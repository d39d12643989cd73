package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when no bulb or mood matches a request
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when the provided input is invalid
var ErrInvalidInput = errors.New("invalid input")

// ErrDeviceUnavailable is returned when a bulb can't be reached, connected or written to
var ErrDeviceUnavailable = errors.New("device unavailable")

// ErrNotConnected is returned when an operation is attempted on a closed bulb session
var ErrNotConnected = errors.New("not connected")

// ErrInternal is returned for unexpected internal errors
var ErrInternal = errors.New("internal error")

// LogErrorAndReturn logs an error with structured context and returns it
func LogErrorAndReturn(logger *slog.Logger, err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	logger.Error(message, append([]any{"error", err}, args...)...)
	return err
}

// WrapErrorf wraps an error with additional context using fmt.Errorf
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// IsNotFound returns true if the error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput returns true if the error is or wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDeviceUnavailable returns true if the error is or wraps ErrDeviceUnavailable
func IsDeviceUnavailable(err error) bool {
	return errors.Is(err, ErrDeviceUnavailable)
}

// IsNotConnected returns true if the error is or wraps ErrNotConnected
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// NotFoundf returns a formatted ErrNotFound error
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidInputf returns a formatted ErrInvalidInput error
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

// DeviceUnavailablef returns a formatted ErrDeviceUnavailable error.
// A %w verb in format keeps the underlying transport error inspectable.
func DeviceUnavailablef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDeviceUnavailable)...)
}

// NotConnectedf returns a formatted ErrNotConnected error
func NotConnectedf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotConnected)...)
}

// Internalf returns a formatted ErrInternal error
func Internalf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInternal)...)
}
