// Package input captures raw keyboard and mouse events and feeds them into
// the timeline.
//
// The capture side is a small interface with platform implementations:
//   - Linux: reads /dev/input/event* devices directly (needs the 'input'
//     group or root)
//   - other platforms: not available yet
//   - Simulated: an in-process source for tests and the dump command
//
// Events are delivered one at a time, in arrival order, to a single sink.
// Timestamps are never taken from the device; the ingest stamps each event
// with the monotonic clock at the moment it is processed.
package input

import (
	"context"
	"errors"
	"time"
)

// Kind discriminates raw event types.
type Kind int

const (
	// KindKey is a keyboard press or release transition.
	KindKey Kind = iota
	// KindMotion is a relative mouse movement.
	KindMotion
	// KindButton is a mouse button press or release transition.
	KindButton
)

// Button identifies a mouse button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Event is one normalized raw input event.
type Event struct {
	Kind    Kind
	Code    uint16 // key code, for KindKey
	Pressed bool   // for KindKey and KindButton
	Button  Button // for KindButton
	DX, DY  int32  // for KindMotion
}

// Sink receives captured events in arrival order.
type Sink func(Event)

// Capture delivers system-wide raw input events to a sink.
type Capture interface {
	// Start begins delivering events to sink until the context is
	// cancelled or Stop is called.
	Start(ctx context.Context, sink Sink) error

	// Stop stops delivery and waits for the read loop to exit.
	Stop() error

	// Available reports whether capture can work on this platform with
	// current permissions, with a human-readable reason.
	Available() (bool, string)
}

// DeviceInfo describes one input device capture would read.
type DeviceInfo struct {
	Path     string
	Name     string
	Readable bool
}

// ErrNotAvailable is returned when raw input capture isn't available.
var ErrNotAvailable = errors.New("raw input capture not available on this platform")

// ErrPermissionDenied is returned when devices exist but none can be opened.
var ErrPermissionDenied = errors.New("input devices found but not readable (need 'input' group or root)")

// ErrAlreadyRunning is returned when Start is called while already running.
var ErrAlreadyRunning = errors.New("capture already running")

// New creates a Capture for the current platform.
func New() Capture {
	return newPlatformCapture()
}

var processStart = time.Now()

// NowMS returns monotonic milliseconds since process start. All timeline
// timestamps use this clock; raw event timestamps live in a different epoch
// and are deliberately ignored.
func NowMS() int64 {
	return time.Since(processStart).Milliseconds()
}
