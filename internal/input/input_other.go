//go:build !linux

package input

import "context"

// stubCapture is used on platforms without a capture implementation yet.
type stubCapture struct{}

func newPlatformCapture() Capture {
	return stubCapture{}
}

func (stubCapture) Start(context.Context, Sink) error { return ErrNotAvailable }
func (stubCapture) Stop() error                       { return nil }
func (stubCapture) Available() (bool, string) {
	return false, "raw input capture not implemented on this platform"
}

// ListDevices has nothing to enumerate off Linux.
func ListDevices() ([]DeviceInfo, error) {
	return nil, ErrNotAvailable
}
