//go:build linux

package input

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// LinuxCapture reads keyboard and mouse events from /dev/input on Linux.
type LinuxCapture struct {
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func newPlatformCapture() Capture {
	return &LinuxCapture{}
}

// evdev constants (linux/input-event-codes.h).
const (
	evKey = 1
	evRel = 2

	relX = 0
	relY = 1

	keyValueUp     = 0
	keyValueDown   = 1
	keyValueRepeat = 2
)

// evdevEventSize matches struct input_event on 64-bit Linux:
// two 8-byte time fields, then type, code, value.
const evdevEventSize = 24

// eviocgName is EVIOCGNAME(256): _IOC(read, 'E', 0x06, 256).
const eviocgName = 2<<30 | 256<<16 | 'E'<<8 | 0x06

// Available checks whether any input device can be opened.
func (l *LinuxCapture) Available() (bool, string) {
	devices, err := findInputDevices()
	if err != nil {
		return false, fmt.Sprintf("cannot enumerate input devices: %v", err)
	}
	if len(devices) == 0 {
		return false, "no keyboard or mouse devices found"
	}
	for _, dev := range devices {
		fd, err := unix.Open(dev, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err == nil {
			name := deviceName(fd)
			unix.Close(fd)
			return true, fmt.Sprintf("found input device: %s (%s)", dev, name)
		}
	}
	return false, "cannot read input devices (need to be in 'input' group or run as root)"
}

// findInputDevices scans /proc/bus/input/devices for keyboards and mice.
func findInputDevices() ([]string, error) {
	f, err := os.Open("/proc/bus/input/devices")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var devices []string
	scanner := bufio.NewScanner(f)
	var handler string
	wanted := false

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "H: Handlers=") {
			for _, part := range strings.Fields(line) {
				if strings.HasPrefix(part, "event") {
					handler = "/dev/input/" + part
				}
				if strings.HasPrefix(part, "mouse") {
					wanted = true
				}
			}
		}

		// A long key-capability bitmap means a keyboard.
		if strings.HasPrefix(line, "B: KEY=") && len(line) > 20 {
			wanted = true
		}

		if line == "" {
			if wanted && handler != "" {
				devices = append(devices, handler)
			}
			handler = ""
			wanted = false
		}
	}
	return devices, scanner.Err()
}

// ListDevices enumerates the devices capture would read from.
func ListDevices() ([]DeviceInfo, error) {
	paths, err := findInputDevices()
	if err != nil {
		return nil, err
	}
	infos := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		info := DeviceInfo{Path: path}
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			info.Name = "(not readable)"
		} else {
			info.Name = deviceName(fd)
			info.Readable = true
			unix.Close(fd)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// deviceName queries the kernel for the device's name string.
func deviceName(fd int) string {
	buf := make([]byte, 256)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgName, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "unknown"
	}
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

// Start opens every readable device and begins the poll loop.
func (l *LinuxCapture) Start(ctx context.Context, sink Sink) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrAlreadyRunning
	}

	devices, err := findInputDevices()
	if err != nil || len(devices) == 0 {
		return ErrNotAvailable
	}

	var fds []int
	for _, dev := range devices {
		fd, err := unix.Open(dev, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			continue
		}
		fds = append(fds, fd)
	}
	if len(fds) == 0 {
		return ErrPermissionDenied
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true

	go l.readLoop(ctx, fds, sink)
	return nil
}

// readLoop polls all device fds and decodes events in arrival order.
func (l *LinuxCapture) readLoop(ctx context.Context, fds []int, sink Sink) {
	defer func() {
		for _, fd := range fds {
			unix.Close(fd)
		}
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
		close(l.done)
	}()

	pollFds := make([]unix.PollFd, len(fds))
	for i, fd := range fds {
		pollFds[i] = unix.PollFd{Fd: int32(fd), Events: unix.POLLIN}
	}

	buf := make([]byte, evdevEventSize*64)
	for {
		if ctx.Err() != nil {
			return
		}

		// Short timeout so cancellation is seen without a wake-up pipe.
		n, err := unix.Poll(pollFds, 100)
		if err != nil || n == 0 {
			continue
		}

		for i := range pollFds {
			if pollFds[i].Revents&unix.POLLIN == 0 {
				continue
			}
			nr, err := unix.Read(int(pollFds[i].Fd), buf)
			if err != nil || nr < evdevEventSize {
				continue
			}
			for off := 0; off+evdevEventSize <= nr; off += evdevEventSize {
				decodeEvent(buf[off:off+evdevEventSize], sink)
			}
		}
	}
}

// decodeEvent translates one raw input_event into a normalized Event.
// Motion is accumulated per record; EV_SYN grouping is not needed because
// the timeline only consumes deltas and transitions.
func decodeEvent(rec []byte, sink Sink) {
	typ := binary.LittleEndian.Uint16(rec[16:18])
	code := binary.LittleEndian.Uint16(rec[18:20])
	value := int32(binary.LittleEndian.Uint32(rec[20:24]))

	switch typ {
	case evKey:
		switch code {
		case CodeBTNLeft:
			sink(Event{Kind: KindButton, Button: ButtonPrimary, Pressed: value != keyValueUp})
		case CodeBTNRight:
			sink(Event{Kind: KindButton, Button: ButtonSecondary, Pressed: value != keyValueUp})
		case CodeBTNMiddle:
			sink(Event{Kind: KindButton, Button: ButtonMiddle, Pressed: value != keyValueUp})
		default:
			if code < 0x100 {
				// Autorepeat arrives as value 2; deliver it as a
				// press, the store ignores duplicate opens.
				pressed := value == keyValueDown || value == keyValueRepeat
				sink(Event{Kind: KindKey, Code: code, Pressed: pressed})
			}
		}
	case evRel:
		switch code {
		case relX:
			sink(Event{Kind: KindMotion, DX: value})
		case relY:
			sink(Event{Kind: KindMotion, DY: value})
		}
	}
}

// Stop stops the poll loop and waits for it to exit.
func (l *LinuxCapture) Stop() error {
	l.mu.Lock()
	cancel := l.cancel
	done := l.done
	running := l.running
	l.mu.Unlock()

	if !running {
		return nil
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return nil
}
