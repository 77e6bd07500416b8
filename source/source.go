package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is the jitterentropy raw sample interface in debugfs.
const DefaultPath = "/sys/kernel/debug/jitterentropy_testing/jent_raw_hires"

// DefaultBaudRate is used for serial targets without an explicit rate.
const DefaultBaudRate = 115200

const (
	serialPrefix = "serial:"
	usbPrefix    = "usb:"
)

// ErrUnavailable is returned when a source cannot be opened.
var ErrUnavailable = errors.New("source unavailable")

// Kind identifies the transport behind a target.
type Kind int

const (
	KindFile Kind = iota
	KindSerial
	KindUSB
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindSerial:
		return "serial"
	case KindUSB:
		return "usb"
	default:
		return "unknown"
	}
}

// Target is a parsed source name.
type Target struct {
	Kind Kind
	// Path is the file path or serial port name.
	Path string
	// BaudRate applies to serial targets.
	BaudRate int
	// VID and PID select the USB device.
	VID uint16
	PID uint16
}

// String renders the target back in the form accepted by ParseTarget.
func (t Target) String() string {
	switch t.Kind {
	case KindSerial:
		return fmt.Sprintf("%s%s@%d", serialPrefix, t.Path, t.BaudRate)
	case KindUSB:
		return fmt.Sprintf("%s%04x:%04x", usbPrefix, t.VID, t.PID)
	default:
		return t.Path
	}
}

// ParseTarget parses a target string. An empty string selects DefaultPath.
func ParseTarget(s string) (Target, error) {
	switch {
	case s == "":
		return Target{Kind: KindFile, Path: DefaultPath}, nil
	case strings.HasPrefix(s, serialPrefix):
		return parseSerial(strings.TrimPrefix(s, serialPrefix))
	case strings.HasPrefix(s, usbPrefix):
		return parseUSB(strings.TrimPrefix(s, usbPrefix))
	default:
		return Target{Kind: KindFile, Path: s}, nil
	}
}

func parseSerial(s string) (Target, error) {
	t := Target{Kind: KindSerial, BaudRate: DefaultBaudRate}
	port, baud, found := strings.Cut(s, "@")
	if port == "" {
		return Target{}, fmt.Errorf("serial target %q: missing port", s)
	}
	t.Path = port
	if found {
		rate, err := strconv.Atoi(baud)
		if err != nil || rate <= 0 {
			return Target{}, fmt.Errorf("serial target %q: invalid baud rate %q", s, baud)
		}
		t.BaudRate = rate
	}
	return t, nil
}

func parseUSB(s string) (Target, error) {
	vid, pid, found := strings.Cut(s, ":")
	if !found {
		return Target{}, fmt.Errorf("usb target %q: want <vid>:<pid>", s)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(vid, "0x"), 16, 16)
	if err != nil {
		return Target{}, fmt.Errorf("usb target %q: invalid vendor id: %w", s, err)
	}
	p, err := strconv.ParseUint(strings.TrimPrefix(pid, "0x"), 16, 16)
	if err != nil {
		return Target{}, fmt.Errorf("usb target %q: invalid product id: %w", s, err)
	}
	return Target{Kind: KindUSB, VID: uint16(v), PID: uint16(p)}, nil
}

// Open parses target and opens it. See OpenTarget.
func Open(target string) (io.ReadCloser, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}
	return OpenTarget(t)
}

// OpenTarget opens t for reading. Open failures wrap ErrUnavailable and the
// underlying cause.
func OpenTarget(t Target) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch t.Kind {
	case KindFile:
		rc, err = os.Open(t.Path)
	case KindSerial:
		rc, err = openSerial(t.Path, t.BaudRate)
	case KindUSB:
		rc, err = openUSB(t.VID, t.PID)
	default:
		err = fmt.Errorf("unsupported source kind %d", int(t.Kind))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return rc, nil
}
