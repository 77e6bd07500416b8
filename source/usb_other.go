//go:build !linux

package source

import (
	"errors"
	"io"
)

func openUSB(vid, pid uint16) (io.ReadCloser, error) {
	return nil, errors.New("usb sources are only supported on linux")
}
