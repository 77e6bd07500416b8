//go:build linux

package main

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/Thiagojm/rawentropy/rawnoise"
	"github.com/Thiagojm/rawentropy/source"
)

// exitStatus maps err to the process exit status: the errno of the
// underlying failure when there is one, a category errno otherwise.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var errno unix.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	switch {
	case errors.Is(err, errInvalidConfig):
		return int(unix.EINVAL)
	case errors.Is(err, rawnoise.ErrPrematureEnd):
		return int(unix.ENODATA)
	case errors.Is(err, source.ErrUnavailable):
		return int(unix.ENODEV)
	case errors.Is(err, rawnoise.ErrRead), errors.Is(err, rawnoise.ErrSink):
		return int(unix.EIO)
	default:
		return 1
	}
}
