//go:build !linux

package main

import (
	"errors"
	"syscall"
)

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return 1
}
