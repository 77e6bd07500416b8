package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/Thiagojm/rawentropy/rawnoise"
	"github.com/Thiagojm/rawentropy/source"
)

func TestExitStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{
			name: "missing source",
			err:  fmt.Errorf("%w: %w", source.ErrUnavailable, &fs.PathError{Op: "open", Path: "/x", Err: unix.ENOENT}),
			want: int(unix.ENOENT),
		},
		{
			name: "permission denied",
			err:  fmt.Errorf("%w: %w", source.ErrUnavailable, &fs.PathError{Op: "open", Path: "/x", Err: unix.EACCES}),
			want: int(unix.EACCES),
		},
		{
			name: "read errno",
			err:  fmt.Errorf("%w: %w", rawnoise.ErrRead, &fs.PathError{Op: "read", Path: "/x", Err: unix.EIO}),
			want: int(unix.EIO),
		},
		{
			name: "premature end",
			err:  fmt.Errorf("%w: got 1 of 3 deltas", rawnoise.ErrPrematureEnd),
			want: int(unix.ENODATA),
		},
		{
			name: "no progress",
			err:  fmt.Errorf("%w: %w", rawnoise.ErrPrematureEnd, io.ErrNoProgress),
			want: int(unix.ENODATA),
		},
		{
			name: "invalid configuration",
			err:  fmt.Errorf("%w: bad width", errInvalidConfig),
			want: int(unix.EINVAL),
		},
		{
			name: "unavailable without errno",
			err:  fmt.Errorf("%w: %w", source.ErrUnavailable, errors.New("usb device not found")),
			want: int(unix.ENODEV),
		},
		{
			name: "read without errno",
			err:  fmt.Errorf("%w: %w", rawnoise.ErrRead, errors.New("boom")),
			want: int(unix.EIO),
		},
		{name: "other", err: errors.New("boom"), want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitStatus(tc.err); got != tc.want {
				t.Errorf("exitStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
