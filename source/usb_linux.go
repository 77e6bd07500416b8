//go:build linux

package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/gousb"
)

// Bulk transfers are staged through a buffer of this many packets so a
// device never sends more than the transfer can hold.
const usbPacketsPerTransfer = 16

// usbSource reads the first bulk IN endpoint of a device's default
// interface.
type usbSource struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	done func()
	in   *gousb.InEndpoint

	buf    []byte
	rd, wr int
}

func openUSB(vid, pid uint16) (io.ReadCloser, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("open usb %04x:%04x: %w", vid, pid, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("usb device %04x:%04x not found", vid, pid)
	}

	_ = dev.SetAutoDetach(true)

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claim usb %04x:%04x: %w", vid, pid, err)
	}

	s := &usbSource{ctx: ctx, dev: dev, intf: intf, done: done}

	var addr gousb.EndpointAddress
	found := false
	for a, ep := range intf.Setting.Endpoints {
		if ep.Direction != gousb.EndpointDirectionIn || ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		if !found || a < addr {
			addr = a
			found = true
		}
	}
	if !found {
		s.Close()
		return nil, fmt.Errorf("usb %04x:%04x: bulk IN endpoint not found", vid, pid)
	}

	desc := intf.Setting.Endpoints[addr]
	s.in, err = intf.InEndpoint(desc.Number)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("usb %04x:%04x: %w", vid, pid, err)
	}

	maxPacket := desc.MaxPacketSize
	if maxPacket <= 0 {
		maxPacket = 512
	}
	s.buf = make([]byte, maxPacket*usbPacketsPerTransfer)
	return s, nil
}

func (s *usbSource) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for s.rd == s.wr {
		n, err := s.in.Read(s.buf)
		s.rd, s.wr = 0, n
		if err != nil && n == 0 {
			return 0, err
		}
	}
	n := copy(p, s.buf[s.rd:s.wr])
	s.rd += n
	return n, nil
}

// Close releases USB resources.
func (s *usbSource) Close() error {
	if s.done != nil {
		s.done()
		s.done = nil
	}
	var errs []error
	if s.dev != nil {
		errs = append(errs, s.dev.Close())
		s.dev = nil
	}
	if s.ctx != nil {
		errs = append(errs, s.ctx.Close())
		s.ctx = nil
	}
	return errors.Join(errs...)
}
