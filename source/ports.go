package source

import (
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes a serial port that can back a serial target.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// Target returns the serial target for the port at the default baud rate.
func (p PortInfo) Target() Target {
	return Target{Kind: KindSerial, Path: p.Name, BaudRate: DefaultBaudRate}
}

// ListPorts enumerates the serial ports present on the system, sorted by
// name.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating ports: %w", err)
	}
	return portInfos(ports), nil
}

func portInfos(ports []*enumerator.PortDetails) []PortInfo {
	var out []PortInfo
	for _, p := range ports {
		if p == nil {
			continue
		}
		out = append(out, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
