package main

import (
	"fmt"

	"github.com/Thiagojm/rawentropy/source"
)

// PortsCmd lists serial ports.
type PortsCmd struct{}

// Run prints every serial port with its USB identifiers.
func (c *PortsCmd) Run(app *App) error {
	ports, err := source.ListPorts()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Fprintln(app.Stdout, "No serial ports found")
		return nil
	}

	fmt.Fprintln(app.Stdout, "Found serial ports:")
	for i, p := range ports {
		if p.IsUSB {
			fmt.Fprintf(app.Stdout, "%d. %s (USB %s:%s %s) use -f %s\n",
				i+1, p.Name, p.VID, p.PID, p.Product, p.Target())
			continue
		}
		fmt.Fprintf(app.Stdout, "%d. %s use -f %s\n", i+1, p.Name, p.Target())
	}
	return nil
}
