package source

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// openSerial opens a serial port 8N1, raises DTR and drops any bytes the
// device buffered before the run started.
func openSerial(portName string, baud int) (io.ReadCloser, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}

	if err := port.SetDTR(true); err != nil {
		port.Close()
		return nil, fmt.Errorf("set DTR on %s: %w", portName, err)
	}
	// Reads block until data arrives.
	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset input buffer on %s: %w", portName, err)
	}
	return port, nil
}
