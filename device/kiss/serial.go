package kiss

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

const defaultBaud = 9600

// connectSerial opens a connection to a serial KISS TNC
func connectSerial(devicePath string, baud int) (io.ReadWriteCloser, error) {
	if devicePath == "" {
		return nil, fmt.Errorf("no device path (e.g., /dev/ttyUSB0 or COM3) provided for KISS serial")
	}
	if baud <= 0 {
		baud = defaultBaud
	}

	mode := &serial.Mode{
		BaudRate: baud,
	}

	port, err := serial.Open(devicePath, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", devicePath, err)
	}

	// Set a read timeout so Read() doesn't block forever
	if err := port.SetReadTimeout(1 * time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return port, nil
}
