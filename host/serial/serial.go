package serial

import (
	"io"
	"time"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory pipes (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial bridge configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string `yaml:"device" json:"device"`

	// Baud rate of the BLE-UART bridge
	Baud int `yaml:"baud" json:"baud"`

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int `yaml:"read_timeout" json:"read_timeout"`

	// WriteDelay is the pause after each unit, giving the bridge time to
	// forward it as one BLE write
	WriteDelay time.Duration `yaml:"write_delay" json:"write_delay"`
}

// DefaultConfig returns a default configuration for a BLE-UART bridge
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        9600,
		ReadTimeout: 100,
		WriteDelay:  20 * time.Millisecond,
	}
}
