//go:build !wasm

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort is a BLE-UART bridge reached through tarm/serial
type NativePort struct {
	port   *serial.Port
	device string
}

// Open opens the bridge device as 8N1 and discards any bytes a previous
// session left queued, so the board never sees a torn frame prefix
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Device == "" {
		return nil, fmt.Errorf("no serial device configured")
	}
	if cfg.Baud <= 0 {
		return nil, fmt.Errorf("invalid baud rate %d for %s", cfg.Baud, cfg.Device)
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial bridge %s: %w", cfg.Device, err)
	}

	p := &NativePort{port: port, device: cfg.Device}
	if err := p.Flush(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to flush serial bridge %s: %w", cfg.Device, err)
	}
	return p, nil
}

func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *NativePort) Close() error {
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	return err
}

// Flush discards anything still queued in the port buffers
func (p *NativePort) Flush() error {
	if p.port == nil {
		return nil
	}
	return p.port.Flush()
}

func (p *NativePort) String() string {
	return p.device
}
