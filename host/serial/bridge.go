package serial

import (
	"context"
	"fmt"
	"sync"
	"time"

	"holdboard/host/board"
)

// Connector reaches the board through a BLE-UART bridge on a serial port.
// The bridge owns the BLE connection and forwards bytes as they arrive.
type Connector struct {
	Config *Config

	// OpenPort opens the port; nil means Open
	OpenPort func(cfg *Config) (Port, error)
}

// NewConnector creates a serial Connector for cfg
func NewConnector(cfg *Config) *Connector {
	return &Connector{Config: cfg}
}

func (c *Connector) Connect(ctx context.Context) (board.Channel, error) {
	if c.Config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	open := c.OpenPort
	if open == nil {
		open = Open
	}
	port, err := open(c.Config)
	if err != nil {
		return nil, err
	}
	return &bridgeChannel{port: port, delay: c.Config.WriteDelay}, nil
}

type bridgeChannel struct {
	mu    sync.Mutex
	port  Port
	delay time.Duration
}

// Write sends one unit and waits out the configured delay
func (b *bridgeChannel) Write(ctx context.Context, unit []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.port.Write(unit)
	if err != nil {
		return err
	}
	if n != len(unit) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(unit))
	}

	if b.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(b.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *bridgeChannel) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.port.Close()
}
