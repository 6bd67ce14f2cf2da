// Package stub provides an in-memory board link for host-side testing and
// simulation. Every unit written is logged and fed through the same
// reassembly a real board performs.
package stub

import (
	"context"
	"errors"
	"sync"

	"holdboard/host/board"
	"holdboard/protocol"
)

var (
	ErrInjected      = errors.New("injected write failure")
	ErrChannelClosed = errors.New("channel closed")
)

// Connector hands out recording channels
type Connector struct {
	mu sync.Mutex

	// ConnectErr, when set, is returned by the next Connect
	ConnectErr error

	// FailAfter makes the next channel fail its write with this index.
	// Negative disables it. It is cleared once a channel takes it.
	FailAfter int

	channels []*Channel
}

// New creates a Connector with failure injection disabled
func New() *Connector {
	return &Connector{FailAfter: -1}
}

func (c *Connector) Connect(ctx context.Context) (board.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ConnectErr; err != nil {
		c.ConnectErr = nil
		return nil, err
	}

	ch := &Channel{
		failAfter:   c.FailAfter,
		reassembler: protocol.NewReassembler(),
	}
	c.FailAfter = -1
	c.channels = append(c.channels, ch)
	return ch, nil
}

// Connects returns how many channels have been opened
func (c *Connector) Connects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.channels)
}

// Last returns the most recently opened channel, or nil
func (c *Connector) Last() *Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.channels) == 0 {
		return nil
	}
	return c.channels[len(c.channels)-1]
}

// Channel records units and reassembles them into requests
type Channel struct {
	mu          sync.Mutex
	units       [][]byte
	failAfter   int
	closed      bool
	reassembler *protocol.Reassembler
	assembler   protocol.Assembler
	requests    [][]protocol.Triple
	packets     int
	errs        []error
}

func (c *Channel) Write(ctx context.Context, unit []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}
	if c.failAfter >= 0 && len(c.units) >= c.failAfter {
		return ErrInjected
	}

	cp := make([]byte, len(unit))
	copy(cp, unit)
	c.units = append(c.units, cp)

	for _, body := range c.reassembler.Feed(cp) {
		c.packets++
		request, complete, err := c.assembler.Add(body)
		if err != nil {
			c.errs = append(c.errs, err)
			continue
		}
		if complete {
			c.requests = append(c.requests, request)
		}
	}
	return nil
}

func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close was called
func (c *Channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Units returns a copy of the unit log in write order
func (c *Channel) Units() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([][]byte, len(c.units))
	for i, u := range c.units {
		out[i] = append([]byte(nil), u...)
	}
	return out
}

// Requests returns the requests the board side has reassembled so far
func (c *Channel) Requests() [][]protocol.Triple {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]protocol.Triple(nil), c.requests...)
}

// Errors returns packet-level errors seen during reassembly
func (c *Channel) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Dropped returns the number of stream bytes discarded while resyncing
func (c *Channel) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reassembler.Dropped()
}

// Decoded summarizes what the board side has reconstructed so far
func (c *Channel) Decoded() *protocol.Decoded {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &protocol.Decoded{
		Requests:   append([][]protocol.Triple(nil), c.requests...),
		Packets:    c.packets,
		Dropped:    c.reassembler.Dropped(),
		Broken:     c.assembler.Broken(),
		Incomplete: c.assembler.InSequence() || c.reassembler.Pending() > 0,
	}
}
