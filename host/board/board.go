// Package board drives an LED hold board over an ordered byte channel
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"holdboard/host/logging"
	"holdboard/protocol"
)

var ErrClosed = errors.New("board closed")

// Channel is an open, ordered link to the board. Write returns once the
// unit has been handed to the link; units are never reordered.
type Channel interface {
	Write(ctx context.Context, unit []byte) error
	Close() error
}

// Connector opens a Channel to the board
type Connector interface {
	Connect(ctx context.Context) (Channel, error)
}

// Board represents a connection to a hold board. The open channel is
// cached and reused until a write fails or the board is closed.
type Board struct {
	connector Connector

	mu      sync.Mutex
	channel Channel
	closed  bool
}

// New creates a Board that connects lazily through connector
func New(connector Connector) *Board {
	return &Board{connector: connector}
}

// Connect opens the channel if it is not already open
func (b *Board) Connect(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.connectLocked(ctx)
	return err
}

func (b *Board) connectLocked(ctx context.Context) (Channel, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if b.channel != nil {
		return b.channel, nil
	}

	ch, err := b.connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to board: %w", err)
	}
	logging.Logger(ctx).Info("connected to board")

	b.channel = ch
	return ch, nil
}

// Illuminate encodes placements and writes the resulting units in order
func (b *Board) Illuminate(ctx context.Context, placements []protocol.Placement) error {
	units, err := protocol.Units(placements)
	if err != nil {
		return fmt.Errorf("failed to encode placements: %w", err)
	}

	logging.Logger(ctx).Debug("encoded placements",
		slog.Int("placements", len(placements)),
		slog.Int("units", len(units)))

	return b.Send(ctx, units)
}

// Send writes units to the board one after another. Each write completes
// before the next starts, and concurrent calls never interleave. A failed
// write drops the cached channel so the next call reconnects.
func (b *Board) Send(ctx context.Context, units [][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.connectLocked(ctx)
	if err != nil {
		return err
	}

	log := logging.Logger(ctx)
	for i, unit := range units {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("send interrupted after %d/%d units: %w", i, len(units), err)
		}
		if err := ch.Write(ctx, unit); err != nil {
			log.Error("unit write failed",
				slog.Int("unit", i),
				slog.Int("units", len(units)),
				slog.Any("err", err))
			b.dropLocked()
			return fmt.Errorf("failed to write unit %d/%d: %w", i+1, len(units), err)
		}
	}

	log.Info("request sent", slog.Int("units", len(units)))
	return nil
}

// IsConnected returns whether a channel is currently open
func (b *Board) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.channel != nil
}

// Close closes the channel. The board cannot be reused afterwards.
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.channel == nil {
		return nil
	}
	err := b.channel.Close()
	b.channel = nil
	return err
}

func (b *Board) dropLocked() {
	if b.channel != nil {
		_ = b.channel.Close()
		b.channel = nil
	}
}
