// Package wsbridge reaches the board through a WebSocket BLE gateway.
// Each transport unit travels as one binary message; the gateway writes
// it to the board characteristic before reading the next.
package wsbridge

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"holdboard/host/board"
)

const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 10 * time.Second
)

// Connector dials a gateway endpoint such as ws://gateway.local/board
type Connector struct {
	URL              string
	Header           http.Header
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}

// NewConnector creates a Connector with default timeouts
func NewConnector(url string) *Connector {
	return &Connector{
		URL:              url,
		HandshakeTimeout: DefaultHandshakeTimeout,
		WriteTimeout:     DefaultWriteTimeout,
	}
}

func (c *Connector) Connect(ctx context.Context) (board.Channel, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("gateway URL not set")
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.URL, c.Header)
	if err != nil {
		return nil, fmt.Errorf("failed to dial gateway %s: %w", c.URL, err)
	}

	timeout := c.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &channel{conn: conn, timeout: timeout}, nil
}

type channel struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	timeout time.Duration
}

func (c *channel) Write(ctx context.Context, unit []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, unit)
}

func (c *channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
