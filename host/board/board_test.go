package board_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"holdboard/host/board"
	"holdboard/host/stub"
	"holdboard/protocol"
)

func placements(n int) []protocol.Placement {
	out := make([]protocol.Placement, n)
	for i := range out {
		out[i] = protocol.Placement{Position: uint16(i * 3), Color: protocol.Color{G: 0xFF}}
	}
	return out
}

func TestIlluminate(t *testing.T) {
	conn := stub.New()
	b := board.New(conn)
	defer b.Close()

	in := placements(protocol.TriplesPerPacket*2 + 1)
	if err := b.Illuminate(context.Background(), in); err != nil {
		t.Fatalf("Illuminate() error = %v", err)
	}

	ch := conn.Last()
	expected, _ := protocol.Units(in)
	units := ch.Units()
	if len(units) != len(expected) {
		t.Fatalf("wrote %d units, expected %d", len(units), len(expected))
	}
	for i := range units {
		if !bytes.Equal(units[i], expected[i]) {
			t.Errorf("unit %d = %v, expected %v", i, units[i], expected[i])
		}
	}

	requests := ch.Requests()
	if len(requests) != 1 || len(requests[0]) != len(in) {
		t.Fatalf("board reassembled %d requests", len(requests))
	}
	for i, tr := range requests[0] {
		if tr != in[i].Triple() {
			t.Errorf("triple %d = %+v, expected %+v", i, tr, in[i].Triple())
		}
	}
}

func TestConnectionReused(t *testing.T) {
	conn := stub.New()
	b := board.New(conn)
	ctx := context.Background()

	if err := b.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	if !b.IsConnected() {
		t.Error("IsConnected() = false after Connect")
	}
	for i := 0; i < 3; i++ {
		if err := b.Illuminate(ctx, placements(i)); err != nil {
			t.Fatal(err)
		}
	}
	if conn.Connects() != 1 {
		t.Errorf("opened %d channels, expected 1", conn.Connects())
	}
	if got := len(conn.Last().Requests()); got != 3 {
		t.Errorf("board saw %d requests, expected 3", got)
	}
}

func TestWriteFailureDropsChannel(t *testing.T) {
	conn := stub.New()
	conn.FailAfter = 2
	b := board.New(conn)
	ctx := context.Background()

	err := b.Illuminate(ctx, placements(40))
	if !errors.Is(err, stub.ErrInjected) {
		t.Fatalf("Illuminate() error = %v, want ErrInjected", err)
	}
	failed := conn.Last()
	if !failed.Closed() {
		t.Error("failed channel was not closed")
	}
	if len(failed.Units()) != 2 {
		t.Errorf("failed channel got %d units, expected 2", len(failed.Units()))
	}
	if b.IsConnected() {
		t.Error("board still connected after write failure")
	}

	// No retries inside the board; the next request reconnects
	if err := b.Illuminate(ctx, placements(40)); err != nil {
		t.Fatalf("Illuminate() after failure error = %v", err)
	}
	if conn.Connects() != 2 {
		t.Errorf("opened %d channels, expected 2", conn.Connects())
	}
}

func TestConnectError(t *testing.T) {
	conn := stub.New()
	conn.ConnectErr = errors.New("no bridge")
	b := board.New(conn)

	if err := b.Illuminate(context.Background(), nil); err == nil {
		t.Fatal("Illuminate() succeeded without a connection")
	}
	if conn.Connects() != 0 {
		t.Errorf("Connects() = %d", conn.Connects())
	}
}

func TestContextCancelled(t *testing.T) {
	conn := stub.New()
	b := board.New(conn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Illuminate(ctx, placements(5)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Illuminate() error = %v, want context.Canceled", err)
	}
	if got := len(conn.Last().Units()); got != 0 {
		t.Errorf("wrote %d units after cancel", got)
	}
}

func TestClosed(t *testing.T) {
	conn := stub.New()
	b := board.New(conn)
	ctx := context.Background()

	if err := b.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if !conn.Last().Closed() {
		t.Error("Close() did not close the channel")
	}
	if err := b.Illuminate(ctx, nil); !errors.Is(err, board.ErrClosed) {
		t.Errorf("Illuminate() after Close error = %v, want ErrClosed", err)
	}
}

func TestConcurrentRequestsDoNotInterleave(t *testing.T) {
	conn := stub.New()
	b := board.New(conn)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := b.Illuminate(ctx, placements(protocol.TriplesPerPacket+n)); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	ch := conn.Last()
	if errs := ch.Errors(); len(errs) != 0 {
		t.Fatalf("board saw packet errors: %v", errs)
	}
	if got := len(ch.Requests()); got != 8 {
		t.Errorf("board reassembled %d requests, expected 8", got)
	}
	if ch.Dropped() != 0 {
		t.Errorf("board dropped %d bytes", ch.Dropped())
	}
}
