package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func triplesOf(in []Placement) []Triple {
	out := make([]Triple, len(in))
	for i, p := range in {
		out[i] = p.Triple()
	}
	return out
}

func equalTriples(a, b []Triple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReassemblerUnits(t *testing.T) {
	in := placements(3*TriplesPerPacket + 2)
	units, err := Units(in)
	if err != nil {
		t.Fatal(err)
	}

	r := NewReassembler()
	var asm Assembler
	var requests [][]Triple
	for _, u := range units {
		for _, body := range r.Feed(u) {
			request, complete, err := asm.Add(body)
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if complete {
				requests = append(requests, request)
			}
		}
	}

	if len(requests) != 1 {
		t.Fatalf("reassembled %d requests, expected 1", len(requests))
	}
	if !equalTriples(requests[0], triplesOf(in)) {
		t.Errorf("reassembled triples differ from input")
	}
	if r.Pending() != 0 || r.Dropped() != 0 {
		t.Errorf("pending=%d dropped=%d, expected 0/0", r.Pending(), r.Dropped())
	}
}

func TestReassemblerResync(t *testing.T) {
	good, _ := Wrap([]byte{PacketOnly, 5, 0, 224})
	bad := bytes.Clone(good)
	bad[2] ^= 0xFF

	stream := append([]byte{0x7E, 0x00}, bad...)
	stream = append(stream, good...)

	r := NewReassembler()
	var bodies [][]byte
	for _, b := range stream {
		bodies = append(bodies, r.Feed([]byte{b})...)
	}

	if len(bodies) != 1 {
		t.Fatalf("recovered %d frames, expected 1", len(bodies))
	}
	if !bytes.Equal(bodies[0], []byte{PacketOnly, 5, 0, 224}) {
		t.Errorf("body = %v", bodies[0])
	}
	if r.Dropped() != 2+len(bad) {
		t.Errorf("Dropped() = %d, expected %d", r.Dropped(), 2+len(bad))
	}

	r.Reset()
	if r.Pending() != 0 || r.Dropped() != 0 {
		t.Errorf("Reset() left pending=%d dropped=%d", r.Pending(), r.Dropped())
	}
}

func TestReassemblerLargeFeed(t *testing.T) {
	stream, err := Encode(placements(10 * TriplesPerPacket))
	if err != nil {
		t.Fatal(err)
	}

	bodies := NewReassembler().Feed(stream)
	if len(bodies) != 10 {
		t.Errorf("Feed() returned %d frames, expected 10", len(bodies))
	}
}

func TestAssemblerSequenceErrors(t *testing.T) {
	var asm Assembler

	if _, _, err := asm.Add([]byte{PacketMiddle}); !errors.Is(err, ErrSequenceBroken) {
		t.Errorf("middle without first: error = %v, want ErrSequenceBroken", err)
	}
	if _, _, err := asm.Add([]byte{PacketLast}); !errors.Is(err, ErrSequenceBroken) {
		t.Errorf("last without first: error = %v, want ErrSequenceBroken", err)
	}

	// A new first abandons the unfinished request
	asm.Add([]byte{PacketFirst, 1, 0, 1})
	asm.Add([]byte{PacketFirst, 2, 0, 2})
	request, complete, err := asm.Add([]byte{PacketLast, 3, 0, 3})
	if err != nil || !complete {
		t.Fatalf("Add(last) = %v, %v", complete, err)
	}
	if !equalTriples(request, []Triple{{2, 2}, {3, 3}}) {
		t.Errorf("request = %+v", request)
	}
	if asm.Broken() != 1 {
		t.Errorf("Broken() = %d, expected 1", asm.Broken())
	}

	asm.Add([]byte{PacketFirst})
	if !asm.InSequence() {
		t.Errorf("InSequence() = false after first")
	}
	request, complete, _ = asm.Add([]byte{PacketOnly, 9, 0, 9})
	if !complete || !equalTriples(request, []Triple{{9, 9}}) {
		t.Errorf("only packet mid-sequence = %+v, %v", request, complete)
	}
	if asm.Broken() != 2 {
		t.Errorf("Broken() = %d, expected 2", asm.Broken())
	}
}

func TestDecode(t *testing.T) {
	first := placements(TriplesPerPacket + 4)
	second := []Placement{{Position: 1024, Color: Color{G: 0xFF}}}

	a, _ := Encode(first)
	b, _ := Encode(second)
	stream := append(append([]byte{0x00}, a...), b...)
	stream = append(stream, 1, 4)

	decoded, err := Decode(stream)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(decoded.Requests) != 2 {
		t.Fatalf("Decode() found %d requests, expected 2", len(decoded.Requests))
	}
	if !equalTriples(decoded.Requests[0], triplesOf(first)) || !equalTriples(decoded.Requests[1], triplesOf(second)) {
		t.Errorf("decoded requests differ from input")
	}
	if decoded.Packets != 3 {
		t.Errorf("Packets = %d, expected 3", decoded.Packets)
	}
	if decoded.Dropped != 3 {
		t.Errorf("Dropped = %d, expected 3", decoded.Dropped)
	}
	if decoded.Broken != 0 || decoded.Incomplete {
		t.Errorf("Broken=%d Incomplete=%v", decoded.Broken, decoded.Incomplete)
	}
}

func TestDecodeIncomplete(t *testing.T) {
	packets := Split(placements(TriplesPerPacket + 1))
	frame, _ := Wrap(packets[0].Bytes())

	decoded, err := Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Requests) != 0 || !decoded.Incomplete {
		t.Errorf("requests=%d incomplete=%v, expected 0/true", len(decoded.Requests), decoded.Incomplete)
	}
}

func TestDecodeStrayHeaderAtEnd(t *testing.T) {
	empty, _ := Encode(nil)
	// A stray header claiming a 255 byte body hides a valid frame behind it
	stream := append([]byte{FrameHeader, 0xFF, 0, FrameBodyStart}, empty...)

	decoded, err := Decode(stream)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.Packets != 1 || len(decoded.Requests) != 1 || len(decoded.Requests[0]) != 0 {
		t.Errorf("Expected the empty request to be recovered, got %+v", decoded)
	}
	if decoded.Dropped != 4 {
		t.Errorf("Dropped = %d, expected 4", decoded.Dropped)
	}

	// A truncated header at the very end is dropped too
	decoded, err = Decode(append(bytes.Clone(empty), FrameHeader, 3))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Packets != 1 || decoded.Dropped != 2 {
		t.Errorf("packets=%d dropped=%d, expected 1/2", decoded.Packets, decoded.Dropped)
	}
}

func TestReassemblerFlush(t *testing.T) {
	empty, _ := Encode(nil)
	stream := append([]byte{FrameHeader, 0xFF, 0, FrameBodyStart}, empty...)

	r := NewReassembler()
	if bodies := r.Feed(stream); len(bodies) != 0 {
		t.Fatalf("Feed() returned %d frames while the stray header is pending", len(bodies))
	}
	if r.Pending() != len(stream) {
		t.Errorf("Pending() = %d, expected %d", r.Pending(), len(stream))
	}

	bodies := r.Flush()
	if len(bodies) != 1 || !bytes.Equal(bodies[0], []byte{PacketOnly}) {
		t.Errorf("Flush() = %v, expected one [%d] body", bodies, PacketOnly)
	}
	if r.Pending() != 0 || r.Dropped() != 4 {
		t.Errorf("after Flush pending=%d dropped=%d, expected 0/4", r.Pending(), r.Dropped())
	}
}
