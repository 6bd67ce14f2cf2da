package protocol

import (
	"bytes"
	"fmt"
)

// ScanFrames extracts every complete, valid frame from input and returns
// their bodies. Bytes that cannot start a valid frame are dropped one at
// a time until the next header byte, so a corrupted frame costs only
// itself. A trailing partial frame is left in input unless atEOF is set;
// then no more bytes are coming, so its header byte is dropped and the
// rest rescanned.
func ScanFrames(input InputBuffer, atEOF bool) (bodies [][]byte, dropped int) {
	data := input.Data()

	for len(data) > 0 {
		// Skip to the next header byte
		if data[FramePositionHeader] != FrameHeader {
			skip := bytes.IndexByte(data, FrameHeader)
			if skip < 0 {
				skip = len(data)
			}
			dropped += skip
			data = data[skip:]
			continue
		}

		if len(data) < FrameBodyOffset {
			if !atEOF {
				break
			}
			dropped++
			data = data[1:]
			continue
		}
		if data[FramePositionBodyStart] != FrameBodyStart {
			dropped++
			data = data[1:]
			continue
		}

		frameLen := int(data[FramePositionLength]) + FrameOverhead
		if len(data) < frameLen {
			if !atEOF {
				break
			}
			dropped++
			data = data[1:]
			continue
		}

		body, err := FrameBody(data[:frameLen])
		if err != nil {
			dropped++
			data = data[1:]
			continue
		}

		bodies = append(bodies, bytes.Clone(body))
		data = data[frameLen:]
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
	return bodies, dropped
}

// Reassembler rebuilds frames from transport units arriving in order
type Reassembler struct {
	input   *FifoBuffer
	dropped int
}

// NewReassembler creates a Reassembler. Its buffer holds two maximum
// size frames, so a pending partial frame never blocks new input.
func NewReassembler() *Reassembler {
	return &Reassembler{input: NewFifoBuffer(2 * FrameMax)}
}

// Feed appends unit to the stream and returns the bodies of all frames
// completed by it
func (r *Reassembler) Feed(unit []byte) [][]byte {
	var bodies [][]byte
	for len(unit) > 0 {
		n := r.input.Write(unit)
		unit = unit[n:]

		got, dropped := ScanFrames(r.input, false)
		bodies = append(bodies, got...)
		r.dropped += dropped
	}
	return bodies
}

// Flush ends the stream: pending bytes that cannot complete a frame are
// rescanned past their header byte and any frames found inside are
// returned. Nothing is pending afterwards.
func (r *Reassembler) Flush() [][]byte {
	bodies, dropped := ScanFrames(r.input, true)
	r.dropped += dropped
	return bodies
}

// Pending returns the number of buffered bytes not yet part of a frame
func (r *Reassembler) Pending() int {
	return r.input.Available()
}

// Dropped returns the number of bytes discarded while resynchronizing
func (r *Reassembler) Dropped() int {
	return r.dropped
}

// Reset discards buffered bytes and counters
func (r *Reassembler) Reset() {
	r.input.Reset()
	r.dropped = 0
}

// Assembler joins first/middle/last packet bodies back into complete
// requests
type Assembler struct {
	pending    []Triple
	inSequence bool
	broken     int
}

// Add consumes one packet body. It returns the request once the body
// completes one (an only or last packet). A first or only packet arriving
// mid-sequence discards the unfinished request and counts it as broken.
func (a *Assembler) Add(body []byte) ([]Triple, bool, error) {
	role, triples, err := ParsePacket(body)
	if err != nil {
		a.abandon()
		return nil, false, err
	}

	switch role {
	case RoleOnly:
		a.abandon()
		return triples, true, nil

	case RoleFirst:
		a.abandon()
		a.inSequence = true
		a.pending = append(a.pending, triples...)
		return nil, false, nil

	case RoleMiddle, RoleLast:
		if !a.inSequence {
			return nil, false, fmt.Errorf("%w: %s packet without first", ErrSequenceBroken, role)
		}
		a.pending = append(a.pending, triples...)
		if role == RoleMiddle {
			return nil, false, nil
		}
		request := a.pending
		a.pending = nil
		a.inSequence = false
		return request, true, nil
	}
	return nil, false, fmt.Errorf("%w: %s", ErrUnknownRole, role)
}

// InSequence reports whether a multi-packet request is in progress
func (a *Assembler) InSequence() bool {
	return a.inSequence
}

// Broken returns the number of requests abandoned mid-sequence
func (a *Assembler) Broken() int {
	return a.broken
}

func (a *Assembler) abandon() {
	if a.inSequence {
		a.broken++
	}
	a.pending = nil
	a.inSequence = false
}

// Decoded is the result of decoding a complete frame stream
type Decoded struct {
	Requests   [][]Triple
	Packets    int
	Dropped    int
	Broken     int
	Incomplete bool
}

// Decode reassembles a whole frame stream into requests
func Decode(stream []byte) (*Decoded, error) {
	input := NewSliceInputBuffer(stream)
	bodies, dropped := ScanFrames(input, true)

	result := &Decoded{Packets: len(bodies), Dropped: dropped}
	var asm Assembler
	for i, body := range bodies {
		request, complete, err := asm.Add(body)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		if complete {
			result.Requests = append(result.Requests, request)
		}
	}
	result.Broken = asm.Broken()
	result.Incomplete = asm.InSequence()
	return result, nil
}
