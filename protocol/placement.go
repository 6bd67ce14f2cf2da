package protocol

import (
	"encoding/binary"
	"fmt"
)

// Placement is one illuminated hold: an LED position and its color
type Placement struct {
	Position uint16
	Color    Color
}

// Triple is a decoded placement as the board sees it: the position and
// the already quantized color byte.
type Triple struct {
	Position uint16
	Color    byte
}

// EncodePosition encodes a position as 2 little-endian bytes. Bits above
// the low 16 are dropped.
func EncodePosition(position uint32) [2]byte {
	return [2]byte{byte(position & 0xFF), byte((position >> 8) & 0xFF)}
}

// Encode returns the 3-byte wire form of the placement
func (p Placement) Encode() [TripleSize]byte {
	pos := EncodePosition(uint32(p.Position))
	return [TripleSize]byte{pos[0], pos[1], p.Color.Byte()}
}

// Triple returns the placement as the board will decode it
func (p Placement) Triple() Triple {
	return Triple{Position: p.Position, Color: p.Color.Byte()}
}

// DecodeTriple parses a 3-byte encoded placement
func DecodeTriple(data []byte) (Triple, error) {
	if len(data) < TripleSize {
		return Triple{}, fmt.Errorf("%w: triple needs %d bytes, got %d", ErrMalformedPacket, TripleSize, len(data))
	}
	return Triple{
		Position: binary.LittleEndian.Uint16(data[0:2]),
		Color:    data[2],
	}, nil
}
