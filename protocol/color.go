package protocol

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Color is a 24-bit RGB value
type Color struct {
	R, G, B uint8
}

// ParseColor decodes a 6 hex digit RRGGBB string. Both letter cases are
// accepted.
func ParseColor(s string) (Color, error) {
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: %q is not 6 hex digits", ErrInvalidColorFormat, s)
	}
	var rgb [3]byte
	if _, err := hex.Decode(rgb[:], []byte(s)); err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// Byte quantizes the color to the board's 3-3-2 RGB byte. The precision
// loss is what the board hardware expects.
func (c Color) Byte() byte {
	return (c.R/32)<<5 | (c.G/32)<<2 | c.B/64
}

// Hex returns the color as uppercase RRGGBB
func (c Color) Hex() string {
	return strings.ToUpper(hex.EncodeToString([]byte{c.R, c.G, c.B}))
}

func (c Color) String() string {
	return c.Hex()
}

// ColorFromByte expands a quantized 3-3-2 byte to an approximate RGB
// value. ColorFromByte(b).Byte() == b for every b.
func ColorFromByte(b byte) Color {
	return Color{
		R: uint8(uint16(b>>5&0x07) * 255 / 7),
		G: uint8(uint16(b>>2&0x07) * 255 / 7),
		B: uint8(uint16(b&0x03) * 255 / 3),
	}
}
