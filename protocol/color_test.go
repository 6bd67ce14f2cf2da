package protocol

import (
	"errors"
	"testing"
)

func TestColorByte(t *testing.T) {
	testCases := []struct {
		hex      string
		expected byte
	}{
		{hex: "000000", expected: 0},
		{hex: "FF0000", expected: 224},
		{hex: "00FF00", expected: 28},
		{hex: "0000FF", expected: 3},
		{hex: "FFFFFF", expected: 255},
		{hex: "ff00ff", expected: 227},
		{hex: "1F1F3F", expected: 0},
		{hex: "202040", expected: 0x20 | 0x04 | 0x01},
		{hex: "FFA500", expected: 7<<5 | 5<<2},
	}

	for _, tc := range testCases {
		t.Run(tc.hex, func(t *testing.T) {
			c, err := ParseColor(tc.hex)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tc.hex, err)
			}
			if got := c.Byte(); got != tc.expected {
				t.Errorf("ParseColor(%q).Byte() = %d, expected %d", tc.hex, got, tc.expected)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, s := range []string{"", "FFF", "FF00000", "GG0000", "#FF000", "00 FF0", "12345z"} {
		if _, err := ParseColor(s); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColorFormat", s, err)
		}
	}
}

func TestColorHex(t *testing.T) {
	c, err := ParseColor("00ff7f")
	if err != nil {
		t.Fatal(err)
	}
	if c.Hex() != "00FF7F" {
		t.Errorf("Hex() = %q, expected %q", c.Hex(), "00FF7F")
	}
	if c.String() != c.Hex() {
		t.Errorf("String() = %q, expected %q", c.String(), c.Hex())
	}
}

func TestColorFromByteRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		if got := ColorFromByte(byte(b)).Byte(); got != byte(b) {
			t.Errorf("ColorFromByte(%d).Byte() = %d", b, got)
		}
	}
}
