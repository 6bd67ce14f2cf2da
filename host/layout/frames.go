// Package layout resolves textual hold descriptions to protocol placements
package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrInvalidFrames      = errors.New("invalid frames description")
	ErrPositionOutOfRange = errors.New("position out of range")
)

// Hold is one entry of a frames description: a hold id and the role (or
// literal RRGGBB color) it is lit with
type Hold struct {
	ID   string `json:"id" yaml:"id"`
	Role string `json:"role" yaml:"role"`
}

// ParseFrames parses a description of the form p<id>r<role>, repeated,
// e.g. "p1145r12p1146r13". Whitespace is ignored and an empty
// description yields no holds.
func ParseFrames(desc string) ([]Hold, error) {
	desc = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, desc)
	if desc == "" {
		return nil, nil
	}
	if desc[0] != 'p' {
		return nil, fmt.Errorf("%w: must start with 'p', got %q", ErrInvalidFrames, desc[0])
	}

	tokens := strings.Split(desc[1:], "p")
	holds := make([]Hold, 0, len(tokens))
	for i, tok := range tokens {
		id, role, ok := strings.Cut(tok, "r")
		if !ok || id == "" || role == "" {
			return nil, fmt.Errorf("%w: entry %d %q is not <id>r<role>", ErrInvalidFrames, i, "p"+tok)
		}
		holds = append(holds, Hold{ID: id, Role: role})
	}
	return holds, nil
}

// FormatFrames is the inverse of ParseFrames
func FormatFrames(holds []Hold) string {
	var b strings.Builder
	for _, h := range holds {
		b.WriteString("p")
		b.WriteString(h.ID)
		b.WriteString("r")
		b.WriteString(h.Role)
	}
	return b.String()
}
