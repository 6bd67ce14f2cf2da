package layout

import (
	"fmt"

	"holdboard/protocol"
)

// Position looks up the LED position for a hold id
func (l *Layout) Position(id string) (uint16, error) {
	pos, ok := l.Positions[id]
	if !ok {
		return 0, fmt.Errorf("%w: hold %q", protocol.ErrInvalidPositionReference, id)
	}
	if pos < 0 || pos > 0xFFFF {
		return 0, fmt.Errorf("%w: hold %q has position %d", ErrPositionOutOfRange, id, pos)
	}
	return uint16(pos), nil
}

// Color resolves a role name to its color. A role the layout does not
// define is treated as a literal RRGGBB color.
func (l *Layout) Color(role string) (protocol.Color, error) {
	hex, ok := l.Roles[role]
	if !ok {
		hex = role
	}
	c, err := protocol.ParseColor(hex)
	if err != nil {
		return protocol.Color{}, fmt.Errorf("role %q: %w", role, err)
	}
	return c, nil
}

// Resolve turns holds into placements, keeping their order
func (l *Layout) Resolve(holds []Hold) ([]protocol.Placement, error) {
	placements := make([]protocol.Placement, 0, len(holds))
	for i, h := range holds {
		pos, err := l.Position(h.ID)
		if err != nil {
			return nil, fmt.Errorf("hold %d: %w", i, err)
		}
		c, err := l.Color(h.Role)
		if err != nil {
			return nil, fmt.Errorf("hold %d: %w", i, err)
		}
		placements = append(placements, protocol.Placement{Position: pos, Color: c})
	}
	return placements, nil
}

// Placements parses a frames description and resolves it
func (l *Layout) Placements(desc string) ([]protocol.Placement, error) {
	holds, err := ParseFrames(desc)
	if err != nil {
		return nil, err
	}
	return l.Resolve(holds)
}
