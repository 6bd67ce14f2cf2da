package protocol

import "fmt"

// Role is a packet's place in a multi-packet request
type Role uint8

const (
	RoleOnly Role = iota
	RoleFirst
	RoleMiddle
	RoleLast
)

// Marker returns the wire byte for the role
func (r Role) Marker() byte {
	switch r {
	case RoleFirst:
		return PacketFirst
	case RoleMiddle:
		return PacketMiddle
	case RoleLast:
		return PacketLast
	default:
		return PacketOnly
	}
}

func (r Role) String() string {
	switch r {
	case RoleOnly:
		return "only"
	case RoleFirst:
		return "first"
	case RoleMiddle:
		return "middle"
	case RoleLast:
		return "last"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// RoleFromMarker maps a wire byte back to its role
func RoleFromMarker(marker byte) (Role, error) {
	switch marker {
	case PacketOnly:
		return RoleOnly, nil
	case PacketFirst:
		return RoleFirst, nil
	case PacketMiddle:
		return RoleMiddle, nil
	case PacketLast:
		return RoleLast, nil
	}
	return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownRole, marker)
}

// Packet is a logical packet before framing: a role and the encoded
// triples that follow the role marker.
type Packet struct {
	Role    Role
	Payload []byte
}

// Len returns the packet body length, role marker included
func (p Packet) Len() int {
	return 1 + len(p.Payload)
}

// Bytes returns the packet body: role marker followed by the triples
func (p Packet) Bytes() []byte {
	body := make([]byte, 0, p.Len())
	body = append(body, p.Role.Marker())
	return append(body, p.Payload...)
}

// Split groups placements into packets in order. A packet is closed when
// the next triple would take it past PacketSplitThreshold. Roles are
// assigned once all packets are known; no placements still produces one
// empty RoleOnly packet.
func Split(placements []Placement) []Packet {
	packets := make([]Packet, 0, len(placements)/TriplesPerPacket+1)
	current := Packet{Role: RoleMiddle}

	for _, p := range placements {
		if current.Len()+TripleSize > PacketSplitThreshold {
			packets = append(packets, current)
			current = Packet{Role: RoleMiddle}
		}
		triple := p.Encode()
		current.Payload = append(current.Payload, triple[:]...)
	}
	packets = append(packets, current)

	if len(packets) == 1 {
		packets[0].Role = RoleOnly
		return packets
	}
	packets[0].Role = RoleFirst
	packets[len(packets)-1].Role = RoleLast
	return packets
}

// ParsePacket splits a packet body into its role and triples
func ParsePacket(body []byte) (Role, []Triple, error) {
	if len(body) == 0 {
		return 0, nil, fmt.Errorf("%w: empty body", ErrMalformedPacket)
	}
	role, err := RoleFromMarker(body[0])
	if err != nil {
		return 0, nil, err
	}

	payload := body[1:]
	if len(payload)%TripleSize != 0 {
		return 0, nil, fmt.Errorf("%w: %d payload bytes is not a multiple of %d", ErrMalformedPacket, len(payload), TripleSize)
	}

	triples := make([]Triple, 0, len(payload)/TripleSize)
	for len(payload) > 0 {
		t, err := DecodeTriple(payload)
		if err != nil {
			return 0, nil, err
		}
		triples = append(triples, t)
		payload = payload[TripleSize:]
	}
	return role, triples, nil
}
