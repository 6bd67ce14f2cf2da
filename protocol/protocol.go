// Package protocol implements the hold board LED framing protocol
package protocol

// Version represents the holdboard protocol library version
const Version = "0.1.0"

// Frame layout constants
const (
	FrameHeader    = 0x01 // First byte of every frame
	FrameBodyStart = 0x02 // Precedes the packet body
	FrameEnd       = 0x03 // Closes the frame

	FramePositionHeader    = 0
	FramePositionLength    = 1
	FramePositionChecksum  = 2
	FramePositionBodyStart = 3
	FrameBodyOffset        = 4

	// FrameOverhead is the number of bytes a frame adds around its body
	FrameOverhead = 5

	// MessageBodyMaxLength bounds a packet body, role marker included
	MessageBodyMaxLength = 255

	// FrameMax is the longest possible wrapped frame
	FrameMax = MessageBodyMaxLength + FrameOverhead
)

// Packet constants
const (
	// TripleSize is the encoded size of one placement
	TripleSize = 3

	// SplitMargin is subtracted from MessageBodyMaxLength when deciding
	// whether the next triple still fits in the current packet
	SplitMargin = 3

	// PacketSplitThreshold is the largest buffer length a packet may reach
	PacketSplitThreshold = MessageBodyMaxLength - SplitMargin

	// TriplesPerPacket is how many placements fit in one packet
	TriplesPerPacket = (PacketSplitThreshold - 1) / TripleSize
)

// Wire role markers
const (
	PacketMiddle = 81
	PacketFirst  = 82
	PacketLast   = 83
	PacketOnly   = 84
)

// TransportUnitSize is the number of bytes handed to the link per write
const TransportUnitSize = 20
