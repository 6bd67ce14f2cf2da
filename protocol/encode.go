package protocol

import "fmt"

// Encode splits placements into packets, frames each one and returns the
// concatenated frame stream
func Encode(placements []Placement) ([]byte, error) {
	packets := Split(placements)
	out := NewStreamOutput(len(placements)*TripleSize + len(packets)*(FrameOverhead+1))

	for i, p := range packets {
		if err := WriteFrame(out, p.Bytes()); err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
	}
	return out.Result(), nil
}

// Units encodes placements and chunks the stream into transport units
func Units(placements []Placement) ([][]byte, error) {
	stream, err := Encode(placements)
	if err != nil {
		return nil, err
	}
	return Chunk(stream, TransportUnitSize)
}
