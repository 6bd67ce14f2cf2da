package protocol

import "fmt"

// WriteFrame appends body to output wrapped as a frame:
//
//	Header(1) | Length(1) | Checksum(1) | BodyStart(1) | Body(0-255) | End(1)
//
// Length and checksum cover the body only. Nothing is written when the
// body is too long.
func WriteFrame(output OutputBuffer, body []byte) error {
	if len(body) > MessageBodyMaxLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(body), MessageBodyMaxLength)
	}

	cursor := output.CurPosition()

	// Header with length and checksum placeholders
	output.Output([]byte{FrameHeader, 0, 0, FrameBodyStart})
	output.Output(body)

	// Patch length and checksum from what was actually written
	written := output.DataSince(cursor + FrameBodyOffset)
	output.Update(cursor+FramePositionLength, byte(len(written)))
	output.Update(cursor+FramePositionChecksum, Checksum(written))

	output.Output([]byte{FrameEnd})
	return nil
}

// Wrap returns body wrapped as a single frame
func Wrap(body []byte) ([]byte, error) {
	scratch := NewScratchOutput()
	if err := WriteFrame(scratch, body); err != nil {
		return nil, err
	}

	frame := make([]byte, scratch.CurPosition())
	copy(frame, scratch.Result())
	return frame, nil
}

// FrameBody validates a complete frame and returns its body. The returned
// slice aliases frame.
func FrameBody(frame []byte) ([]byte, error) {
	if len(frame) < FrameOverhead {
		return nil, fmt.Errorf("%w: frame too short (%d bytes)", ErrMalformedPacket, len(frame))
	}
	if frame[FramePositionHeader] != FrameHeader || frame[FramePositionBodyStart] != FrameBodyStart {
		return nil, fmt.Errorf("%w: bad frame markers", ErrMalformedPacket)
	}

	bodyLen := int(frame[FramePositionLength])
	if len(frame) != bodyLen+FrameOverhead {
		return nil, fmt.Errorf("%w: length byte %d does not match frame size %d", ErrMalformedPacket, bodyLen, len(frame))
	}
	if frame[len(frame)-1] != FrameEnd {
		return nil, fmt.Errorf("%w: missing end marker", ErrMalformedPacket)
	}

	body := frame[FrameBodyOffset : FrameBodyOffset+bodyLen]
	if sum := Checksum(body); sum != frame[FramePositionChecksum] {
		return nil, fmt.Errorf("%w: checksum 0x%02x, want 0x%02x", ErrMalformedPacket, frame[FramePositionChecksum], sum)
	}
	return body, nil
}
