package protocol

import "errors"

var (
	ErrPayloadTooLarge          = errors.New("payload exceeds maximum body length")
	ErrInvalidColorFormat       = errors.New("invalid color format")
	ErrInvalidChunkSize         = errors.New("invalid chunk size")
	ErrInvalidPositionReference = errors.New("unknown position reference")
	ErrUnknownRole              = errors.New("unknown packet role marker")
	ErrMalformedPacket          = errors.New("malformed packet body")
	ErrSequenceBroken           = errors.New("packet sequence broken")
)
