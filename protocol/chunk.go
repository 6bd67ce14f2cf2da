package protocol

import (
	"fmt"
	"slices"
)

// Chunk partitions stream into consecutive units of size bytes; the last
// unit may be shorter. Units are copies of the stream.
func Chunk(stream []byte, size int) ([][]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, size)
	}

	units := make([][]byte, 0, (len(stream)+size-1)/size)
	for unit := range slices.Chunk(stream, size) {
		units = append(units, slices.Clone(unit))
	}
	return units, nil
}
