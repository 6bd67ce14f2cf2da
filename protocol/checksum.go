package protocol

// Checksum calculates the single-byte frame checksum: the inverted
// 8-bit wrapping sum of data. An empty slice yields 0xFF.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum
}
