package protocol

// InputBuffer provides an abstraction for reading incoming frame bytes
type InputBuffer interface {
	// Data returns the available data slice
	Data() []byte

	// Available returns the number of bytes available
	Available() int

	// Pop removes n bytes from the front of the buffer
	Pop(n int)
}

// OutputBuffer provides an abstraction for writing outgoing frame bytes
type OutputBuffer interface {
	// Output writes data to the buffer
	Output(data []byte)

	// CurPosition returns the current write position
	CurPosition() int

	// Update modifies a byte at a specific position
	Update(pos int, val byte)

	// DataSince returns data from a specific position to current
	DataSince(pos int) []byte
}

// SliceInputBuffer implements InputBuffer using a byte slice
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer creates a new SliceInputBuffer
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// ScratchOutput implements OutputBuffer using a fixed-size buffer large
// enough for a single frame
type ScratchOutput struct {
	buf [FrameMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{pos: 0}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < len(s.buf) {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns the accumulated output data
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// StreamOutput implements OutputBuffer over a growable slice. It holds
// the concatenated frames of a whole illumination request.
type StreamOutput struct {
	buf []byte
}

// NewStreamOutput creates a StreamOutput with the given initial capacity
func NewStreamOutput(capacity int) *StreamOutput {
	return &StreamOutput{buf: make([]byte, 0, capacity)}
}

func (s *StreamOutput) Output(data []byte) {
	s.buf = append(s.buf, data...)
}

func (s *StreamOutput) CurPosition() int {
	return len(s.buf)
}

func (s *StreamOutput) Update(pos int, val byte) {
	if pos < len(s.buf) {
		s.buf[pos] = val
	}
}

func (s *StreamOutput) DataSince(pos int) []byte {
	if pos > len(s.buf) {
		return nil
	}
	return s.buf[pos:]
}

// Result returns the accumulated output data
func (s *StreamOutput) Result() []byte {
	return s.buf
}

// FifoBuffer is a circular buffer for bytes arriving from the link. All
// of its capacity is usable.
type FifoBuffer struct {
	buf  []byte
	head int
	n    int
}

// NewFifoBuffer creates a FifoBuffer holding up to capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count taken
func (f *FifoBuffer) Write(data []byte) int {
	size := len(f.buf)
	n := min(len(data), size-f.n)
	if n == 0 {
		return 0
	}
	tail := (f.head + f.n) % size
	first := copy(f.buf[tail:], data[:n])
	copy(f.buf, data[first:n])
	f.n += n
	return n
}

func (f *FifoBuffer) Available() int {
	return f.n
}

// Data returns the buffered bytes in order. A wrapped buffer is copied
// into one contiguous slice for frame scanning.
func (f *FifoBuffer) Data() []byte {
	end := f.head + f.n
	if end <= len(f.buf) {
		return f.buf[f.head:end]
	}
	out := make([]byte, 0, f.n)
	out = append(out, f.buf[f.head:]...)
	return append(out, f.buf[:end-len(f.buf)]...)
}

func (f *FifoBuffer) Pop(n int) {
	n = min(n, f.n)
	f.n -= n
	if f.n == 0 {
		f.head = 0
		return
	}
	f.head = (f.head + n) % len(f.buf)
}

// Reset discards everything buffered
func (f *FifoBuffer) Reset() {
	f.head = 0
	f.n = 0
}
