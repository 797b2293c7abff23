package protocol

// InputBuffer provides an abstraction for reading incoming command bytes
type InputBuffer interface {
	// Data returns the available data slice
	Data() []byte

	// Available returns the number of bytes available
	Available() int

	// Pop removes n bytes from the front of the buffer
	Pop(n int)
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

// FifoBuffer is a circular buffer between the USB reader and the command loop.
// One slot is kept free to tell full from empty.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a new FifoBuffer with the specified capacity
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data and returns how many bytes fit
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		nextWrite := (f.write + 1) % f.size
		if nextWrite == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = nextWrite
		written++
	}
	return written
}

// Push appends a single byte; it reports false when the buffer is full
func (f *FifoBuffer) Push(b byte) bool {
	return f.Write([]byte{b}) == 1
}

// Read reads up to len(data) bytes from the FIFO buffer
func (f *FifoBuffer) Read(data []byte) int {
	read := 0
	for i := range data {
		if f.read == f.write {
			break
		}
		data[i] = f.buf[f.read]
		f.read = (f.read + 1) % f.size
		read++
	}
	return read
}

// Available returns the number of bytes available for reading
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes available for writing
func (f *FifoBuffer) Free() int {
	return f.size - f.Available() - 1
}

// Data returns available data as a slice.
// When wrapped, the two segments are copied into a contiguous slice so a
// text command split across the wrap point still decodes.
func (f *FifoBuffer) Data() []byte {
	if f.read <= f.write {
		return f.buf[f.read:f.write]
	}
	result := make([]byte, f.Available())
	firstLen := f.size - f.read
	copy(result, f.buf[f.read:])
	copy(result[firstLen:], f.buf[:f.write])
	return result
}

// Pop removes n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	for i := 0; i < n && f.read != f.write; i++ {
		f.read = (f.read + 1) % f.size
	}
}

// IsEmpty returns true if the buffer is empty
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
