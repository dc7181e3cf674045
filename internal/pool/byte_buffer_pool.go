package pool

import (
	"io"
	"sync"
)

const (
	DefaultBufferSize       = 256         // initial capacity of pooled item buffers
	DefaultMaxRetainedSize  = 1024 * 64   // pooled buffers above this capacity are dropped
	smallBufferGrowthStride = 1024        // fixed growth step for small buffers
	largeBufferThreshold    = 1024 * 16   // above this capacity growth switches to 25%
)

// ByteBuffer is a growable byte slice with an amortized growth strategy.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > len(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// ExtendOrGrow extends the buffer by n zeroed bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
	clear(bb.B[start:])
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers, grow by a fixed stride to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := smallBufferGrowthStride
	if cap(bb.B) > largeBufferThreshold {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// WriteAt copies data into the buffer starting at offset, overwriting existing bytes
// and extending the buffer when data runs past its current length.
//
// Panics if offset is negative or beyond the current length.
func (bb *ByteBuffer) WriteAt(offset int, data []byte) {
	if offset < 0 || offset > len(bb.B) {
		panic("WriteAt: invalid offset")
	}

	overlap := min(len(bb.B)-offset, len(data))
	copy(bb.B[offset:], data[:overlap])
	if overlap < len(data) {
		bb.B = append(bb.B, data[overlap:]...)
	}
}

// MustWrite appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers. Callers pass a retention
// limit on Put so that overly large buffers are dropped instead of pooled.
type ByteBufferPool struct {
	pool sync.Pool
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool unless its capacity exceeds maxRetained.
// A non-positive maxRetained disables the limit.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer, maxRetained int) {
	if bb == nil {
		return
	}

	if maxRetained > 0 && cap(bb.B) > maxRetained {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var itemDefaultPool = NewByteBufferPool(DefaultBufferSize)

// GetItemBuffer retrieves a ByteBuffer from the default item pool.
// Item buffers back pooled writers: list builders and size measurement.
func GetItemBuffer() *ByteBuffer {
	return itemDefaultPool.Get()
}

// PutItemBuffer returns a ByteBuffer to the default item pool.
func PutItemBuffer(bb *ByteBuffer, maxRetained int) {
	itemDefaultPool.Put(bb, maxRetained)
}
