package buffer

import (
	"bytes"
	"fmt"

	"github.com/arloliu/bitpack/internal/hash"
)

// View is an immutable window [start, end) over a backing byte slice.
//
// Slicing a View never copies: the result shares the backing storage with a narrowed
// range. A View exposes no mutation, so it is safe for concurrent use as long as
// nobody mutates the backing storage (see Writer for the ownership rules).
//
// The zero View is an empty window.
type View struct {
	data  []byte
	start int
	end   int
}

// Wrap returns a View over b without copying.
//
// The View borrows b: the caller must not modify b while the View, or any value
// decoded from it, is in use.
func Wrap(b []byte) View {
	return View{data: b, start: 0, end: len(b)}
}

// Copy returns a View over a private copy of b.
func Copy(b []byte) View {
	return Wrap(bytes.Clone(b))
}

// Size returns the number of bytes in the window.
func (v View) Size() int {
	return v.end - v.start
}

// IsEmpty reports whether the window holds no bytes.
func (v View) IsEmpty() bool {
	return v.end == v.start
}

// Offset returns the absolute position of the window's first byte in the backing storage.
func (v View) Offset() int {
	return v.start
}

// At returns the byte at relative index i.
// Panics if i is outside [0, Size()).
func (v View) At(i int) byte {
	if i < 0 || i >= v.Size() {
		panic(fmt.Sprintf("buffer: index %d out of range [0:%d]", i, v.Size()))
	}

	return v.data[v.start+i]
}

// AtAbsolute returns the byte at absolute position pos of the backing storage.
// Panics if pos lies outside the window.
func (v View) AtAbsolute(pos int) byte {
	if pos < v.start || pos >= v.end {
		panic(fmt.Sprintf("buffer: absolute index %d out of window [%d:%d]", pos, v.start, v.end))
	}

	return v.data[pos]
}

// Slice returns the sub-window [start, end) relative to this window.
//
// Panics if the range is negative, inverted, or exceeds the window. Out-of-range
// slicing is a programming error and is never clamped.
func (v View) Slice(start, end int) View {
	if start < 0 || end < start || end > v.Size() {
		panic(fmt.Sprintf("buffer: slice bounds [%d:%d] out of range [0:%d]", start, end, v.Size()))
	}

	return View{data: v.data, start: v.start + start, end: v.start + end}
}

// SliceFrom returns the sub-window starting at start and running to the end of this window.
// Panics if start is outside [0, Size()].
func (v View) SliceFrom(start int) View {
	return v.Slice(start, v.Size())
}

// SliceTo returns the sub-window holding the first end bytes of this window.
// Panics if end is outside [0, Size()].
func (v View) SliceTo(end int) View {
	return v.Slice(0, end)
}

// FindFirst returns the relative index of the first byte equal to value.
// The second result is false when the window does not contain value.
func (v View) FindFirst(value byte) (int, bool) {
	idx := bytes.IndexByte(v.Peek(), value)
	if idx < 0 {
		return 0, false
	}

	return idx, true
}

// Bytes returns an owned copy of the window.
func (v View) Bytes() []byte {
	out := make([]byte, v.Size())
	copy(out, v.data[v.start:v.end])

	return out
}

// Peek returns the window as a slice sharing the backing storage.
//
// The returned slice must not be modified. Its capacity is clipped to the window so
// appending to it never writes into bytes outside the window.
func (v View) Peek() []byte {
	return v.data[v.start:v.end:v.end]
}

// Equal reports whether both windows hold the same bytes.
func (v View) Equal(other View) bool {
	return bytes.Equal(v.Peek(), other.Peek())
}

// Fingerprint returns the xxHash64 of the window contents.
//
// Equal windows always have equal fingerprints, which makes the value suitable as a
// cache key for decoded records. Different windows may collide, so confirm with Equal.
func (v View) Fingerprint() uint64 {
	return hash.Sum64(v.Peek())
}

// String implements fmt.Stringer for debugging output.
func (v View) String() string {
	return fmt.Sprintf("View[%d:%d](% x)", v.start, v.end, v.Peek())
}
