package buffer

import (
	"fmt"
	"io"

	"github.com/arloliu/bitpack/internal/options"
	"github.com/arloliu/bitpack/internal/pool"
)

// Writer is a growable byte buffer with a write cursor.
//
// A write at the cursor overwrites bytes inside the current logical extent and appends
// past it; the logical end becomes max(end, cursor) after every write.
//
// Ownership: a Writer is the only owner of its storage. Slices and views obtained from
// it (Bytes, View, Span) are borrows that stay valid until the next call that mutates
// the writer. No API produces two writers over the same storage.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	buf         *pool.ByteBuffer
	cursor      int
	maxRetained int
	pooled      bool
}

var _ io.Writer = (*Writer)(nil)

// NewWriter creates an empty growable writer.
//
// Panics if an option is invalid.
func NewWriter(opts ...WriterOption) *Writer {
	cfg := defaultWriterConfig()
	options.MustApply(cfg, opts...)

	return &Writer{
		buf:         pool.NewByteBuffer(cfg.capacity),
		maxRetained: cfg.maxRetained,
	}
}

// NewWriterSize creates a writer holding n zero bytes with the cursor at 0.
//
// It is the fresh fixed-size allocation used by accessors that set fields in place.
// The writer still grows if a write runs past n.
//
// Panics if n is negative.
func NewWriterSize(n int) *Writer {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative writer size %d", n))
	}

	w := &Writer{buf: pool.NewByteBuffer(n)}
	w.buf.ExtendOrGrow(n)

	return w
}

// WrapWriter creates a writer that takes ownership of b.
//
// The logical extent is len(b) and the cursor starts at 0, so writes overwrite b in
// place until they run past its end. The caller must not use b after the call.
func WrapWriter(b []byte) *Writer {
	return &Writer{buf: &pool.ByteBuffer{B: b}}
}

// AcquireWriter returns an empty writer backed by a pooled buffer.
//
// Call Release when the writer and everything borrowed from it is no longer used.
// Panics if an option is invalid.
func AcquireWriter(opts ...WriterOption) *Writer {
	cfg := defaultWriterConfig()
	options.MustApply(cfg, opts...)

	bb := pool.GetItemBuffer()
	bb.Grow(cfg.capacity)

	return &Writer{
		buf:         bb,
		maxRetained: cfg.maxRetained,
		pooled:      true,
	}
}

// Release returns a pooled writer's storage to the pool. The writer must not be used
// afterwards. Release is a no-op for writers that are not pooled.
func (w *Writer) Release() {
	if !w.pooled || w.buf == nil {
		return
	}

	pool.PutItemBuffer(w.buf, w.maxRetained)
	w.buf = nil
	w.cursor = 0
}

// Write writes p at the cursor and advances the cursor by len(p).
// It implements io.Writer and never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.MustWrite(p)
	return len(p), nil
}

// MustWrite is Write without the io.Writer results.
func (w *Writer) MustWrite(p []byte) {
	if w.cursor == w.buf.Len() {
		w.buf.MustWrite(p)
	} else {
		w.buf.WriteAt(w.cursor, p)
	}
	w.cursor += len(p)
}

// WriteByte writes a single byte at the cursor. It never fails.
func (w *Writer) WriteByte(c byte) error {
	if w.cursor == w.buf.Len() {
		w.buf.B = append(w.buf.B, c)
	} else {
		w.buf.B[w.cursor] = c
	}
	w.cursor++

	return nil
}

// WriteString writes the bytes of s at the cursor. It never fails.
func (w *Writer) WriteString(s string) (int, error) {
	w.MustWriteString(s)
	return len(s), nil
}

// MustWriteString is WriteString without the io.StringWriter results.
func (w *Writer) MustWriteString(s string) {
	if w.cursor == w.buf.Len() {
		w.buf.B = append(w.buf.B, s...)
	} else {
		w.buf.WriteAt(w.cursor, []byte(s))
	}
	w.cursor += len(s)
}

// Extend appends n zero bytes to the logical end and returns them as a mutable borrow.
// The cursor moves to the new end.
func (w *Writer) Extend(n int) []byte {
	start := w.buf.Len()
	w.buf.ExtendOrGrow(n)
	w.cursor = w.buf.Len()

	return w.buf.B[start:w.cursor:w.cursor]
}

// Seek moves the cursor to pos.
// Panics if pos is outside [0, Len()].
func (w *Writer) Seek(pos int) {
	if pos < 0 || pos > w.buf.Len() {
		panic(fmt.Sprintf("buffer: seek position %d out of range [0:%d]", pos, w.buf.Len()))
	}
	w.cursor = pos
}

// Cursor returns the current write position.
func (w *Writer) Cursor() int {
	return w.cursor
}

// Len returns the size of the logical extent.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Cap returns the capacity of the underlying storage.
func (w *Writer) Cap() int {
	return w.buf.Cap()
}

// Clear empties the logical extent and resets the cursor, keeping the capacity.
func (w *Writer) Clear() {
	w.buf.Reset()
	w.cursor = 0
}

// Truncate shrinks the logical extent to n bytes. A cursor past n moves to n.
// Panics if n is outside [0, Len()].
func (w *Writer) Truncate(n int) {
	if n < 0 || n > w.buf.Len() {
		panic(fmt.Sprintf("buffer: truncate length %d out of range [0:%d]", n, w.buf.Len()))
	}
	w.buf.SetLength(n)
	w.cursor = min(w.cursor, n)
}

// Bytes returns the logical extent as a borrowed slice.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// View returns a read-only view over the logical extent.
// The view is a borrow; it is invalidated by the next mutation of the writer.
func (w *Writer) View() View {
	return Wrap(w.buf.Bytes())
}

// Span returns the bytes in [start, end) of the logical extent as a mutable borrow.
//
// Bit and byte codecs write fields in place through a span. Panics if the range is
// out of bounds.
func (w *Writer) Span(start, end int) []byte {
	if start < 0 || end < start || end > w.buf.Len() {
		panic(fmt.Sprintf("buffer: span bounds [%d:%d] out of range [0:%d]", start, end, w.buf.Len()))
	}

	span := w.buf.Slice(start, end)

	return span[:len(span):len(span)]
}

// WriteTo writes the logical extent to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}
