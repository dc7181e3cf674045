package message

import (
	"fmt"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/errs"
)

// Message is the result of a decode: the value and the exact number of bytes consumed
// from the input window.
//
// Size is the only channel through which offsets flow between combinators: a parent
// advances its own offset by the child's Size before decoding the next field.
type Message[T any] struct {
	size  int
	value T
}

// NewMessage creates a message that consumed size bytes.
func NewMessage[T any](size int, value T) Message[T] {
	return Message[T]{size: size, value: value}
}

// Size returns the number of bytes consumed.
func (m Message[T]) Size() int {
	return m.size
}

// Value returns the decoded value.
func (m Message[T]) Value() T {
	return m.value
}

// Map transforms the value of m and keeps its size.
func Map[T, U any](m Message[T], fn func(T) U) Message[U] {
	return Message[U]{size: m.size, value: fn(m.value)}
}

// Decoder decodes a T from the start of a view.
//
// Decode either returns a message whose Size is at most in.Size(), or fails with an
// error wrapping errs.ErrTruncated or a more specific sentinel. Decode never reads
// outside in.
type Decoder[T any] interface {
	Decode(in buffer.View) (Message[T], error)
}

// Encoder appends the wire bytes of a T at the writer's cursor.
//
// On failure, bytes written before the failing field stay in out.
type Encoder[T any] interface {
	Encode(out *buffer.Writer, v T) error
}

// Codec is both a Decoder and an Encoder.
type Codec[T any] interface {
	Decoder[T]
	Encoder[T]
}

// FixedCodec is a Codec whose encoding always has the same byte size.
// Array items must be fixed-size.
type FixedCodec[T any] interface {
	Codec[T]
	FixedSize() int
}

// FieldOffset is the half-open byte range [Start, End) of a decoded field, relative to
// the view it was decoded from.
type FieldOffset struct {
	Start int
	End   int
}

// Size returns the byte length of the field.
func (f FieldOffset) Size() int {
	return f.End - f.Start
}

func truncated(what string, need, have int) error {
	return fmt.Errorf("%s: need %d bytes, have %d: %w", what, need, have, errs.ErrTruncated)
}
