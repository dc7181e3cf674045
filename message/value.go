package message

import (
	"github.com/arloliu/bitpack/bitcast"
	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
)

// Value encodes a scalar as its natural-width bytes in one byte order.
type Value[T codec.Scalar] struct {
	codec codec.ByteCodec
}

var (
	_ FixedCodec[uint32]  = Value[uint32]{}
	_ FixedCodec[bool]    = Bool{}
	_ FixedCodec[float64] = Cast[uint64, float64]{}
)

// NewValue creates a scalar codec using c's byte order.
func NewValue[T codec.Scalar](c codec.ByteCodec) Value[T] {
	return Value[T]{codec: c}
}

// ValueLE creates a little-endian scalar codec.
func ValueLE[T codec.Scalar]() Value[T] {
	return NewValue[T](codec.LE)
}

// ValueBE creates a big-endian scalar codec.
func ValueBE[T codec.Scalar]() Value[T] {
	return NewValue[T](codec.BE)
}

// FixedSize returns the byte width of T.
func (v Value[T]) FixedSize() int {
	return codec.Width[T]()
}

// Decode reads exactly FixedSize bytes.
func (v Value[T]) Decode(in buffer.View) (Message[T], error) {
	width := codec.Width[T]()
	if in.Size() < width {
		return Message[T]{}, truncated("scalar value", width, in.Size())
	}

	return NewMessage(width, codec.FromBytes[T](v.codec.Engine(), in.Peek())), nil
}

// Encode writes x in the codec's byte order.
func (v Value[T]) Encode(out *buffer.Writer, x T) error {
	v.write(out, x)
	return nil
}

func (v Value[T]) write(out *buffer.Writer, x T) {
	var scratch [8]byte
	out.MustWrite(codec.AppendBytes(v.codec.Engine(), scratch[:0], x))
}

// put encodes x into the first FixedSize bytes of dst.
func (v Value[T]) put(dst []byte, x T) {
	codec.PutBytes(v.codec.Engine(), dst, x)
}

// Bool is a one-byte boolean: zero is false, any other byte is true. Encode writes 0 or 1.
type Bool struct{}

// FixedSize returns 1.
func (Bool) FixedSize() int { return 1 }

func (Bool) Decode(in buffer.View) (Message[bool], error) {
	if in.IsEmpty() {
		return Message[bool]{}, truncated("bool", 1, 0)
	}

	return NewMessage(1, in.At(0) != 0), nil
}

func (Bool) Encode(out *buffer.Writer, v bool) error {
	var b byte
	if v {
		b = 1
	}

	return out.WriteByte(b)
}

// Cast adapts a fixed-size scalar codec to another type with the same bit pattern,
// such as a float or a signed integer.
type Cast[T codec.Scalar, U any] struct {
	inner Value[T]
	from  func(T) U
	to    func(U) T
}

// NewCast creates a codec that decodes a T with inner and converts it with from, and
// encodes by converting with to.
func NewCast[T codec.Scalar, U any](inner Value[T], from func(T) U, to func(U) T) Cast[T, U] {
	return Cast[T, U]{inner: inner, from: from, to: to}
}

// FixedSize returns the byte width of the underlying scalar.
func (c Cast[T, U]) FixedSize() int {
	return c.inner.FixedSize()
}

func (c Cast[T, U]) Decode(in buffer.View) (Message[U], error) {
	m, err := c.inner.Decode(in)
	if err != nil {
		return Message[U]{}, err
	}

	return Map(m, c.from), nil
}

func (c Cast[T, U]) Encode(out *buffer.Writer, v U) error {
	return c.inner.Encode(out, c.to(v))
}

// Float32 returns an IEEE 754 binary32 codec in c's byte order.
func Float32(c codec.ByteCodec) Cast[uint32, float32] {
	return NewCast(NewValue[uint32](c), bitcast.Float32, bitcast.Float32Bits)
}

// Float64 returns an IEEE 754 binary64 codec in c's byte order.
func Float64(c codec.ByteCodec) Cast[uint64, float64] {
	return NewCast(NewValue[uint64](c), bitcast.Float64, bitcast.Float64Bits)
}

// Int8 returns a two's-complement int8 codec.
func Int8() Cast[uint8, int8] {
	return NewCast(NewValue[uint8](codec.LE), bitcast.Int8, bitcast.Uint8)
}

// Int16 returns a two's-complement int16 codec in c's byte order.
func Int16(c codec.ByteCodec) Cast[uint16, int16] {
	return NewCast(NewValue[uint16](c), bitcast.Int16, bitcast.Uint16)
}

// Int32 returns a two's-complement int32 codec in c's byte order.
func Int32(c codec.ByteCodec) Cast[uint32, int32] {
	return NewCast(NewValue[uint32](c), bitcast.Int32, bitcast.Uint32)
}

// Int64 returns a two's-complement int64 codec in c's byte order.
func Int64(c codec.ByteCodec) Cast[uint64, int64] {
	return NewCast(NewValue[uint64](c), bitcast.Int64, bitcast.Uint64)
}
