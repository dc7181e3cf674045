// Package bitpack provides composable codecs for packed binary records.
//
// A record is described by composing the codecs of its fields: scalars in either byte
// order, sub-byte bit-fields, count-prefixed arrays and lists, optional fields,
// null-terminated and length-prefixed text, and tagged unions whose discriminant lives
// in another field of the record.
//
// # Core Features
//
//   - Zero-copy decoding: arrays, lists and raw payloads borrow the input bytes
//   - Byte order chosen per field, little-endian and big-endian side by side
//   - Bit-fields of 1 to 64 bits that may straddle byte boundaries
//   - Explicit byte accounting: every decode reports exactly how much it consumed
//   - Sized lists that can be skipped without parsing their items
//
// # Basic Usage
//
// Decoding and encoding a length-prefixed list of strings:
//
//	import (
//	    "github.com/arloliu/bitpack"
//	    "github.com/arloliu/bitpack/codec"
//	    "github.com/arloliu/bitpack/message"
//	)
//
//	names := message.NewUnsizedList[uint16, string](
//	    message.ValueBE[uint16](), message.NullTerminatedString{})
//
//	view, _ := message.NewListView[string](message.NullTerminatedString{}, "a", "b")
//	data, _ := bitpack.Encode[message.ListView[string]](names, view)
//
//	decoded, n, _ := bitpack.Decode[message.ListView[string]](names, data)
//	for name, err := range decoded.All() {
//	    ...
//	}
//
// Reading a 12-bit big-endian field:
//
//	v := codec.ReadBits[uint16](codec.BitBE, []byte{0xAB, 0xF0}, 0, 12) // 0xABF
//
// # Package Structure
//
// This package provides one-shot helpers over byte slices. The building blocks live in
// the sub-packages:
//
//   - buffer: read-only View and single-owner Writer
//   - codec: scalar, byte, bit and fixed-stride array codecs
//   - message: the Message envelope and all framing combinators
//   - bitcast: reinterpretation of unsigned bits as signed integers and floats
//   - endian: byte order engines
//   - errs: the errors every decoder and encoder reports
package bitpack

import (
	"fmt"
	"io"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/message"
)

// Decode decodes a T from the start of data.
//
// The returned value may borrow data (array and list views, raw remainders), so data
// must not be modified while the value is in use. Trailing bytes after the value are
// not an error.
//
// Parameters:
//   - d: Decoder of the value
//   - data: Input bytes
//
// Returns:
//   - T: The decoded value
//   - int: Number of bytes consumed from data
//   - error: Decoding error wrapping one of the errs sentinels
func Decode[T any](d message.Decoder[T], data []byte) (T, int, error) {
	m, err := d.Decode(buffer.Wrap(data))
	if err != nil {
		var zero T
		return zero, 0, err
	}

	return m.Value(), m.Size(), nil
}

// DecodeExact decodes a T that must span all of data.
//
// It fails with errs.ErrTrailingBytes when the value ends before data does.
func DecodeExact[T any](d message.Decoder[T], data []byte) (T, error) {
	v, n, err := Decode(d, data)
	if err != nil {
		return v, err
	}

	if n != len(data) {
		var zero T
		return zero, fmt.Errorf("%d of %d bytes left over: %w", len(data)-n, len(data), errs.ErrTrailingBytes)
	}

	return v, nil
}

// Encode encodes v into a new byte slice.
//
// Parameters:
//   - e: Encoder of the value
//   - v: Value to encode
//
// Returns:
//   - []byte: The encoded bytes, owned by the caller
//   - error: Encoding error wrapping one of the errs sentinels
func Encode[T any](e message.Encoder[T], v T) ([]byte, error) {
	w := buffer.NewWriter()
	if err := e.Encode(w, v); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// AppendEncode appends the encoding of v to dst and returns the extended slice.
//
// On failure dst is returned unchanged in length, although bytes past len(dst) in its
// backing array may have been overwritten.
func AppendEncode[T any](dst []byte, e message.Encoder[T], v T) ([]byte, error) {
	w := buffer.WrapWriter(dst)
	w.Seek(w.Len())

	if err := e.Encode(w, v); err != nil {
		return dst, err
	}

	return w.Bytes(), nil
}

// EncodeTo encodes v and writes the bytes to dst.
//
// The value is staged in a pooled buffer, so nothing is written to dst if encoding fails.
func EncodeTo[T any](dst io.Writer, e message.Encoder[T], v T) (int64, error) {
	w := buffer.AcquireWriter()
	defer w.Release()

	if err := e.Encode(w, v); err != nil {
		return 0, err
	}

	return w.WriteTo(dst)
}

// SizeOf returns the number of bytes e writes for v.
func SizeOf[T any](e message.Encoder[T], v T) (int, error) {
	return message.SizeOf(e, v)
}
