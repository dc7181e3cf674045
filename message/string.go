package message

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
	"github.com/arloliu/bitpack/errs"
)

// NullTerminatedString encodes UTF-8 text followed by a single 0x00 byte.
// The terminator is not part of the decoded value.
//
// Decode and Encode both reject text that is not valid UTF-8 with errs.ErrInvalidUTF8.
type NullTerminatedString struct{}

var (
	_ Codec[string] = NullTerminatedString{}
	_ Codec[string] = VarcharString[uint8]{}
)

func (NullTerminatedString) Decode(in buffer.View) (Message[string], error) {
	idx, ok := in.FindFirst(0)
	if !ok {
		return Message[string]{}, fmt.Errorf("null-terminated string: missing terminator in %d bytes: %w",
			in.Size(), errs.ErrTruncated)
	}

	text := in.SliceTo(idx).Peek()
	if !utf8.Valid(text) {
		return Message[string]{}, fmt.Errorf("null-terminated string: %w", errs.ErrInvalidUTF8)
	}

	return NewMessage(idx+1, string(text)), nil
}

func (NullTerminatedString) Encode(out *buffer.Writer, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("null-terminated string: %w", errs.ErrInvalidUTF8)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("null-terminated string: %w", errs.ErrEmbeddedNull)
	}

	out.MustWriteString(s)

	return out.WriteByte(0)
}

// VarcharString encodes UTF-8 text preceded by its byte length.
//
// The length prefix is a scalar of type S in the byte order chosen at construction.
// There is no terminator, so the text may contain zero bytes.
type VarcharString[S codec.Scalar] struct {
	prefix Value[S]
}

// NewVarcharString creates a length-prefixed string codec with an S-sized prefix in c's
// byte order.
func NewVarcharString[S codec.Scalar](c codec.ByteCodec) VarcharString[S] {
	return VarcharString[S]{prefix: NewValue[S](c)}
}

func (v VarcharString[S]) Decode(in buffer.View) (Message[string], error) {
	m, err := v.prefix.Decode(in)
	if err != nil {
		return Message[string]{}, fmt.Errorf("string length: %w", err)
	}

	hdr := m.Size()
	n, ok := codec.ToInt(m.Value())
	if !ok || n > in.Size()-hdr {
		return Message[string]{}, fmt.Errorf("string of %d bytes: %w", m.Value(), errs.ErrTruncated)
	}

	text := in.Slice(hdr, hdr+n).Peek()
	if !utf8.Valid(text) {
		return Message[string]{}, fmt.Errorf("length-prefixed string: %w", errs.ErrInvalidUTF8)
	}

	return NewMessage(hdr+n, string(text)), nil
}

func (v VarcharString[S]) Encode(out *buffer.Writer, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("length-prefixed string: %w", errs.ErrInvalidUTF8)
	}

	n, ok := codec.FromInt[S](len(s))
	if !ok {
		return fmt.Errorf("string of %d bytes with a %d-byte prefix: %w",
			len(s), v.prefix.FixedSize(), errs.ErrLengthOverflow)
	}

	if err := v.prefix.Encode(out, n); err != nil {
		return err
	}
	out.MustWriteString(s)

	return nil
}
