package message

import (
	"fmt"

	"github.com/arloliu/bitpack/buffer"
)

// Opt is a value that may be absent.
type Opt[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Present: true}
}

// None returns an absent Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// Optional frames an inner codec with a presence byte.
//
// Wire layout: one presence byte, 0x00 for absent and 0x01 for present, followed by the
// inner encoding when present. Any nonzero presence byte decodes as present.
type Optional[T any] struct {
	inner Codec[T]
}

// NewOptional creates an optional codec around inner.
func NewOptional[T any](inner Codec[T]) Optional[T] {
	return Optional[T]{inner: inner}
}

func (o Optional[T]) Decode(in buffer.View) (Message[Opt[T]], error) {
	if in.IsEmpty() {
		return Message[Opt[T]]{}, truncated("optional presence byte", 1, 0)
	}
	if in.At(0) == 0 {
		return NewMessage(1, None[T]()), nil
	}

	m, err := o.inner.Decode(in.SliceFrom(1))
	if err != nil {
		return Message[Opt[T]]{}, fmt.Errorf("optional value: %w", err)
	}

	return NewMessage(1+m.Size(), Some(m.Value())), nil
}

func (o Optional[T]) Encode(out *buffer.Writer, v Opt[T]) error {
	if !v.Present {
		return out.WriteByte(0)
	}

	_ = out.WriteByte(1)

	return o.inner.Encode(out, v.Value)
}
