package message

import (
	"fmt"
	"slices"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/internal/options"
)

// UnionOption registers a variant on a Union.
type UnionOption[T any] = options.Option[*Union[T]]

type variant[T any] struct {
	decode func(in buffer.View) (Message[T], error)
	match  func(v T) bool
	encode func(out *buffer.Writer, v T) error
}

// Union dispatches to one of several variant codecs by a discriminant.
//
// The union carries no inline tag: the discriminant is a field decoded elsewhere in the
// containing record and passed to DecodeWith and EncodeWith. The dispatch table is fixed
// at construction and safe for concurrent use.
type Union[T any] struct {
	variants map[uint64]variant[T]
}

// NewUnion creates a union from its variants. Registering a discriminant twice fails.
func NewUnion[T any](opts ...UnionOption[T]) (*Union[T], error) {
	u := &Union[T]{variants: make(map[uint64]variant[T], len(opts))}
	if err := options.Apply(u, opts...); err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}

	return u, nil
}

func (u *Union[T]) register(disc uint64, v variant[T]) error {
	if _, exists := u.variants[disc]; exists {
		return fmt.Errorf("discriminant %d registered twice", disc)
	}
	u.variants[disc] = v

	return nil
}

// Case registers variant disc, whose payload is a V encoded with c.
//
// wrap turns a decoded V into the union value. unwrap extracts the V from a union value
// and reports false when the value is a different variant.
func Case[T, V any](disc uint64, c Codec[V], wrap func(V) T, unwrap func(T) (V, bool)) UnionOption[T] {
	return options.New(func(u *Union[T]) error {
		return u.register(disc, variant[T]{
			decode: func(in buffer.View) (Message[T], error) {
				m, err := c.Decode(in)
				if err != nil {
					return Message[T]{}, err
				}

				return Map(m, wrap), nil
			},
			match: func(v T) bool {
				_, ok := unwrap(v)
				return ok
			},
			encode: func(out *buffer.Writer, v T) error {
				payload, _ := unwrap(v)
				return c.Encode(out, payload)
			},
		})
	})
}

// Null registers disc as the null variant: it decodes to the zero T from zero bytes and
// encodes nothing. isNull reports whether a value is the null variant; a nil isNull
// accepts any value.
func Null[T any](disc uint64, isNull func(T) bool) UnionOption[T] {
	return options.New(func(u *Union[T]) error {
		return u.register(disc, variant[T]{
			decode: func(buffer.View) (Message[T], error) {
				var zero T
				return NewMessage(0, zero), nil
			},
			match: func(v T) bool {
				return isNull == nil || isNull(v)
			},
			encode: func(*buffer.Writer, T) error {
				return nil
			},
		})
	})
}

// DecodeWith decodes the variant selected by disc.
// An unregistered discriminant fails with a *errs.DiscriminantError.
func (u *Union[T]) DecodeWith(in buffer.View, disc uint64) (Message[T], error) {
	v, ok := u.variants[disc]
	if !ok {
		return Message[T]{}, errs.NewDiscriminantError(disc)
	}

	m, err := v.decode(in)
	if err != nil {
		return Message[T]{}, fmt.Errorf("union variant %d: %w", disc, err)
	}

	return m, nil
}

// EncodeWith encodes v as the variant selected by disc.
//
// It fails with a *errs.DiscriminantError when disc is unregistered or v is not of the
// variant disc selects.
func (u *Union[T]) EncodeWith(out *buffer.Writer, disc uint64, v T) error {
	vr, ok := u.variants[disc]
	if !ok {
		return errs.NewDiscriminantError(disc)
	}

	if !vr.match(v) {
		return errs.NewDiscriminantError(disc)
	}
	if err := vr.encode(out, v); err != nil {
		return fmt.Errorf("union variant %d: %w", disc, err)
	}

	return nil
}

// Discriminant returns the discriminant of the variant v belongs to.
//
// Variants are tried in ascending discriminant order. The null variant with a nil
// isNull matches every value, so register it with a predicate when values must be told
// apart.
func (u *Union[T]) Discriminant(v T) (uint64, error) {
	discs := make([]uint64, 0, len(u.variants))
	for d := range u.variants {
		discs = append(discs, d)
	}
	slices.Sort(discs)

	for _, d := range discs {
		if u.variants[d].match(v) {
			return d, nil
		}
	}

	return 0, fmt.Errorf("value matches no variant: %w", errs.ErrInvalidUnionDiscriminant)
}

// With returns a codec bound to one discriminant, for use where a plain Codec is
// expected, such as list items whose discriminant is known from the record header.
func (u *Union[T]) With(disc uint64) Codec[T] {
	return boundUnion[T]{u: u, disc: disc}
}

type boundUnion[T any] struct {
	u    *Union[T]
	disc uint64
}

func (b boundUnion[T]) Decode(in buffer.View) (Message[T], error) {
	return b.u.DecodeWith(in, b.disc)
}

func (b boundUnion[T]) Encode(out *buffer.Writer, v T) error {
	return b.u.EncodeWith(out, b.disc, v)
}
