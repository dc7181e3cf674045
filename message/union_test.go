package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
	"github.com/arloliu/bitpack/errs"
)

type shape interface{ isShape() }

type circle struct{ Radius uint16 }

type label struct{ Text string }

func (circle) isShape() {}
func (label) isShape()  {}

const (
	shapeNone   = 0
	shapeCircle = 1
	shapeLabel  = 7
)

func newShapeUnion(t *testing.T) *Union[shape] {
	t.Helper()

	u, err := NewUnion(
		Null[shape](shapeNone, func(s shape) bool { return s == nil }),
		Case(shapeCircle, ValueBE[uint16](),
			func(r uint16) shape { return circle{Radius: r} },
			func(s shape) (uint16, bool) {
				c, ok := s.(circle)
				return c.Radius, ok
			}),
		Case(shapeLabel, NewVarcharString[uint8](codec.LE),
			func(text string) shape { return label{Text: text} },
			func(s shape) (string, bool) {
				l, ok := s.(label)
				return l.Text, ok
			}),
	)
	require.NoError(t, err)

	return u
}

func TestUnion_RoundTrip(t *testing.T) {
	u := newShapeUnion(t)

	tests := []struct {
		name  string
		disc  uint64
		value shape
		wire  []byte
	}{
		{"circle", shapeCircle, circle{Radius: 0x0102}, []byte{0x01, 0x02}},
		{"label", shapeLabel, label{Text: "hi"}, []byte{0x02, 'h', 'i'}},
		{"null", shapeNone, nil, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := buffer.NewWriter()
			require.NoError(t, u.EncodeWith(w, tt.disc, tt.value))
			require.Equal(t, tt.wire, w.Bytes())

			m, err := u.DecodeWith(w.View(), tt.disc)
			require.NoError(t, err)
			require.Equal(t, tt.value, m.Value())
			require.Equal(t, len(tt.wire), m.Size())

			disc, err := u.Discriminant(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.disc, disc)
		})
	}
}

func TestUnion_NullConsumesNothing(t *testing.T) {
	u := newShapeUnion(t)

	m, err := u.DecodeWith(buffer.Wrap([]byte{0xAA, 0xBB}), shapeNone)
	require.NoError(t, err)
	require.Equal(t, 0, m.Size())
	require.Nil(t, m.Value())
}

func TestUnion_UnmappedDiscriminant(t *testing.T) {
	u := newShapeUnion(t)

	_, err := u.DecodeWith(buffer.Wrap([]byte{1, 2}), 99)
	require.ErrorIs(t, err, errs.ErrInvalidUnionDiscriminant)

	var discErr *errs.DiscriminantError
	require.True(t, errors.As(err, &discErr))
	require.Equal(t, uint64(99), discErr.Value)

	require.ErrorIs(t, u.EncodeWith(buffer.NewWriter(), 99, circle{}), errs.ErrInvalidUnionDiscriminant)
}

func TestUnion_MismatchedDiscriminant(t *testing.T) {
	u := newShapeUnion(t)
	w := buffer.NewWriter()

	err := u.EncodeWith(w, shapeLabel, circle{Radius: 1})
	require.ErrorIs(t, err, errs.ErrInvalidUnionDiscriminant)

	var discErr *errs.DiscriminantError
	require.True(t, errors.As(err, &discErr))
	require.Equal(t, uint64(shapeLabel), discErr.Value)

	require.ErrorIs(t, u.EncodeWith(w, shapeNone, label{}), errs.ErrInvalidUnionDiscriminant)
	require.Zero(t, w.Len(), "nothing is written on mismatch")
}

func TestUnion_VariantErrorsPropagate(t *testing.T) {
	u := newShapeUnion(t)

	_, err := u.DecodeWith(buffer.Wrap([]byte{0x01}), shapeCircle)
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = u.DecodeWith(buffer.Wrap([]byte{0x01, 0xFF}), shapeLabel)
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestUnion_DuplicateDiscriminant(t *testing.T) {
	_, err := NewUnion(
		Null[shape](3, nil),
		Case(3, Bool{}, func(bool) shape { return nil }, func(shape) (bool, bool) { return false, false }),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "registered twice")
}

func TestUnion_With(t *testing.T) {
	u := newShapeUnion(t)
	list := NewUnsizedList[uint8, shape](ValueLE[uint8](), u.With(shapeCircle))

	data := writeWith(t, func(w *buffer.Writer) error {
		return list.EncodeItems(w, []shape{circle{Radius: 1}, circle{Radius: 2}})
	})
	require.Equal(t, []byte{2, 0, 1, 0, 2}, data)

	m, err := list.Decode(buffer.Wrap(data))
	require.NoError(t, err)
	items, err := m.Value().Items()
	require.NoError(t, err)
	require.Equal(t, []shape{circle{Radius: 1}, circle{Radius: 2}}, items)

	w := buffer.NewWriter()
	require.ErrorIs(t, list.EncodeItems(w, []shape{label{}}), errs.ErrInvalidUnionDiscriminant)
}

func TestUnion_DiscriminantUnknownValue(t *testing.T) {
	u, err := NewUnion(
		Case(1, ValueLE[uint8](),
			func(v uint8) shape { return circle{Radius: uint16(v)} },
			func(s shape) (uint8, bool) {
				c, ok := s.(circle)
				return uint8(c.Radius), ok
			}),
	)
	require.NoError(t, err)

	_, err = u.Discriminant(label{})
	require.ErrorIs(t, err, errs.ErrInvalidUnionDiscriminant)
}
