package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
	"github.com/arloliu/bitpack/errs"
)

var sampleTexts = []string{"", "hello", "héllo wörld", "日本語テキスト", "emoji 🎉"}

func TestNullTerminatedString_RoundTrip(t *testing.T) {
	for _, s := range sampleTexts {
		data := encode[string](t, NullTerminatedString{}, s)
		require.Len(t, data, len(s)+1)
		require.Equal(t, byte(0), data[len(data)-1])
		require.Equal(t, s, roundTrip[string](t, NullTerminatedString{}, s))
	}
}

func TestNullTerminatedString_StopsAtFirstTerminator(t *testing.T) {
	m, err := NullTerminatedString{}.Decode(buffer.Wrap([]byte("ab\x00cd\x00")))
	require.NoError(t, err)
	require.Equal(t, "ab", m.Value())
	require.Equal(t, 3, m.Size())
}

func TestNullTerminatedString_Errors(t *testing.T) {
	_, err := NullTerminatedString{}.Decode(buffer.Wrap([]byte("no terminator")))
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = NullTerminatedString{}.Decode(buffer.Wrap([]byte{0xC3, 0x28, 0x00}))
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)

	w := buffer.NewWriter()
	require.ErrorIs(t, NullTerminatedString{}.Encode(w, "bad\xff"), errs.ErrInvalidUTF8)
	require.ErrorIs(t, NullTerminatedString{}.Encode(w, "a\x00b"), errs.ErrEmbeddedNull)
	require.Zero(t, w.Len(), "rejected strings write nothing")
}

func TestVarcharString_RoundTrip(t *testing.T) {
	u8 := NewVarcharString[uint8](codec.LE)
	u32 := NewVarcharString[uint32](codec.BE)

	for _, s := range sampleTexts {
		require.Equal(t, s, roundTrip[string](t, u8, s))
		require.Equal(t, s, roundTrip[string](t, u32, s))
	}

	// Length-prefixed text may contain zero bytes.
	require.Equal(t, "a\x00b", roundTrip[string](t, u8, "a\x00b"))
}

func TestVarcharString_Layout(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x02, 'h', 'i'}, encode[string](t, NewVarcharString[uint16](codec.BE), "hi"))
	require.Equal(t, []byte{0x02, 0x00, 'h', 'i'}, encode[string](t, NewVarcharString[uint16](codec.LE), "hi"))
}

func TestVarcharString_Errors(t *testing.T) {
	c := NewVarcharString[uint8](codec.LE)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"missing prefix", nil, errs.ErrTruncated},
		{"short payload", []byte{5, 'a', 'b'}, errs.ErrTruncated},
		{"invalid utf8", []byte{2, 0xC3, 0x28}, errs.ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(buffer.Wrap(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}

	w := buffer.NewWriter()
	require.ErrorIs(t, c.Encode(w, strings.Repeat("x", 256)), errs.ErrLengthOverflow)
	require.ErrorIs(t, c.Encode(w, "\xff"), errs.ErrInvalidUTF8)
	require.Zero(t, w.Len())
}

func TestVarcharString_DecodedValueIsCopy(t *testing.T) {
	data := []byte{3, 'a', 'b', 'c'}
	m, err := NewVarcharString[uint8](codec.LE).Decode(buffer.Wrap(data))
	require.NoError(t, err)

	data[1] = 'z'
	require.Equal(t, "abc", m.Value())
}

func TestOptional_RoundTrip(t *testing.T) {
	opt := NewOptional[uint16](ValueBE[uint16]())

	require.Equal(t, None[uint16](), roundTrip[Opt[uint16]](t, opt, None[uint16]()))
	require.Equal(t, Some[uint16](0xBEEF), roundTrip[Opt[uint16]](t, opt, Some[uint16](0xBEEF)))
	require.Equal(t, Some[uint16](0), roundTrip[Opt[uint16]](t, opt, Some[uint16](0)))

	require.Equal(t, []byte{0x00}, encode[Opt[uint16]](t, opt, None[uint16]()))
	require.Equal(t, []byte{0x01, 0xBE, 0xEF}, encode[Opt[uint16]](t, opt, Some[uint16](0xBEEF)))

	strOpt := NewOptional[string](NullTerminatedString{})
	require.Equal(t, Some("wörld"), roundTrip[Opt[string]](t, strOpt, Some("wörld")))
}

func TestOptional_Decode(t *testing.T) {
	opt := NewOptional[uint8](ValueLE[uint8]())

	m, err := opt.Decode(buffer.Wrap([]byte{0x00, 0xAA}))
	require.NoError(t, err)
	require.Equal(t, 1, m.Size(), "absent value consumes only the presence byte")
	_, present := m.Value().Get()
	require.False(t, present)

	m, err = opt.Decode(buffer.Wrap([]byte{0x05, 0xAA}))
	require.NoError(t, err)
	v, present := m.Value().Get()
	require.True(t, present, "any nonzero presence byte means present")
	require.Equal(t, uint8(0xAA), v)
	require.Equal(t, 2, m.Size())

	_, err = opt.Decode(buffer.View{})
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = opt.Decode(buffer.Wrap([]byte{0x01}))
	require.ErrorIs(t, err, errs.ErrTruncated)
}
