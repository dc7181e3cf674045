package bitcast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegerRoundTrip(t *testing.T) {
	require.Equal(t, int8(-1), Int8(0xFF))
	require.Equal(t, uint8(0x80), Uint8(math.MinInt8))
	require.Equal(t, int16(-2), Int16(0xFFFE))
	require.Equal(t, uint16(0x7FFF), Uint16(math.MaxInt16))
	require.Equal(t, int32(math.MinInt32), Int32(0x80000000))
	require.Equal(t, uint32(0xFFFFFFFF), Uint32(-1))
	require.Equal(t, int64(-3), Int64(0xFFFFFFFFFFFFFFFD))
	require.Equal(t, uint64(0x8000000000000000), Uint64(math.MinInt64))

	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 123456789} {
		require.Equal(t, v, Int64(Uint64(v)))
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, v := range []float32{0, -0.5, 1.25, math.MaxFloat32, float32(math.Inf(-1))} {
		require.Equal(t, v, Float32(Float32Bits(v)))
	}
	for _, v := range []float64{0, -0.5, math.Pi, math.SmallestNonzeroFloat64, math.Inf(1)} {
		require.Equal(t, v, Float64(Float64Bits(v)))
	}

	require.Equal(t, uint32(0x3F800000), Float32Bits(1.0))
	require.Equal(t, uint64(0x3FF0000000000000), Float64Bits(1.0))
	require.True(t, math.IsNaN(Float64(0x7FF8000000000001)))
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		name    string
		raw     uint64
		bitSize int
		want    int64
	}{
		{"4-bit minus one", 0xF, 4, -1},
		{"4-bit min", 0x8, 4, -8},
		{"4-bit max", 0x7, 4, 7},
		{"12-bit negative", 0x800, 12, -2048},
		{"1-bit set", 1, 1, -1},
		{"ignores high bits", 0xF0 | 0x3, 4, 3},
		{"64-bit", math.MaxUint64, 64, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SignExtend(tt.raw, tt.bitSize))
		})
	}
}

func TestTruncateInvertsSignExtend(t *testing.T) {
	for bitSize := 1; bitSize <= 64; bitSize++ {
		lo := int64(-1) << uint(bitSize-1)
		hi := -(lo + 1)
		for _, v := range []int64{lo, -1, 0, hi} {
			require.Equal(t, v, SignExtend(Truncate(v, bitSize), bitSize), "bitSize=%d v=%d", bitSize, v)
		}
	}
}

func TestSignExtend_PanicsOnInvalidSize(t *testing.T) {
	require.Panics(t, func() { SignExtend(1, 0) })
	require.Panics(t, func() { SignExtend(1, 65) })
	require.Panics(t, func() { Truncate(1, 0) })
}
