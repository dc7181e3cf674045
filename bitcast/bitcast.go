// Package bitcast reinterprets the bit pattern of fixed-width values.
//
// The byte and bit codecs only produce unsigned integers. Signed integers and
// floating-point numbers are obtained by reinterpreting those bits with the
// functions below. All conversions are defined Go conversions or math.*bits
// calls; none of them relies on pointer punning.
package bitcast

import "math"

// Int8 reinterprets the bits of v as a two's-complement int8.
func Int8(v uint8) int8 { return int8(v) } //nolint:gosec

// Uint8 reinterprets the bits of v as a uint8.
func Uint8(v int8) uint8 { return uint8(v) } //nolint:gosec

// Int16 reinterprets the bits of v as a two's-complement int16.
func Int16(v uint16) int16 { return int16(v) } //nolint:gosec

// Uint16 reinterprets the bits of v as a uint16.
func Uint16(v int16) uint16 { return uint16(v) } //nolint:gosec

// Int32 reinterprets the bits of v as a two's-complement int32.
func Int32(v uint32) int32 { return int32(v) } //nolint:gosec

// Uint32 reinterprets the bits of v as a uint32.
func Uint32(v int32) uint32 { return uint32(v) } //nolint:gosec

// Int64 reinterprets the bits of v as a two's-complement int64.
func Int64(v uint64) int64 { return int64(v) } //nolint:gosec

// Uint64 reinterprets the bits of v as a uint64.
func Uint64(v int64) uint64 { return uint64(v) } //nolint:gosec

// Float32 reinterprets the bits of v as an IEEE 754 binary32 value.
func Float32(v uint32) float32 { return math.Float32frombits(v) }

// Float32Bits returns the IEEE 754 binary32 bit pattern of v.
func Float32Bits(v float32) uint32 { return math.Float32bits(v) }

// Float64 reinterprets the bits of v as an IEEE 754 binary64 value.
func Float64(v uint64) float64 { return math.Float64frombits(v) }

// Float64Bits returns the IEEE 754 binary64 bit pattern of v.
func Float64Bits(v float64) uint64 { return math.Float64bits(v) }

// SignExtend interprets the low bitSize bits of v as a two's-complement number.
//
// Bit-field values are always decoded unsigned; a signed field of declared width
// bitSize is recovered with SignExtend(raw, bitSize). Bits above bitSize are ignored.
//
// Panics if bitSize is not in [1, 64].
func SignExtend(v uint64, bitSize int) int64 {
	if bitSize < 1 || bitSize > 64 {
		panic("bitcast: SignExtend bit size out of range")
	}

	shift := uint(64 - bitSize) //nolint:gosec

	return int64(v<<shift) >> shift //nolint:gosec
}

// Truncate keeps the low bitSize bits of the two's-complement representation of v.
// It is the inverse of SignExtend for values that fit in bitSize bits.
//
// Panics if bitSize is not in [1, 64].
func Truncate(v int64, bitSize int) uint64 {
	if bitSize < 1 || bitSize > 64 {
		panic("bitcast: Truncate bit size out of range")
	}
	if bitSize == 64 {
		return uint64(v) //nolint:gosec
	}

	return uint64(v) & (1<<uint(bitSize) - 1) //nolint:gosec
}
