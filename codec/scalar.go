package codec

import (
	"math"
	"math/bits"

	"github.com/arloliu/bitpack/endian"
)

// Scalar is the set of fixed-width unsigned integers the codecs read and write.
//
// Signed integers and floats are handled by reinterpreting a Scalar's bits with the
// bitcast package.
type Scalar interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the natural byte width of T: 1, 2, 4 or 8.
func Width[T Scalar]() int {
	return bits.OnesCount64(uint64(^T(0))) / 8
}

// ToUint widens v to a uint64.
func ToUint[T Scalar](v T) uint64 {
	return uint64(v)
}

// FromUint narrows v to T. The second result is false if v does not fit.
func FromUint[T Scalar](v uint64) (T, bool) {
	t := T(v)
	return t, uint64(t) == v
}

// ToInt converts v to a machine-sized int, as used for counts and byte lengths.
// The second result is false if v exceeds math.MaxInt.
func ToInt[T Scalar](v T) (int, bool) {
	u := uint64(v)
	if u > math.MaxInt {
		return 0, false
	}

	return int(u), true
}

// FromInt converts a machine-sized count or length to T.
// The second result is false if n is negative or does not fit T.
func FromInt[T Scalar](n int) (T, bool) {
	if n < 0 {
		return 0, false
	}

	return FromUint[T](uint64(n))
}

// FromBytes decodes T from the first Width[T]() bytes of b in engine's byte order.
// Panics if b is shorter than Width[T]().
func FromBytes[T Scalar](engine endian.EndianEngine, b []byte) T {
	switch Width[T]() {
	case 1:
		return T(b[0])
	case 2:
		return T(engine.Uint16(b))
	case 4:
		return T(engine.Uint32(b))
	default:
		return T(engine.Uint64(b))
	}
}

// PutBytes encodes v into the first Width[T]() bytes of b in engine's byte order.
// Panics if b is shorter than Width[T]().
func PutBytes[T Scalar](engine endian.EndianEngine, b []byte, v T) {
	switch Width[T]() {
	case 1:
		b[0] = uint8(v)
	case 2:
		engine.PutUint16(b, uint16(v))
	case 4:
		engine.PutUint32(b, uint32(v))
	default:
		engine.PutUint64(b, uint64(v))
	}
}

// AppendBytes appends the Width[T]() byte encoding of v to dst in engine's byte order.
func AppendBytes[T Scalar](engine endian.EndianEngine, dst []byte, v T) []byte {
	switch Width[T]() {
	case 1:
		return append(dst, uint8(v))
	case 2:
		return engine.AppendUint16(dst, uint16(v))
	case 4:
		return engine.AppendUint32(dst, uint32(v))
	default:
		return engine.AppendUint64(dst, uint64(v))
	}
}
