package codec

import (
	"fmt"

	"github.com/arloliu/bitpack/endian"
)

// BitCodec reads and writes bit-fields of arbitrary width inside a byte window.
//
// A field is addressed by (bitOffset, bitSize). The window is first interpreted as an
// unsigned integer in the codec's byte order, then the field is extracted by shifting:
//
//   - little-endian: bit offsets count from the least significant bit of the window's
//     value, so the field is (value >> bitOffset) & mask.
//   - big-endian: bit offsets count from the most significant bit of the window's first
//     byte, so the field is (value >> (len(window)*8 - bitOffset - bitSize)) & mask.
//
// Field values are always unsigned; use bitcast.SignExtend for signed fields.
type BitCodec struct {
	ByteCodec
}

var (
	// BitLE is the little-endian bit codec.
	BitLE = BitCodec{LE}
	// BitBE is the big-endian bit codec.
	BitBE = BitCodec{BE}
)

// NewBitCodec creates a bit codec on top of engine.
func NewBitCodec(engine endian.EndianEngine) BitCodec {
	return BitCodec{NewByteCodec(engine)}
}

// shift returns how far the field must be shifted right to land in the low bits.
func (c BitCodec) shift(windowLen, bitOffset, bitSize int) uint {
	if c.bigEndian {
		return uint(windowLen*8 - bitOffset - bitSize) //nolint:gosec
	}

	return uint(bitOffset) //nolint:gosec
}

func bitMask(bitSize int) uint64 {
	if bitSize >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<uint(bitSize) - 1
}

func checkBitRange[T Scalar](windowLen, bitOffset, bitSize int) {
	switch {
	case bitSize < 1 || bitSize > Width[T]()*8:
		panic(fmt.Sprintf("codec: bit size %d out of range [1:%d]", bitSize, Width[T]()*8))
	case bitOffset < 0:
		panic(fmt.Sprintf("codec: negative bit offset %d", bitOffset))
	case windowLen > registerSize:
		panic(fmt.Sprintf("codec: bit field window of %d bytes exceeds %d bytes", windowLen, registerSize))
	case bitOffset+bitSize > windowLen*8:
		panic(fmt.Sprintf("codec: bit field [%d:%d) exceeds a %d-bit window", bitOffset, bitOffset+bitSize, windowLen*8))
	}
}

// ReadBits decodes the bitSize-bit field at bitOffset of window.
//
// Windows whose length equals Width[T]() are read directly; others, including fields
// that straddle byte boundaries inside shorter or longer windows, go through the byte
// codec's staging register.
//
// Panics unless 1 <= bitSize <= Width[T]()*8, bitOffset >= 0,
// bitOffset+bitSize <= len(window)*8 and len(window) <= 8.
func ReadBits[T Scalar](c BitCodec, window []byte, bitOffset, bitSize int) T {
	checkBitRange[T](len(window), bitOffset, bitSize)

	var v uint64
	if len(window) == Width[T]() {
		v = uint64(FromBytes[T](c.engine, window))
	} else {
		v = c.load(window)
	}

	return T((v >> c.shift(len(window), bitOffset, bitSize)) & bitMask(bitSize))
}

// WriteBits encodes the low bitSize bits of v into the field at bitOffset of window.
// Bits of the window outside the field are left unchanged.
//
// The preconditions are those of ReadBits.
func WriteBits[T Scalar](c BitCodec, window []byte, bitOffset, bitSize int, v T) {
	checkBitRange[T](len(window), bitOffset, bitSize)

	shift := c.shift(len(window), bitOffset, bitSize)
	mask := bitMask(bitSize)

	if len(window) == Width[T]() {
		cur := uint64(FromBytes[T](c.engine, window))
		cur = cur&^(mask<<shift) | (uint64(v)&mask)<<shift
		PutBytes(c.engine, window, T(cur))

		return
	}

	cur := c.load(window)
	cur = cur&^(mask<<shift) | (uint64(v)&mask)<<shift
	c.store(window, cur)
}
