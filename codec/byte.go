package codec

import (
	"fmt"

	"github.com/arloliu/bitpack/endian"
)

// registerSize is the byte width of the staging register used for unaligned access.
const registerSize = 8

// ByteCodec reads and writes whole-byte scalars in one byte order.
//
// A ByteCodec is a stateless strategy value: pick LE or BE at the call site.
type ByteCodec struct {
	engine    endian.EndianEngine
	bigEndian bool
}

var (
	// LE is the little-endian byte codec.
	LE = NewByteCodec(endian.GetLittleEndianEngine())
	// BE is the big-endian byte codec.
	BE = NewByteCodec(endian.GetBigEndianEngine())
)

// NewByteCodec creates a byte codec on top of engine.
func NewByteCodec(engine endian.EndianEngine) ByteCodec {
	return ByteCodec{
		engine:    engine,
		bigEndian: endian.IsBigEndianEngine(engine),
	}
}

// Engine returns the endian engine the codec encodes with.
func (c ByteCodec) Engine() endian.EndianEngine {
	return c.engine
}

// IsBigEndian reports whether the codec orders bytes most significant first.
func (c ByteCodec) IsBigEndian() bool {
	return c.bigEndian
}

func (c ByteCodec) String() string {
	if c.bigEndian {
		return "BE"
	}

	return "LE"
}

// load returns the numeric value of window in the codec's byte order.
//
// Windows of 1, 2, 4 or 8 bytes are read directly. Other lengths are staged through a
// zeroed 8-byte register: little-endian windows fill it from index 0, big-endian
// windows are right-aligned, so in both cases the register holds the window's value.
func (c ByteCodec) load(window []byte) uint64 {
	switch n := len(window); n {
	case 0:
		return 0
	case 1:
		return uint64(window[0])
	case 2:
		return uint64(c.engine.Uint16(window))
	case 4:
		return uint64(c.engine.Uint32(window))
	case registerSize:
		return c.engine.Uint64(window)
	default:
		checkWindow(n)

		var reg [registerSize]byte
		copy(reg[c.stagingOffset(n):], window)

		return c.engine.Uint64(reg[:])
	}
}

// store writes the low len(window) bytes of v into window in the codec's byte order.
func (c ByteCodec) store(window []byte, v uint64) {
	switch n := len(window); n {
	case 0:
	case 1:
		window[0] = uint8(v)
	case 2:
		c.engine.PutUint16(window, uint16(v))
	case 4:
		c.engine.PutUint32(window, uint32(v))
	case registerSize:
		c.engine.PutUint64(window, v)
	default:
		checkWindow(n)

		var reg [registerSize]byte
		c.engine.PutUint64(reg[:], v)
		off := c.stagingOffset(n)
		copy(window, reg[off:off+n])
	}
}

func (c ByteCodec) stagingOffset(n int) int {
	if c.bigEndian {
		return registerSize - n
	}

	return 0
}

func checkWindow(n int) {
	if n > registerSize {
		panic(fmt.Sprintf("codec: window of %d bytes exceeds the %d-byte register", n, registerSize))
	}
}

// lowBytesMask returns a mask covering the low n bytes of a uint64.
func lowBytesMask(n int) uint64 {
	if n >= registerSize {
		return ^uint64(0)
	}

	return uint64(1)<<(uint(n)*8) - 1
}

// Read decodes a T from window.
//
// When len(window) equals Width[T]() the bytes are read directly. Otherwise the window is
// staged through the 8-byte register and the result is truncated to T, so a 3-byte
// window yields its 24-bit value as a uint32, and a 4-byte window read as uint16 keeps
// the low-order 16 bits. An empty window reads as zero.
//
// Panics if the window is longer than 8 bytes.
func Read[T Scalar](c ByteCodec, window []byte) T {
	if len(window) == Width[T]() {
		return FromBytes[T](c.engine, window)
	}

	return T(c.load(window))
}

// Write encodes v into window.
//
// When len(window) equals Width[T]() the bytes are written directly. Otherwise the
// window's current bytes are staged, the low-order Width[T]() bytes of the register are
// replaced by v, and only the window's span is copied back. Bytes of v that do not fit
// the window are dropped.
//
// Panics if the window is longer than 8 bytes.
func Write[T Scalar](c ByteCodec, window []byte, v T) {
	if len(window) == Width[T]() {
		PutBytes(c.engine, window, v)
		return
	}

	mask := lowBytesMask(Width[T]())
	reg := c.load(window)
	reg = reg&^mask | uint64(v)&mask
	c.store(window, reg)
}
