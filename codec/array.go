package codec

import (
	"fmt"
	"iter"
)

// Array is a fixed-stride accessor over a flat region of equally sized items.
//
// The item width is known from outside the region; there is no count prefix. Items are
// read and written through a ByteCodec, so an item may be narrower than T (a 3-byte item
// read as uint32, for example).
type Array[T Scalar] struct {
	codec    ByteCodec
	itemSize int
	buf      []byte
}

// NewArray creates an accessor over buf for items of itemBitSize bits.
//
// The item count is len(buf) / (itemBitSize/8); trailing bytes that do not form a
// whole item are ignored. Panics unless itemBitSize is a positive multiple of 8 no
// larger than 64.
func NewArray[T Scalar](c ByteCodec, itemBitSize int, buf []byte) Array[T] {
	if itemBitSize <= 0 || itemBitSize%8 != 0 || itemBitSize > registerSize*8 {
		panic(fmt.Sprintf("codec: invalid array item bit size %d", itemBitSize))
	}

	return Array[T]{codec: c, itemSize: itemBitSize / 8, buf: buf}
}

// Len returns the number of items.
func (a Array[T]) Len() int {
	return len(a.buf) / a.itemSize
}

// ItemSize returns the byte width of one item.
func (a Array[T]) ItemSize() int {
	return a.itemSize
}

func (a Array[T]) window(index int) []byte {
	if index < 0 || index >= a.Len() {
		panic(fmt.Sprintf("codec: array index %d out of range [0:%d]", index, a.Len()))
	}
	pos := index * a.itemSize

	return a.buf[pos : pos+a.itemSize]
}

// Get returns the item at index. Panics if index is out of range.
func (a Array[T]) Get(index int) T {
	return Read[T](a.codec, a.window(index))
}

// TryGet returns the item at index, or false if index is out of range.
func (a Array[T]) TryGet(index int) (T, bool) {
	if index < 0 || index >= a.Len() {
		return 0, false
	}

	return a.Get(index), true
}

// Set overwrites the item at index. Panics if index is out of range.
func (a Array[T]) Set(index int, v T) {
	Write(a.codec, a.window(index), v)
}

// All iterates over index/item pairs in order.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range a.Len() {
			if !yield(i, a.Get(i)) {
				return
			}
		}
	}
}

// Bytes returns the whole items region, excluding any trailing partial item.
func (a Array[T]) Bytes() []byte {
	return a.buf[:a.Len()*a.itemSize]
}
