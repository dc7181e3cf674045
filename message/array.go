package message

import (
	"fmt"
	"iter"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
	"github.com/arloliu/bitpack/errs"
)

// decodeCount reads a count prefix and returns the count and the prefix size.
func decodeCount[C codec.Scalar](count Value[C], in buffer.View, what string) (int, int, error) {
	m, err := count.Decode(in)
	if err != nil {
		return 0, 0, fmt.Errorf("%s count: %w", what, err)
	}

	n, ok := codec.ToInt(m.Value())
	if !ok {
		return 0, 0, fmt.Errorf("%s count %d: %w", what, m.Value(), errs.ErrTruncated)
	}

	return n, m.Size(), nil
}

// encodeCount writes n as a C count prefix.
func encodeCount[C codec.Scalar](count Value[C], out *buffer.Writer, n int, what string) error {
	c, ok := codec.FromInt[C](n)
	if !ok {
		return fmt.Errorf("%s count %d with a %d-byte prefix: %w", what, n, count.FixedSize(), errs.ErrLengthOverflow)
	}

	return count.Encode(out, c)
}

// Array frames a count prefix followed by count fixed-size items laid out back to back.
//
// Decoding does not parse items: it checks that the whole item region is present and
// returns an ArrayView over it with O(1) indexed access. Encode takes a view, so arrays
// nest inside other combinators; EncodeItems encodes a plain slice.
type Array[C codec.Scalar, T any] struct {
	count Value[C]
	item  FixedCodec[T]
}

// NewArray creates an array codec with a C count prefix and fixed-size items.
func NewArray[C codec.Scalar, T any](count Value[C], item FixedCodec[T]) Array[C, T] {
	return Array[C, T]{count: count, item: item}
}

func (a Array[C, T]) Decode(in buffer.View) (Message[ArrayView[T]], error) {
	n, hdr, err := decodeCount(a.count, in, "array")
	if err != nil {
		return Message[ArrayView[T]]{}, err
	}

	itemSize := a.item.FixedSize()
	avail := in.Size() - hdr
	if itemSize > 0 && n > avail/itemSize {
		return Message[ArrayView[T]]{}, fmt.Errorf("array of %d items of %d bytes, %d bytes left: %w",
			n, itemSize, avail, errs.ErrTruncated)
	}

	size := n * itemSize
	view := ArrayView[T]{
		item:   a.item,
		region: in.Slice(hdr, hdr+size),
		count:  n,
	}

	return NewMessage(hdr+size, view), nil
}

// EncodeItems writes the count prefix followed by every item.
func (a Array[C, T]) EncodeItems(out *buffer.Writer, items []T) error {
	if err := encodeCount(a.count, out, len(items), "array"); err != nil {
		return err
	}

	for i, item := range items {
		if err := a.item.Encode(out, item); err != nil {
			return fmt.Errorf("array item %d: %w", i, err)
		}
	}

	return nil
}

// Encode writes the count prefix and copies the view's item region verbatim.
func (a Array[C, T]) Encode(out *buffer.Writer, v ArrayView[T]) error {
	if err := encodeCount(a.count, out, v.count, "array"); err != nil {
		return err
	}
	out.MustWrite(v.region.Peek())

	return nil
}

// ArrayView is a view over the item region of an array.
//
// Views returned by Decode borrow the input; views built by NewArrayView own their bytes.
type ArrayView[T any] struct {
	item   FixedCodec[T]
	region buffer.View
	count  int
}

// NewArrayView encodes items into a new, owned item region.
func NewArrayView[T any](item FixedCodec[T], items ...T) (ArrayView[T], error) {
	w := buffer.NewWriter(buffer.WithCapacity(len(items) * item.FixedSize()))
	for i, v := range items {
		if err := item.Encode(w, v); err != nil {
			return ArrayView[T]{}, fmt.Errorf("array item %d: %w", i, err)
		}
	}

	return ArrayView[T]{item: item, region: w.View(), count: len(items)}, nil
}

// Len returns the number of items.
func (v ArrayView[T]) Len() int {
	return v.count
}

// Get decodes the item at index. Panics if index is out of range.
func (v ArrayView[T]) Get(index int) (T, error) {
	if index < 0 || index >= v.count {
		panic(fmt.Sprintf("message: array index %d out of range [0:%d]", index, v.count))
	}

	size := v.item.FixedSize()
	m, err := v.item.Decode(v.region.Slice(index*size, (index+1)*size))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("array item %d: %w", index, err)
	}

	return m.Value(), nil
}

// All iterates over the items in order. Iteration stops after the first error.
func (v ArrayView[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := range v.count {
			item, err := v.Get(i)
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// Items decodes every item into a new slice.
func (v ArrayView[T]) Items() ([]T, error) {
	items := make([]T, 0, v.count)
	for item, err := range v.All() {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Raw returns the item region without the count prefix.
func (v ArrayView[T]) Raw() buffer.View {
	return v.region
}
