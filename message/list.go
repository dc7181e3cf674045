package message

import (
	"fmt"
	"iter"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
	"github.com/arloliu/bitpack/errs"
)

// ListView is a view over the item region of a list.
//
// Views returned by Decode borrow the input and views from a ListBuilder borrow the
// builder; views built by NewListView own their bytes.
//
// Items are decoded lazily: every traversal walks the region from its start and
// nothing is cached, so each enumeration costs O(n).
type ListView[T any] struct {
	item   Decoder[T]
	region buffer.View
	count  int
}

// NewListView encodes items into a new, owned item region.
func NewListView[T any](item Codec[T], items ...T) (ListView[T], error) {
	w := buffer.NewWriter()
	if err := encodeItems(item, w, items); err != nil {
		return ListView[T]{}, err
	}

	return ListView[T]{item: item, region: w.View(), count: len(items)}, nil
}

// Len returns the number of items declared by the count prefix.
func (v ListView[T]) Len() int {
	return v.count
}

// Raw returns the item region without any prefix.
func (v ListView[T]) Raw() buffer.View {
	return v.region
}

// maxEmptyItems bounds how many zero-size items a list may declare after its last
// non-empty one.
const maxEmptyItems = 1 << 16

// walk decodes items in order and calls fn with each item and its offset in the region.
//
// Once an item consumes no bytes, every later item decodes from the same position, so
// the rest are repeated rather than decoded again.
func (v ListView[T]) walk(fn func(item T, off FieldOffset) bool) error {
	pos := 0
	for i := range v.count {
		m, err := v.item.Decode(v.region.SliceFrom(pos))
		if err != nil {
			return fmt.Errorf("list item %d: %w", i, err)
		}

		off := FieldOffset{Start: pos, End: pos + m.Size()}
		if m.Size() == 0 {
			return v.repeatEmpty(i, m.Value(), off, fn)
		}

		pos = off.End
		if !fn(m.Value(), off) {
			return nil
		}
	}

	return nil
}

func (v ListView[T]) repeatEmpty(first int, item T, off FieldOffset, fn func(item T, off FieldOffset) bool) error {
	if rest := v.count - first; rest > maxEmptyItems {
		return fmt.Errorf("list item %d: %d zero-size items: %w", first, rest, errs.ErrTooManyItems)
	}

	for range v.count - first {
		if !fn(item, off) {
			return nil
		}
	}

	return nil
}

// capHint is a slice capacity for count items that the region could actually hold.
func (v ListView[T]) capHint() int {
	return min(v.count, v.region.Size())
}

// All iterates over the items in order. Iteration stops after the first error.
func (v ListView[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		err := v.walk(func(item T, _ FieldOffset) bool {
			return yield(item, nil)
		})
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Items decodes every item into a new slice.
func (v ListView[T]) Items() ([]T, error) {
	items := make([]T, 0, v.capHint())
	err := v.walk(func(item T, _ FieldOffset) bool {
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Offsets returns the byte range of every item relative to the item region.
func (v ListView[T]) Offsets() ([]FieldOffset, error) {
	offsets := make([]FieldOffset, 0, v.capHint())
	err := v.walk(func(_ T, off FieldOffset) bool {
		offsets = append(offsets, off)
		return true
	})
	if err != nil {
		return nil, err
	}

	return offsets, nil
}

// ListBuilder accumulates the item region of a list one item at a time.
//
// Each successful WriteItem increments the count. A failed item is rolled back, so the
// region only ever holds whole items. The builder's storage is pooled: call Release
// when done.
type ListBuilder[T any] struct {
	item  Codec[T]
	w     *buffer.Writer
	count int
}

// NewListBuilder creates an empty builder encoding items with item.
func NewListBuilder[T any](item Codec[T], opts ...buffer.WriterOption) *ListBuilder[T] {
	return &ListBuilder[T]{
		item: item,
		w:    buffer.AcquireWriter(opts...),
	}
}

// WriteItem appends one item.
func (b *ListBuilder[T]) WriteItem(v T) error {
	start := b.w.Len()
	if err := b.item.Encode(b.w, v); err != nil {
		b.w.Truncate(start)
		return fmt.Errorf("list item %d: %w", b.count, err)
	}
	b.count++

	return nil
}

// WriteItems appends items in order and stops at the first failure.
func (b *ListBuilder[T]) WriteItems(items ...T) error {
	for _, v := range items {
		if err := b.WriteItem(v); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of items written.
func (b *ListBuilder[T]) Len() int {
	return b.count
}

// Bytes returns the item region as a borrow valid until the next write.
func (b *ListBuilder[T]) Bytes() []byte {
	return b.w.Bytes()
}

// View returns the items written so far as a list view borrowing the builder's storage.
func (b *ListBuilder[T]) View() ListView[T] {
	return ListView[T]{item: b.item, region: b.w.View(), count: b.count}
}

// Reset empties the builder and keeps its storage.
func (b *ListBuilder[T]) Reset() {
	b.w.Clear()
	b.count = 0
}

// Release returns the builder's storage to the pool. The builder must not be used afterwards.
func (b *ListBuilder[T]) Release() {
	b.w.Release()
}

func encodeItems[T any](item Encoder[T], out *buffer.Writer, items []T) error {
	for i, v := range items {
		if err := item.Encode(out, v); err != nil {
			return fmt.Errorf("list item %d: %w", i, err)
		}
	}

	return nil
}

// UnsizedList frames a count prefix followed by count variable-size items.
//
// The total byte length is only known after walking every item, so Decode walks the
// items once to find it. The returned view covers exactly the item region.
type UnsizedList[C codec.Scalar, T any] struct {
	count Value[C]
	item  Codec[T]
}

// NewUnsizedList creates an unsized list codec.
func NewUnsizedList[C codec.Scalar, T any](count Value[C], item Codec[T]) UnsizedList[C, T] {
	return UnsizedList[C, T]{count: count, item: item}
}

func (l UnsizedList[C, T]) Decode(in buffer.View) (Message[ListView[T]], error) {
	n, hdr, err := decodeCount(l.count, in, "list")
	if err != nil {
		return Message[ListView[T]]{}, err
	}

	scan := ListView[T]{item: l.item, region: in.SliceFrom(hdr), count: n}
	size := 0
	err = scan.walk(func(_ T, off FieldOffset) bool {
		size = off.End
		return true
	})
	if err != nil {
		return Message[ListView[T]]{}, err
	}

	view := ListView[T]{item: l.item, region: in.Slice(hdr, hdr+size), count: n}

	return NewMessage(hdr+size, view), nil
}

// EncodeItems writes the count prefix followed by every item.
func (l UnsizedList[C, T]) EncodeItems(out *buffer.Writer, items []T) error {
	if err := encodeCount(l.count, out, len(items), "list"); err != nil {
		return err
	}

	return encodeItems(l.item, out, items)
}

// EncodeBuilder writes the builder's count and item region.
func (l UnsizedList[C, T]) EncodeBuilder(out *buffer.Writer, b *ListBuilder[T]) error {
	return l.Encode(out, b.View())
}

// Encode writes the count prefix and copies the view's item region verbatim.
func (l UnsizedList[C, T]) Encode(out *buffer.Writer, v ListView[T]) error {
	if err := encodeCount(l.count, out, v.Len(), "list"); err != nil {
		return err
	}
	out.MustWrite(v.Raw().Peek())

	return nil
}

// SizedList frames a count prefix, a byte-length prefix and exactly that many bytes of
// items.
//
// Decode takes the item region without parsing it, so a reader can skip a sized list,
// or trailing structure it does not understand, in O(1).
type SizedList[C, S codec.Scalar, T any] struct {
	count Value[C]
	size  Value[S]
	item  Codec[T]
}

// NewSizedList creates a sized list codec.
func NewSizedList[C, S codec.Scalar, T any](count Value[C], size Value[S], item Codec[T]) SizedList[C, S, T] {
	return SizedList[C, S, T]{count: count, size: size, item: item}
}

func (l SizedList[C, S, T]) Decode(in buffer.View) (Message[ListView[T]], error) {
	n, countSize, err := decodeCount(l.count, in, "sized list")
	if err != nil {
		return Message[ListView[T]]{}, err
	}

	m, err := l.size.Decode(in.SliceFrom(countSize))
	if err != nil {
		return Message[ListView[T]]{}, fmt.Errorf("sized list byte length: %w", err)
	}

	hdr := countSize + m.Size()
	length, ok := codec.ToInt(m.Value())
	if !ok || length > in.Size()-hdr {
		return Message[ListView[T]]{}, fmt.Errorf("sized list of %d bytes, %d bytes left: %w",
			m.Value(), in.Size()-hdr, errs.ErrTruncated)
	}

	view := ListView[T]{item: l.item, region: in.Slice(hdr, hdr+length), count: n}

	return NewMessage(hdr+length, view), nil
}

// EncodeItems writes the count, the byte length and the items. The byte length field is
// written as a placeholder and patched once the items are encoded.
func (l SizedList[C, S, T]) EncodeItems(out *buffer.Writer, items []T) error {
	if err := encodeCount(l.count, out, len(items), "sized list"); err != nil {
		return err
	}

	sizePos := out.Cursor()
	l.size.write(out, 0)
	start := out.Cursor()

	if err := encodeItems(l.item, out, items); err != nil {
		return err
	}

	return l.patchSize(out, sizePos, out.Cursor()-start)
}

func (l SizedList[C, S, T]) patchSize(out *buffer.Writer, pos, length int) error {
	s, ok := codec.FromInt[S](length)
	if !ok {
		return fmt.Errorf("sized list of %d bytes with a %d-byte length: %w",
			length, l.size.FixedSize(), errs.ErrLengthOverflow)
	}
	l.size.put(out.Span(pos, pos+l.size.FixedSize()), s)

	return nil
}

// EncodeBuilder writes the builder's count, byte length and item region.
func (l SizedList[C, S, T]) EncodeBuilder(out *buffer.Writer, b *ListBuilder[T]) error {
	return l.Encode(out, b.View())
}

// Encode writes the count and byte length, then copies the view's item region verbatim.
func (l SizedList[C, S, T]) Encode(out *buffer.Writer, v ListView[T]) error {
	count, region := v.Len(), v.Raw().Peek()
	length, ok := codec.FromInt[S](len(region))
	if !ok {
		return fmt.Errorf("sized list of %d bytes with a %d-byte length: %w",
			len(region), l.size.FixedSize(), errs.ErrLengthOverflow)
	}
	if err := encodeCount(l.count, out, count, "sized list"); err != nil {
		return err
	}
	l.size.write(out, length)
	out.MustWrite(region)

	return nil
}

// TrailingList frames a count prefix followed by items that run to the end of the input.
//
// It is meant for the last field of a record: Decode consumes the whole input and walks
// nothing until the view is enumerated.
type TrailingList[C codec.Scalar, T any] struct {
	count Value[C]
	item  Codec[T]
}

// NewTrailingList creates a trailing list codec.
func NewTrailingList[C codec.Scalar, T any](count Value[C], item Codec[T]) TrailingList[C, T] {
	return TrailingList[C, T]{count: count, item: item}
}

func (l TrailingList[C, T]) Decode(in buffer.View) (Message[ListView[T]], error) {
	n, hdr, err := decodeCount(l.count, in, "trailing list")
	if err != nil {
		return Message[ListView[T]]{}, err
	}

	view := ListView[T]{item: l.item, region: in.SliceFrom(hdr), count: n}

	return NewMessage(in.Size(), view), nil
}

// EncodeItems writes the count prefix followed by every item.
func (l TrailingList[C, T]) EncodeItems(out *buffer.Writer, items []T) error {
	if err := encodeCount(l.count, out, len(items), "trailing list"); err != nil {
		return err
	}

	return encodeItems(l.item, out, items)
}

// Encode writes the count prefix and copies the view's item region verbatim.
func (l TrailingList[C, T]) Encode(out *buffer.Writer, v ListView[T]) error {
	if err := encodeCount(l.count, out, v.Len(), "trailing list"); err != nil {
		return err
	}
	out.MustWrite(v.Raw().Peek())

	return nil
}

// EncodeBuilder writes the builder's count and item region.
func (l TrailingList[C, T]) EncodeBuilder(out *buffer.Writer, b *ListBuilder[T]) error {
	return l.Encode(out, b.View())
}

var (
	_ Codec[ArrayView[uint8]] = Array[uint8, uint8]{}
	_ Codec[ListView[uint8]]  = UnsizedList[uint8, uint8]{}
	_ Codec[ListView[uint8]]  = SizedList[uint8, uint8, uint8]{}
	_ Codec[ListView[uint8]]  = TrailingList[uint8, uint8]{}
	_ Codec[buffer.View]      = Remainder{}
)

// Remainder decodes the rest of the input as a raw, borrowed view.
type Remainder struct{}

func (Remainder) Decode(in buffer.View) (Message[buffer.View], error) {
	return NewMessage(in.Size(), in), nil
}

func (Remainder) Encode(out *buffer.Writer, v buffer.View) error {
	out.MustWrite(v.Peek())
	return nil
}
