package message

import (
	"fmt"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/errs"
)

// Cursor threads a byte offset through the fields of a record.
//
// Each Next decodes one field at the current offset and advances by the field's size:
//
//	cur := message.NewCursor(in)
//	kind, _, err := message.Next(cur, message.ValueLE[uint8]())
//	...
//	body, _, err := message.NextWith(cur, shapes, uint64(kind))
//	return message.NewMessage(cur.Consumed(), record), nil
type Cursor struct {
	in  buffer.View
	pos int
}

// NewCursor creates a cursor at the start of in.
func NewCursor(in buffer.View) *Cursor {
	return &Cursor{in: in}
}

// Next decodes the field at the cursor with d and advances past it.
// It returns the field's offset relative to the cursor's input.
func Next[T any](c *Cursor, d Decoder[T]) (T, FieldOffset, error) {
	m, err := d.Decode(c.in.SliceFrom(c.pos))
	if err != nil {
		var zero T
		return zero, FieldOffset{}, fmt.Errorf("field at offset %d: %w", c.pos, err)
	}

	off := FieldOffset{Start: c.pos, End: c.pos + m.Size()}
	c.pos = off.End

	return m.Value(), off, nil
}

// NextWith decodes the union field at the cursor under disc and advances past it.
func NextWith[T any](c *Cursor, u *Union[T], disc uint64) (T, FieldOffset, error) {
	return Next(c, u.With(disc))
}

// Skip advances the cursor by n bytes, failing with errs.ErrTruncated if fewer remain.
// Panics if n is negative.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("message: negative skip %d", n))
	}
	if n > c.in.Size()-c.pos {
		return truncated(fmt.Sprintf("skip at offset %d", c.pos), n, c.in.Size()-c.pos)
	}
	c.pos += n

	return nil
}

// Consumed returns the number of bytes decoded so far.
func (c *Cursor) Consumed() int {
	return c.pos
}

// Rest returns the input after the cursor.
func (c *Cursor) Rest() buffer.View {
	return c.in.SliceFrom(c.pos)
}

// ExpectEnd fails with errs.ErrTrailingBytes when input remains after the cursor.
func (c *Cursor) ExpectEnd() error {
	if left := c.in.Size() - c.pos; left > 0 {
		return fmt.Errorf("%d unexpected trailing bytes: %w", left, errs.ErrTrailingBytes)
	}

	return nil
}
