// Package message provides the framing combinators of the wire format.
//
// Every combinator decodes from a buffer.View and returns a Message: the value and the
// number of bytes consumed. Records are decoded by composing combinators at a
// monotonically advancing offset, usually through a Cursor.
//
// # Combinators
//
//   - Value, Bool, Cast: fixed-width scalars, booleans, floats and signed integers
//   - Optional: a presence byte followed by the value when present
//   - NullTerminatedString, VarcharString: UTF-8 text, terminated or length-prefixed
//   - Array: count prefix and fixed-size items, indexable in O(1)
//   - UnsizedList, SizedList, TrailingList: count prefix and variable-size items
//   - Union: a variant selected by a discriminant decoded elsewhere in the record
//   - Remainder: the rest of the input as raw bytes
//
// # Borrowing
//
// Decoded strings are copies. Array and list views, and Remainder values, borrow the
// input view and must not outlive the bytes behind it.
//
// # Errors
//
// Decode failures wrap errs.ErrTruncated, errs.ErrInvalidUTF8 or
// errs.ErrInvalidUnionDiscriminant. Encoders additionally report
// errs.ErrLengthOverflow when a count or length does not fit its prefix, and
// errs.ErrEmbeddedNull for a null-terminated string holding a zero byte. Combinators
// never recover from a child's error: the first failure aborts the whole operation.
package message
