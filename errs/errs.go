// Package errs defines the errors returned by the bitpack decoders and encoders.
//
// Every decode or encode failure wraps one of the sentinel errors below, so callers
// classify failures with errors.Is:
//
//	msg, err := codec.Decode(view)
//	if errors.Is(err, errs.ErrTruncated) {
//	    // need more input
//	}
//
// Errors carry no recovery information. A failed decode has no side effects the
// caller may rely on, and a failed encode leaves already written bytes in place.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when a decode needs more bytes than its input window holds.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidUTF8 is returned when string bytes are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

	// ErrInvalidUnionDiscriminant is returned when a discriminant has no matching union
	// variant, or when an encoded value does not belong to the supplied discriminant.
	// The concrete error is a *DiscriminantError carrying the raw value.
	ErrInvalidUnionDiscriminant = errors.New("invalid union discriminant")

	// ErrEmbeddedNull is returned when a string encoded with a null terminator contains a
	// zero byte, which would end the field early on decode.
	ErrEmbeddedNull = errors.New("string contains a null byte")

	// ErrTrailingBytes is returned by whole-input decodes when bytes remain after the value.
	ErrTrailingBytes = errors.New("unexpected trailing bytes")

	// ErrTooManyItems is returned when a list's count asks for more zero-size items than
	// a decoder will produce from one position of its item region.
	ErrTooManyItems = errors.New("list count exceeds its item region")

	// ErrLengthOverflow is returned by encoders when a count or byte length does not fit
	// the declared width of its prefix field.
	ErrLengthOverflow = errors.New("length exceeds prefix capacity")
)

// DiscriminantError reports an unusable union discriminant.
type DiscriminantError struct {
	// Value is the raw discriminant as decoded from the header field.
	Value uint64
}

// NewDiscriminantError returns a *DiscriminantError for the raw discriminant value.
func NewDiscriminantError(value uint64) *DiscriminantError {
	return &DiscriminantError{Value: value}
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("%s (%d)", ErrInvalidUnionDiscriminant, e.Value)
}

// Is makes errors.Is(err, ErrInvalidUnionDiscriminant) match any DiscriminantError.
func (e *DiscriminantError) Is(target error) bool {
	return target == ErrInvalidUnionDiscriminant
}
