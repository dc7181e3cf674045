// Package options implements generic functional options shared by the buffer and
// message constructors.
package options

import "fmt"

// Option configures a target of type T. Options may fail, for example when a
// union variant is registered twice.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may fail.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first failure.
// Nil options are skipped. The returned error identifies the failing option by position.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
	}

	return nil
}

// MustApply is Apply for option sets that are known to be valid, such as package-level
// defaults. Panics on failure.
func MustApply[T any](target T, opts ...Option[T]) {
	if err := Apply(target, opts...); err != nil {
		panic(err)
	}
}
