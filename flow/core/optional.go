package core

import "fmt"

// Optional holds the result of a terminal operation that may have nothing
// to report, such as FindFirst on an empty stream.
type Optional[T any] struct {
	value   T
	present bool
}

// Some creates an Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None creates an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether there is one.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the held value, or fallback when empty.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// MustGet returns the held value and panics with ErrNoSuchElement when empty.
func (o Optional[T]) MustGet() T {
	if !o.present {
		panic(ErrNoSuchElement)
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
