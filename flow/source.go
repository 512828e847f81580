package flow

import (
	"iter"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Empty creates a Stream with no elements.
func Empty[T any]() *Stream[T] {
	return core.Empty[T]()
}

// FromSlice creates a Stream over the elements of items, read lazily in order.
func FromSlice[T any](items []T) *Stream[T] {
	return core.FromSlice(items)
}

// Of creates a Stream over the given values.
func Of[T any](values ...T) *Stream[T] {
	return core.Of(values...)
}

// Once creates a Stream with a single element.
func Once[T any](value T) *Stream[T] {
	return core.Of(value)
}

// FromSeq creates a Stream from a Go iterator sequence. Close the stream if
// it is abandoned before exhaustion.
func FromSeq[T any](seq iter.Seq[T]) *Stream[T] {
	return core.FromSeq(seq)
}

// FromMap creates a Stream of the entries of m in map iteration order.
func FromMap[K comparable, V any](m map[K]V) *Stream[Entry[K, V]] {
	return core.FromMap(m)
}

// Between creates a Stream of the values from begin up to, but excluding, end.
func Between[T any, P Position[T, P]](begin, end P) *Stream[T] {
	return core.Between[T](begin, end)
}

// Range creates a Stream of integers from start (inclusive) to end (exclusive).
// If start >= end, the stream is empty.
func Range(start, end int) *Stream[int] {
	return core.Range(start, end)
}

// RangeStep creates a Stream that emits integers from start to end with the given step.
// If step is positive, emits start, start+step, start+2*step, ... (while < end)
// If step is negative, emits start, start+step, start+2*step, ... (while > end)
// If step is zero or the direction is invalid, an empty stream is returned.
func RangeStep(start, end, step int) *Stream[int] {
	if step == 0 || (step > 0 && start >= end) || (step < 0 && start <= end) {
		return Empty[int]()
	}
	i := start
	return core.Generate(func() (int, bool) {
		if (step > 0 && i >= end) || (step < 0 && i <= end) {
			return 0, false
		}
		v := i
		i += step
		return v, true
	})
}

// Repeat creates a Stream that emits the same value n times.
// If n is negative, the stream repeats indefinitely.
func Repeat[T any](value T, n int) *Stream[T] {
	count := 0
	return core.Generate(func() (T, bool) {
		if n >= 0 && count >= n {
			var zero T
			return zero, false
		}
		count++
		return value, true
	})
}

// Generate creates a Stream that lazily generates values using fn. fn
// returns the next value and true, or false to signal completion.
func Generate[T any](fn func() (T, bool)) *Stream[T] {
	return core.Generate(fn)
}

// Unfold creates a Stream by unfolding a seed value.
// The function receives the current state and returns:
// - The value to emit
// - The next state
// - Whether to continue (false = complete)
func Unfold[T, S any](seed S, fn func(S) (T, S, bool)) *Stream[T] {
	state := seed
	return core.Generate(func() (T, bool) {
		value, next, ok := fn(state)
		if !ok {
			var zero T
			return zero, false
		}
		state = next
		return value, true
	})
}

// Iterate creates a Stream by repeatedly applying a function to a value.
// Emits seed, fn(seed), fn(fn(seed)), ... indefinitely; bound it with
// Limit or a short-circuiting terminal.
func Iterate[T any](seed T, fn func(T) T) *Stream[T] {
	return core.Iterate(seed, fn)
}

// IterateN creates a Stream that emits seed, fn(seed), fn(fn(seed)), ... for n iterations.
func IterateN[T any](seed T, fn func(T) T, n int) *Stream[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return core.Iterate(seed, fn).Limit(n)
}
