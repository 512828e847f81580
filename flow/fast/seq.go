package fast

import (
	"iter"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Seq is a stream of values with no failure path.
type Seq[T any] = iter.Seq[T]

// FromSlice creates a Seq over data.
func FromSlice[T any](data []T) Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}
}

// Range creates a Seq of the integers from start to end (exclusive).
func Range(start, end int) Seq[int] {
	return func(yield func(int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// FromStream drains s as a Seq. A failure of s ends the Seq early; check
// s.Err afterwards when that matters.
func FromStream[T any](s *core.Stream[T]) Seq[T] {
	return s.All()
}

// ToStream lifts seq back into a Stream so the checked operators apply.
func ToStream[T any](seq Seq[T]) *core.Stream[T] {
	return core.FromSeq(seq)
}
