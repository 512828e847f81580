// Package collect provides ready-made Collectors for core.Collect.
//
// Every constructor returns a fresh Collector. A Collector holds the state
// of one drain, so it must not be shared between Collect calls.
package collect

import (
	"strings"

	"github.com/lguimbarda/pullflow/flow/core"
)

// funcCollector adapts a supplier, an accumulator and a finisher to the
// Collector interface.
type funcCollector[T, A, R any] struct {
	acc      A
	add      func(A, T) A
	finisher func(A) R
}

func (c *funcCollector[T, A, R]) Accept(v T) { c.acc = c.add(c.acc, v) }

func (c *funcCollector[T, A, R]) Finish() R { return c.finisher(c.acc) }

// New builds a Collector from an initial container, an accumulator that adds
// one element to it, and a finisher that turns it into the result.
func New[T, A, R any](supplier func() A, accumulator func(A, T) A, finisher func(A) R) core.Collector[T, R] {
	return &funcCollector[T, A, R]{acc: supplier(), add: accumulator, finisher: finisher}
}

func identity[A any](a A) A { return a }

// ToSlice collects elements into a slice in drain order. The result is
// non-nil even for an empty stream.
func ToSlice[T any]() core.Collector[T, []T] {
	return New(func() []T { return []T{} }, func(acc []T, v T) []T { return append(acc, v) }, identity[[]T])
}

// ToSet collects the distinct elements into a set.
func ToSet[T comparable]() core.Collector[T, map[T]struct{}] {
	return New(
		func() map[T]struct{} { return make(map[T]struct{}) },
		func(acc map[T]struct{}, v T) map[T]struct{} {
			acc[v] = struct{}{}
			return acc
		},
		identity[map[T]struct{}],
	)
}

// ToMap collects elements into a map. When two elements share a key, the
// later one wins.
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V) core.Collector[T, map[K]V] {
	return New(
		func() map[K]V { return make(map[K]V) },
		func(acc map[K]V, v T) map[K]V {
			acc[key(v)] = value(v)
			return acc
		},
		identity[map[K]V],
	)
}

// GroupBy collects elements into slices keyed by key. Each group keeps
// drain order.
func GroupBy[T any, K comparable](key func(T) K) core.Collector[T, map[K][]T] {
	return New(
		func() map[K][]T { return make(map[K][]T) },
		func(acc map[K][]T, v T) map[K][]T {
			k := key(v)
			acc[k] = append(acc[k], v)
			return acc
		},
		identity[map[K][]T],
	)
}

// Partition splits elements in two: those for which predicate holds go to
// index 0, the others to index 1.
func Partition[T any](predicate func(T) bool) core.Collector[T, [2][]T] {
	return New(
		func() [2][]T { return [2][]T{} },
		func(acc [2][]T, v T) [2][]T {
			if predicate(v) {
				acc[0] = append(acc[0], v)
			} else {
				acc[1] = append(acc[1], v)
			}
			return acc
		},
		identity[[2][]T],
	)
}

// Joining concatenates strings with sep between them.
func Joining(sep string) core.Collector[string, string] {
	return New(
		func() []string { return nil },
		func(parts []string, s string) []string { return append(parts, s) },
		func(parts []string) string { return strings.Join(parts, sep) },
	)
}

// Indexed collects elements into a map from their 0-based drain position.
func Indexed[T any]() core.Collector[T, map[int]T] {
	i := 0
	return New(
		func() map[int]T { return make(map[int]T) },
		func(acc map[int]T, v T) map[int]T {
			acc[i] = v
			i++
			return acc
		},
		identity[map[int]T],
	)
}

// Counting counts the elements.
func Counting[T any]() core.Collector[T, int] {
	return New(func() int { return 0 }, func(n int, _ T) int { return n + 1 }, identity[int])
}

// CountingBy counts elements per key.
func CountingBy[T any, K comparable](key func(T) K) core.Collector[T, map[K]int] {
	return New(
		func() map[K]int { return make(map[K]int) },
		func(acc map[K]int, v T) map[K]int {
			acc[key(v)]++
			return acc
		},
		identity[map[K]int],
	)
}

// Mapping adapts a Collector to accept a different element type by
// transforming each element first.
func Mapping[T, U, R any](fn func(T) U, downstream core.Collector[U, R]) core.Collector[T, R] {
	return &mappingCollector[T, U, R]{fn: fn, downstream: downstream}
}

type mappingCollector[T, U, R any] struct {
	fn         func(T) U
	downstream core.Collector[U, R]
}

func (m *mappingCollector[T, U, R]) Accept(v T) { m.downstream.Accept(m.fn(v)) }

func (m *mappingCollector[T, U, R]) Finish() R { return m.downstream.Finish() }
