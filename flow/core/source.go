package core

import "iter"

// Empty creates a stream with no elements.
func Empty[T any]() *Stream[T] {
	return New[T](newSliceSource[T](nil))
}

// FromSlice creates a stream over items. Elements are read lazily, in
// order, and handed out by copy; the slice itself is not copied.
func FromSlice[T any](items []T) *Stream[T] {
	return New[T](newSliceSource(items))
}

// Of creates a stream over the given values.
func Of[T any](values ...T) *Stream[T] {
	return FromSlice(values)
}

type sliceSource[T any] struct {
	items []T
	pos   int
}

func newSliceSource[T any](items []T) *sliceSource[T] {
	return &sliceSource[T]{items: items}
}

func (s *sliceSource[T]) HasNext() bool {
	return s.pos != len(s.items)
}

func (s *sliceSource[T]) Next() T {
	if s.pos == len(s.items) {
		panic(ErrNoSuchElement)
	}
	v := s.items[s.pos]
	s.pos++
	return v
}

func (s *sliceSource[T]) Err() error { return nil }

// Position is a marker into some sequence. Two markers are equal when they
// denote the same place; Next returns the marker one step further along.
// Markers are only ever compared for equality, never ordered.
type Position[T any, P any] interface {
	comparable
	Value() T
	Next() P
}

// Between creates a stream of the values from begin up to, but excluding,
// end. end must be reachable from begin by repeated calls to Next.
func Between[T any, P Position[T, P]](begin, end P) *Stream[T] {
	return New[T](&positionSource[T, P]{cur: begin, end: end})
}

type positionSource[T any, P Position[T, P]] struct {
	cur P
	end P
}

func (s *positionSource[T, P]) HasNext() bool {
	return s.cur != s.end
}

func (s *positionSource[T, P]) Next() T {
	if s.cur == s.end {
		panic(ErrNoSuchElement)
	}
	v := s.cur.Value()
	s.cur = s.cur.Next()
	return v
}

func (s *positionSource[T, P]) Err() error { return nil }

// Counter is an integer Position; its value is itself.
type Counter int

func (c Counter) Value() int { return int(c) }

func (c Counter) Next() Counter { return c + 1 }

// Range creates a stream of the integers from start to end (exclusive).
// If end < start the stream is empty.
func Range(start, end int) *Stream[int] {
	if end < start {
		end = start
	}
	return Between[int](Counter(start), Counter(end))
}

// FromSeq creates a stream over a Go iterator, which is how maps, slices
// and other containers expose their elements (maps.Keys, slices.Values).
// The iterator is started on the first pull and pulled one element at a
// time. It is released on exhaustion, when a terminal operation returns,
// or by Close.
func FromSeq[T any](seq iter.Seq[T]) *Stream[T] {
	if seq == nil {
		panic("core: nil seq")
	}
	return New[T](&pullSource[T]{seq: seq})
}

// Generate creates a stream from a function that returns the next element
// and true, or false once it has nothing more to give.
func Generate[T any](fn func() (T, bool)) *Stream[T] {
	if fn == nil {
		panic("core: nil generator")
	}
	return New[T](&pullSource[T]{next: fn})
}

type pullSource[T any] struct {
	seq     iter.Seq[T] // not yet started
	next    func() (T, bool)
	stop    func()
	pending T
	holding bool
	done    bool
}

func (s *pullSource[T]) HasNext() bool {
	if s.holding {
		return true
	}
	if s.done {
		return false
	}
	if s.seq != nil {
		s.next, s.stop = iter.Pull(s.seq)
		s.seq = nil
	}
	v, ok := s.next()
	if !ok {
		s.done = true
		s.Close()
		return false
	}
	s.pending, s.holding = v, true
	return true
}

func (s *pullSource[T]) Next() T {
	if !s.HasNext() {
		panic(ErrNoSuchElement)
	}
	var zero T
	v := s.pending
	s.pending, s.holding = zero, false
	return v
}

func (s *pullSource[T]) Err() error { return nil }

func (s *pullSource[T]) Close() error {
	s.done = true
	s.seq = nil
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	return nil
}

// Iterate creates an infinite stream seed, fn(seed), fn(fn(seed)), ...
// Bound it with Limit or a short-circuiting terminal.
func Iterate[T any](seed T, fn func(T) T) *Stream[T] {
	if fn == nil {
		panic("core: nil iterate function")
	}
	return New[T](&iterateSource[T]{cur: seed, fn: fn})
}

// iterateSource applies fn only when the element after cur is pulled.
type iterateSource[T any] struct {
	cur     T
	fn      func(T) T
	started bool
}

func (s *iterateSource[T]) HasNext() bool { return true }

func (s *iterateSource[T]) Next() T {
	if s.started {
		s.cur = s.fn(s.cur)
	}
	s.started = true
	return s.cur
}

func (s *iterateSource[T]) Err() error { return nil }

// Entry is a key/value pair produced by FromMap.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// FromMap creates a stream of the entries of m, snapshotted at call time.
// Order follows Go map iteration and is unspecified.
func FromMap[K comparable, V any](m map[K]V) *Stream[Entry[K, V]] {
	entries := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return FromSlice(entries)
}
