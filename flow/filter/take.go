package filter

import "github.com/lguimbarda/pullflow/flow/core"

// Take creates a Transformer that passes through only the first n items.
// After n items have been handed out, the stream completes.
// If n <= 0, an empty stream is returned.
func Take[T any](n int) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return s.Limit(max(n, 0))
	}
}

// TakeWhile creates a Transformer that passes through items while the predicate returns true.
// Once the predicate returns false, the stream completes (remaining items are not pulled).
func TakeWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return TakeWhileWithIndex(func(v T, _ int) bool { return predicate(v) })
}

// Skip creates a Transformer that skips the first n items, then passes through the rest.
// If n <= 0, all items are passed through.
func Skip[T any](n int) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return s.Skip(max(n, 0))
	}
}

// SkipWhile creates a Transformer that skips items while the predicate returns true.
// Once the predicate returns false, all subsequent items (including the first false one) are passed through.
func SkipWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return SkipWhileWithIndex(func(v T, _ int) bool { return predicate(v) })
}

// Last creates a Transformer that only emits the last n items from the stream.
// The first pull drains the upstream, keeping at most n items.
// If n <= 0, an empty stream is returned.
func Last[T any](n int) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &lastStage[T]{Upstream: core.Upstream[T]{Up: up}, n: n}
		})
	}
}

type lastStage[T any] struct {
	core.Upstream[T]
	n      int
	buffer []T
	filled bool
}

func (l *lastStage[T]) fill() {
	l.filled = true
	if l.n <= 0 {
		return
	}
	l.buffer = make([]T, 0, l.n)
	for l.Up.HasNext() {
		v := l.Up.Next()
		if len(l.buffer) < l.n {
			l.buffer = append(l.buffer, v)
			continue
		}
		// Shift left and add at end
		copy(l.buffer, l.buffer[1:])
		l.buffer[l.n-1] = v
	}
}

func (l *lastStage[T]) HasNext() bool {
	if !l.filled {
		l.fill()
	}
	if l.Up.Err() != nil {
		return false
	}
	return len(l.buffer) > 0
}

func (l *lastStage[T]) Next() T {
	if !l.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	v := l.buffer[0]
	l.buffer = l.buffer[1:]
	return v
}

// First creates a Transformer that only emits the first item from the stream.
// This is equivalent to Take(1).
func First[T any]() core.Transformer[T, T] {
	return Take[T](1)
}

// Nth creates a Transformer that only emits the nth item (0-indexed) from the stream.
// If the stream has fewer than n+1 items, nothing is emitted.
func Nth[T any](n int) core.Transformer[T, T] {
	return ElementAt[T](n)
}
