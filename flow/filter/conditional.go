package filter

import "github.com/lguimbarda/pullflow/flow/core"

// TakeWhileWithIndex creates a Transformer that passes through items while the
// predicate, given the item and its 0-based position, returns true.
func TakeWhileWithIndex[T any](predicate func(T, int) bool) core.Transformer[T, T] {
	return selecting(func() func(T) verdict {
		index := 0
		return func(v T) verdict {
			i := index
			index++
			if predicate(v, i) {
				return keep
			}
			return stop
		}
	})
}

// SkipWhileWithIndex creates a Transformer that skips items while the
// predicate, given the item and its 0-based position, returns true. The
// predicate is not consulted once it has returned false.
func SkipWhileWithIndex[T any](predicate func(T, int) bool) core.Transformer[T, T] {
	return selecting(func() func(T) verdict {
		index := 0
		skipping := true
		return func(v T) verdict {
			if skipping {
				i := index
				index++
				if predicate(v, i) {
					return drop
				}
				skipping = false
			}
			return keep
		}
	})
}

// ElementAt creates a Transformer that emits only the item at the given
// 0-based index. Nothing is pulled past it. A negative index or a stream
// that is too short gives an empty stream.
func ElementAt[T any](index int) core.Transformer[T, T] {
	if index < 0 {
		return Take[T](0)
	}
	return selecting(func() func(T) verdict {
		i := 0
		return func(T) verdict {
			if i == index {
				return last
			}
			i++
			return drop
		}
	})
}

// ElementAtOrDefault is like ElementAt but emits defaultValue when the
// stream has no item at index.
func ElementAtOrDefault[T any](index int, defaultValue T) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return DefaultIfEmpty(defaultValue)(ElementAt[T](index)(s))
	}
}

// FirstOrDefault creates a Transformer that emits the first item matching the
// predicate, or defaultValue if none matches. If predicate is nil, the first
// item of the stream is used.
func FirstOrDefault[T any](predicate func(T) bool, defaultValue T) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		if predicate != nil {
			s = s.Filter(predicate)
		}
		return DefaultIfEmpty(defaultValue)(s.Limit(1))
	}
}

// LastOrDefault creates a Transformer that emits the last item matching the
// predicate, or defaultValue if none matches. If predicate is nil, the last
// item of the stream is used.
func LastOrDefault[T any](predicate func(T) bool, defaultValue T) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		if predicate != nil {
			s = s.Filter(predicate)
		}
		return DefaultIfEmpty(defaultValue)(Last[T](1)(s))
	}
}

// DefaultIfEmpty creates a Transformer that emits defaultValue once if the
// upstream ends without emitting anything. A failed upstream stays failed.
func DefaultIfEmpty[T any](defaultValue T) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &defaultStage[T]{Upstream: core.Upstream[T]{Up: up}, fallback: defaultValue}
		})
	}
}

type defaultStage[T any] struct {
	core.Upstream[T]
	fallback T
	emitted  bool
	pending  bool
}

func (d *defaultStage[T]) HasNext() bool {
	if d.pending {
		return true
	}
	if d.Up.HasNext() {
		return true
	}
	if !d.emitted && d.Up.Err() == nil {
		d.emitted, d.pending = true, true
		return true
	}
	return false
}

func (d *defaultStage[T]) Next() T {
	if !d.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	if d.pending {
		d.pending = false
		return d.fallback
	}
	d.emitted = true
	return d.Up.Next()
}
