package core

// Distinct passes through only the first occurrence of each value.
// Every emitted value is retained for the lifetime of the stage.
func Distinct[T comparable](s *Stream[T]) *Stream[T] {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy passes through only the first element for each key.
func DistinctBy[T any, K comparable](s *Stream[T], key func(T) K) *Stream[T] {
	if key == nil {
		panic("core: nil key function")
	}
	return Extend(s, func(up Stage[T]) Stage[T] {
		return &distinctStage[T, K]{
			Upstream: Upstream[T]{Up: up},
			key:      key,
			seen:     make(map[K]struct{}),
		}
	})
}

type distinctStage[T any, K comparable] struct {
	Upstream[T]
	key     func(T) K
	seen    map[K]struct{}
	pending T
	holding bool
}

func (d *distinctStage[T, K]) HasNext() bool {
	if d.holding {
		return true
	}
	for d.Up.HasNext() {
		v := d.Up.Next()
		k := d.key(v)
		if _, dup := d.seen[k]; dup {
			continue
		}
		d.seen[k] = struct{}{}
		d.pending, d.holding = v, true
		return true
	}
	return false
}

func (d *distinctStage[T, K]) Next() T {
	if !d.HasNext() {
		panic(ErrNoSuchElement)
	}
	var zero T
	v := d.pending
	d.pending, d.holding = zero, false
	return v
}
