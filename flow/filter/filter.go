package filter

import "github.com/lguimbarda/pullflow/flow/core"

// Where creates a Transformer that only passes through items matching the predicate.
// Items that don't match are silently dropped.
func Where[T any](predicate func(T) bool) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return s.Filter(predicate)
	}
}

// Exclude creates a Transformer that filters out items matching the predicate.
// This is the inverse of Where. Items matching the predicate are dropped.
func Exclude[T any](predicate func(T) bool) core.Transformer[T, T] {
	return Where(func(v T) bool { return !predicate(v) })
}

// MapWhere creates a Transformer that both filters and maps in a single pass.
// The function returns (value, true) to include the transformed value,
// or (_, false) to filter out the item.
func MapWhere[IN, OUT any](fn func(IN) (OUT, bool)) core.Transformer[IN, OUT] {
	return func(s *core.Stream[IN]) *core.Stream[OUT] {
		return core.Extend(s, func(up core.Stage[IN]) core.Stage[OUT] {
			return &mapWhereStage[IN, OUT]{Upstream: core.Upstream[IN]{Up: up}, fn: fn}
		})
	}
}

type mapWhereStage[IN, OUT any] struct {
	core.Upstream[IN]
	fn      func(IN) (OUT, bool)
	pending OUT
	holding bool
}

func (m *mapWhereStage[IN, OUT]) HasNext() bool {
	if m.holding {
		return true
	}
	for m.Up.HasNext() {
		if v, ok := m.fn(m.Up.Next()); ok {
			m.pending, m.holding = v, true
			return true
		}
	}
	return false
}

func (m *mapWhereStage[IN, OUT]) Next() OUT {
	if !m.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	var zero OUT
	v := m.pending
	m.pending, m.holding = zero, false
	return v
}
