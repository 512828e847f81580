// Package transform provides reshaping operators: flattening, pairing,
// indexing and concatenation of streams.
package transform

import "github.com/lguimbarda/pullflow/flow/core"

// Pairwise creates a Transformer that emits pairs of consecutive items.
// Each emission (except the first) includes the previous and current item.
func Pairwise[T any]() core.Transformer[T, [2]T] {
	return func(s *core.Stream[T]) *core.Stream[[2]T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[[2]T] {
			return &pairwiseStage[T]{Upstream: core.Upstream[T]{Up: up}}
		})
	}
}

type pairwiseStage[T any] struct {
	core.Upstream[T]
	prev    T
	hasPrev bool
}

func (p *pairwiseStage[T]) HasNext() bool {
	if !p.hasPrev {
		if !p.Up.HasNext() {
			return false
		}
		p.prev, p.hasPrev = p.Up.Next(), true
	}
	return p.Up.HasNext()
}

func (p *pairwiseStage[T]) Next() [2]T {
	if !p.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	curr := p.Up.Next()
	pair := [2]T{p.prev, curr}
	p.prev = curr
	return pair
}

// Indexed pairs an item with its 0-based position in the stream.
type Indexed[T any] struct {
	Index int
	Value T
}

// WithIndex creates a Transformer that wraps each item with its 0-based index.
func WithIndex[T any]() core.Transformer[T, Indexed[T]] {
	return func(s *core.Stream[T]) *core.Stream[Indexed[T]] {
		index := 0
		return core.Map(s, func(v T) Indexed[T] {
			indexed := Indexed[T]{Index: index, Value: v}
			index++
			return indexed
		})
	}
}

// StartWith creates a Transformer that prepends the specified values before
// the source items.
func StartWith[T any](values ...T) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return Concat(core.Of(values...), s)
	}
}

// EndWith creates a Transformer that appends the specified values after the
// source is exhausted.
func EndWith[T any](values ...T) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return Concat(s, core.Of(values...))
	}
}

// IgnoreElements creates a Transformer that drains the source without
// emitting anything. Only its failure, if any, reaches the terminal.
func IgnoreElements[T any]() core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &ignoreStage[T]{Upstream: core.Upstream[T]{Up: up}}
		})
	}
}

type ignoreStage[T any] struct {
	core.Upstream[T]
}

func (i *ignoreStage[T]) HasNext() bool {
	for i.Up.HasNext() {
		i.Up.Next()
	}
	return false
}

func (i *ignoreStage[T]) Next() T { panic(core.ErrNoSuchElement) }
