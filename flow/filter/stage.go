// Package filter provides selection operators built on the core Stage
// contract: predicate filters, prefix and suffix selection, sampling and
// search terminals.
package filter

import "github.com/lguimbarda/pullflow/flow/core"

type verdict int

const (
	drop verdict = iota // discard and keep seeking
	keep                // hand downstream
	last                // hand downstream, then end without pulling again
	stop                // end without handing downstream
)

// selecting builds a Transformer around a per-stream decision function.
// newDecide is called once per application so stateful decisions (indexes,
// previous keys) are never shared between streams.
func selecting[T any](newDecide func() func(T) verdict) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &selectStage[T]{Upstream: core.Upstream[T]{Up: up}, decide: newDecide()}
		})
	}
}

// selectStage pulls until decide keeps an element or ends the stage.
// Once done it never pulls upstream again.
type selectStage[T any] struct {
	core.Upstream[T]
	decide  func(T) verdict
	pending T
	holding bool
	done    bool
}

func (s *selectStage[T]) HasNext() bool {
	if s.holding {
		return true
	}
	for !s.done && s.Up.HasNext() {
		v := s.Up.Next()
		switch s.decide(v) {
		case keep:
			s.pending, s.holding = v, true
			return true
		case last:
			s.pending, s.holding, s.done = v, true, true
			return true
		case stop:
			s.done = true
		}
	}
	s.done = true
	return false
}

func (s *selectStage[T]) Next() T {
	if !s.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	var zero T
	v := s.pending
	s.pending, s.holding = zero, false
	return v
}
