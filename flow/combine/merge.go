package combine

import (
	"errors"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Interleave alternates items from multiple streams in round-robin fashion,
// skipping streams that are exhausted. Continues until all streams are
// exhausted; the first failure ends it.
func Interleave[T any](streams ...*core.Stream[T]) *core.Stream[T] {
	inputs := make([]core.Stage[T], 0, len(streams))
	var errs []error
	for _, s := range streams {
		st, err := core.Detach(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		inputs = append(inputs, st)
	}
	if len(errs) > 0 {
		return core.New[T](broken[T]{err: errors.Join(errs...)})
	}
	return core.New[T](&interleaveStage[T]{
		inputs: inputs,
		done:   make([]bool, len(inputs)),
		left:   len(inputs),
	})
}

type interleaveStage[T any] struct {
	inputs []core.Stage[T]
	done   []bool
	pos    int // input whose turn it is
	left   int // inputs not yet exhausted
	err    error
}

func (s *interleaveStage[T]) HasNext() bool {
	for s.left > 0 && s.err == nil {
		if !s.done[s.pos] {
			in := s.inputs[s.pos]
			if in.HasNext() {
				return true
			}
			if err := in.Err(); err != nil {
				s.err = err
				return false
			}
			s.done[s.pos] = true
			s.left--
		}
		s.pos = (s.pos + 1) % len(s.inputs)
	}
	return false
}

func (s *interleaveStage[T]) Next() T {
	if !s.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	v := s.inputs[s.pos].Next()
	s.pos = (s.pos + 1) % len(s.inputs)
	return v
}

func (s *interleaveStage[T]) Err() error { return s.err }

func (s *interleaveStage[T]) Close() error {
	var errs []error
	for _, in := range s.inputs {
		errs = append(errs, core.CloseStage(in))
	}
	return errors.Join(errs...)
}

// IfEmpty returns a stream that switches to alternative if source ends
// without producing any element. A source that fails is not empty; its
// failure propagates. alternative is only pulled when it is needed.
func IfEmpty[T any](source, alternative *core.Stream[T]) *core.Stream[T] {
	src, errS := core.Detach(source)
	alt, errA := core.Detach(alternative)
	if err := errors.Join(errS, errA); err != nil {
		return core.New[T](broken[T]{err: err})
	}
	return core.New[T](&ifEmptyStage[T]{source: src, alternative: alt})
}

type ifEmptyStage[T any] struct {
	source      core.Stage[T]
	alternative core.Stage[T]
	decided     bool
	switched    bool
}

func (s *ifEmptyStage[T]) active() core.Stage[T] {
	if s.switched {
		return s.alternative
	}
	return s.source
}

func (s *ifEmptyStage[T]) HasNext() bool {
	if !s.decided {
		s.decided = true
		if !s.source.HasNext() && s.source.Err() == nil {
			s.switched = true
		}
	}
	return s.active().HasNext()
}

func (s *ifEmptyStage[T]) Next() T {
	if !s.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	return s.active().Next()
}

func (s *ifEmptyStage[T]) Err() error { return s.active().Err() }

func (s *ifEmptyStage[T]) Close() error {
	return errors.Join(core.CloseStage(s.source), core.CloseStage(s.alternative))
}
