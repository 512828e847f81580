// package core defines the pull-based pipeline engine: the Stage contract,
// the Stream surface layered on top of it, element sources, the built-in
// intermediate stages and the terminal operations that drain them.
//
// Evaluation is lazy and strictly pull-based. Nothing happens until a
// terminal operation asks the last stage for an element; that stage asks
// its upstream, and so on down to the source.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other flow packages.
package core

import "iter"

// Stage is one link of a pipeline. It answers the question: "is there
// another element, and if so, what is it?".
//
// HasNext must be idempotent between calls to Next: a stage that had to
// pull upstream to decide keeps the pulled element until Next hands it out.
// Next called when no element is available panics with ErrNoSuchElement.
// Err reports the failure that ended the stage, or nil if it ended (or is
// still running) normally.
type Stage[T any] interface {
	HasNext() bool
	Next() T
	Err() error
}

// Stream is the fluent handle over a Stage. A Stream exclusively owns its
// stage: every intermediate operation moves the stage into the new Stream
// and leaves the receiver linked, so it can no longer be used.
//
// Streams are single-use and not safe for concurrent use.
type Stream[T any] struct {
	stage  Stage[T]
	linked bool
}

// New wraps a Stage in a Stream. It is the entry point for custom sources.
func New[T any](stage Stage[T]) *Stream[T] {
	if stage == nil {
		panic("core: nil stage")
	}
	return &Stream[T]{stage: stage}
}

// Extend builds a new Stream whose stage wraps the receiver's stage.
// The receiver becomes linked. It is the extension point for stage kinds
// that live outside this package.
func Extend[IN, OUT any](s *Stream[IN], build func(Stage[IN]) Stage[OUT]) *Stream[OUT] {
	up, err := s.take()
	if err != nil {
		return &Stream[OUT]{stage: failed[OUT]{err: err}}
	}
	return &Stream[OUT]{stage: build(up)}
}

// Detach moves the stage out of s, leaving it linked. Stages that pull from
// several streams, such as concatenation, use it to own their inputs.
func Detach[T any](s *Stream[T]) (Stage[T], error) {
	return s.take()
}

// Transformer turns a Stream of IN into a Stream of OUT. Operator packages
// return their stages as Transformers so they compose with Pipe and Chain.
type Transformer[IN, OUT any] func(*Stream[IN]) *Stream[OUT]

// take moves the stage out of s, leaving it linked.
func (s *Stream[T]) take() (Stage[T], error) {
	if s.linked {
		return nil, ErrStreamLinked
	}
	st := s.stage
	s.stage = nil
	s.linked = true
	return st, nil
}

// use returns the stage for a terminal operation without linking s.
func (s *Stream[T]) use() (Stage[T], error) {
	if s.linked {
		return nil, ErrStreamLinked
	}
	return s.stage, nil
}

// All returns an iterator over the remaining elements. Check Err once the
// loop ends to tell exhaustion from failure. Like a terminal operation, the
// chain is closed when the loop ends, including on break.
func (s *Stream[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		st, err := s.use()
		if err != nil {
			return
		}
		defer CloseStage(st)
		for st.HasNext() {
			if !yield(st.Next()) {
				return
			}
		}
	}
}

// Err returns the failure that ended the stream, if any.
func (s *Stream[T]) Err() error {
	st, err := s.use()
	if err != nil {
		return err
	}
	return st.Err()
}

// Close releases resources held anywhere along the chain, such as the pull
// iterator behind FromSeq. It is safe to call more than once.
func (s *Stream[T]) Close() error {
	if s.linked {
		return nil
	}
	return CloseStage(s.stage)
}

// Upstream is embedded by intermediate stages to forward Err and Close to
// the stage they pull from.
type Upstream[T any] struct {
	Up Stage[T]
}

func (u Upstream[T]) Err() error { return u.Up.Err() }

func (u Upstream[T]) Close() error { return CloseStage(u.Up) }

// CloseStage closes st if it holds resources.
func CloseStage[T any](st Stage[T]) error {
	if c, ok := st.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// failed is the stage behind a Stream derived from a linked handle.
type failed[T any] struct {
	err error
}

func (f failed[T]) HasNext() bool { return false }

func (f failed[T]) Next() T { panic(ErrNoSuchElement) }

func (f failed[T]) Err() error { return f.err }
