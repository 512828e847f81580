// Package combine joins several streams into one. Every operator here takes
// ownership of its input streams, pulls from them in lockstep or in turn,
// and forwards Close to all of them.
package combine

import (
	"errors"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Pair holds one element from each side of a Zip.
type Pair[A, B any] struct {
	A A
	B B
}

// LongPair is a Pair from ZipLongest. HasA and HasB report which side
// still had an element; the other holds its zero value.
type LongPair[A, B any] struct {
	A    A
	B    B
	HasA bool
	HasB bool
}

// Zip combines items from two streams pairwise.
// Emits pairs until either stream is exhausted. Extra items from the longer stream are dropped.
func Zip[A, B any](streamA *core.Stream[A], streamB *core.Stream[B]) *core.Stream[Pair[A, B]] {
	return ZipWith(streamA, streamB, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{A: a, B: b}
	})
}

// ZipWith combines items from two streams using a combiner function.
// Emits combined results until either stream is exhausted. Stream A is
// always pulled first, so when A is the shorter one B is never over-pulled.
func ZipWith[A, B, C any](streamA *core.Stream[A], streamB *core.Stream[B], combiner func(A, B) C) *core.Stream[C] {
	a, errA := core.Detach(streamA)
	b, errB := core.Detach(streamB)
	if err := errors.Join(errA, errB); err != nil {
		return core.New[C](broken[C]{err: err})
	}
	return core.New[C](&zipStage[A, B, C]{a: a, b: b, combine: combiner})
}

type zipStage[A, B, C any] struct {
	a       core.Stage[A]
	b       core.Stage[B]
	combine func(A, B) C
}

func (z *zipStage[A, B, C]) HasNext() bool {
	return z.a.HasNext() && z.b.HasNext()
}

func (z *zipStage[A, B, C]) Next() C {
	if !z.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	return z.combine(z.a.Next(), z.b.Next())
}

func (z *zipStage[A, B, C]) Err() error {
	return errors.Join(z.a.Err(), z.b.Err())
}

func (z *zipStage[A, B, C]) Close() error {
	return errors.Join(core.CloseStage(z.a), core.CloseStage(z.b))
}

// ZipLongest combines items from two streams, using zero values for the
// shorter stream. Continues until both streams are exhausted, or either
// one fails.
func ZipLongest[A, B any](streamA *core.Stream[A], streamB *core.Stream[B]) *core.Stream[LongPair[A, B]] {
	a, errA := core.Detach(streamA)
	b, errB := core.Detach(streamB)
	if err := errors.Join(errA, errB); err != nil {
		return core.New[LongPair[A, B]](broken[LongPair[A, B]]{err: err})
	}
	return core.New[LongPair[A, B]](&zipLongestStage[A, B]{a: a, b: b})
}

type zipLongestStage[A, B any] struct {
	a core.Stage[A]
	b core.Stage[B]
}

func (z *zipLongestStage[A, B]) HasNext() bool {
	hasA, hasB := z.a.HasNext(), z.b.HasNext()
	if z.Err() != nil {
		return false
	}
	return hasA || hasB
}

func (z *zipLongestStage[A, B]) Next() LongPair[A, B] {
	if !z.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	var p LongPair[A, B]
	if z.a.HasNext() {
		p.A, p.HasA = z.a.Next(), true
	}
	if z.b.HasNext() {
		p.B, p.HasB = z.b.Next(), true
	}
	return p
}

func (z *zipLongestStage[A, B]) Err() error {
	return errors.Join(z.a.Err(), z.b.Err())
}

func (z *zipLongestStage[A, B]) Close() error {
	return errors.Join(core.CloseStage(z.a), core.CloseStage(z.b))
}

// broken is the stage behind a combined stream built from a linked handle.
type broken[T any] struct {
	err error
}

func (b broken[T]) HasNext() bool { return false }

func (b broken[T]) Next() T { panic(core.ErrNoSuchElement) }

func (b broken[T]) Err() error { return b.err }
