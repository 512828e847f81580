// Package flowerrors provides operators that observe, reshape and recover
// from the failure that ends a stream, plus per-element resilience
// wrappers (retry, backoff, circuit breaking, fallback values) for fallible
// mapping functions.
//
// A stream fails at most once: a fallible stage latches its error and
// ends. The recovery operators here run when the upstream is exhausted and
// reports that error, and decide how the stream continues.
package flowerrors

import (
	"errors"
	"fmt"

	"github.com/lguimbarda/pullflow/flow/core"
)

// StageError tags a failure with the name of the pipeline stage it
// came out of.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Tag creates a Transformer that wraps an upstream failure in a StageError
// naming stage. Elements pass through unchanged.
func Tag[T any](stage string) core.Transformer[T, T] {
	return MapErrors[T](func(err error) error {
		return &StageError{Stage: stage, Err: err}
	})
}

// OnError creates a Transformer that calls handler with the upstream
// failure, once, when the stream ends with one. The failure still
// propagates.
func OnError[T any](handler func(error)) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return s.Observe(core.Hooks[T]{OnError: handler})
	}
}

// CountErrors creates a Transformer that increments counter for every
// drain that ends with a failure. The failure still propagates.
func CountErrors[T any](counter *int64) core.Transformer[T, T] {
	return OnError[T](func(error) { *counter++ })
}

// CatchError creates a Transformer that catches an upstream failure
// matching predicate. If handler returns a value, it is emitted as the
// last element and the stream ends normally. If handler returns an error,
// that error ends the stream instead. Non-matching failures pass through
// unchanged.
func CatchError[T any](predicate func(error) bool, handler func(error) (T, error)) core.Transformer[T, T] {
	return recovering(func(err error) (core.Stage[T], error) {
		if !predicate(err) {
			return nil, err
		}
		v, herr := handler(err)
		if herr != nil {
			return nil, herr
		}
		return core.Detach(core.Of(v))
	})
}

// Resume creates a Transformer that continues with the stream returned by
// fallback when the upstream ends with a failure matching predicate.
func Resume[T any](predicate func(error) bool, fallback func(error) *core.Stream[T]) core.Transformer[T, T] {
	return recovering(func(err error) (core.Stage[T], error) {
		if !predicate(err) {
			return nil, err
		}
		return core.Detach(fallback(err))
	})
}

// FilterErrors creates a Transformer that swallows an upstream failure
// matching predicate, so the stream ends normally after the elements
// delivered before it. Non-matching failures pass through.
func FilterErrors[T any](predicate func(error) bool) core.Transformer[T, T] {
	return recovering(func(err error) (core.Stage[T], error) {
		if predicate(err) {
			return nil, nil
		}
		return nil, err
	})
}

// IgnoreErrors creates a Transformer that swallows any upstream failure.
func IgnoreErrors[T any]() core.Transformer[T, T] {
	return FilterErrors[T](func(error) bool { return true })
}

// MapErrors creates a Transformer that replaces an upstream failure with
// mapper's result. A nil result swallows the failure.
func MapErrors[T any](mapper func(error) error) core.Transformer[T, T] {
	return recovering(func(err error) (core.Stage[T], error) {
		return nil, mapper(err)
	})
}

// WrapError creates a Transformer that wraps an upstream failure with
// additional context.
func WrapError[T any](wrapper func(error) error) core.Transformer[T, T] {
	return MapErrors[T](wrapper)
}

// recovering builds a Transformer around a recoverStage.
func recovering[T any](handle func(error) (core.Stage[T], error)) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &recoverStage[T]{Upstream: core.Upstream[T]{Up: up}, handle: handle}
		})
	}
}

// recoverStage forwards upstream elements. Once the upstream is exhausted
// with a failure, handle decides what follows: a replacement stage, a
// different failure, or a normal end when both are nil.
type recoverStage[T any] struct {
	core.Upstream[T]
	handle  func(error) (core.Stage[T], error)
	handled bool
	next    core.Stage[T]
	err     error
}

func (r *recoverStage[T]) HasNext() bool {
	if !r.handled {
		if r.Up.HasNext() {
			return true
		}
		r.handled = true
		if err := r.Up.Err(); err != nil {
			r.next, r.err = r.handle(err)
		}
	}
	return r.next != nil && r.next.HasNext()
}

func (r *recoverStage[T]) Next() T {
	if !r.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	if r.next != nil {
		return r.next.Next()
	}
	return r.Up.Next()
}

func (r *recoverStage[T]) Err() error {
	switch {
	case !r.handled:
		return r.Up.Err()
	case r.err != nil:
		return r.err
	case r.next != nil:
		return r.next.Err()
	default:
		return nil
	}
}

func (r *recoverStage[T]) Close() error {
	err := r.Upstream.Close()
	if r.next != nil {
		err = errors.Join(err, core.CloseStage(r.next))
	}
	return err
}
