// Package flow provides lazy, pull-based stream pipelines over in-memory
// sequences.
//
// This package is the primary user-facing API. Most users should only
// need to import this package. The flow/core subpackage contains the
// engine and the Stage contract, which is only needed to write custom
// sources and stages.
//
// A pipeline is a source wrapped by intermediate stages. Nothing is
// evaluated until a terminal operation pulls elements through:
//
//	evens, err := flow.Range(1, 101).
//		Filter(func(n int) bool { return n%2 == 0 }).
//		Count()
package flow

import (
	"cmp"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Type aliases for the core abstractions.
// These allow users to work with the framework without importing core directly.
type (
	// Stage is one link of a pipeline: HasNext, Next and Err.
	Stage[T any] = core.Stage[T]

	// Stream is the fluent, single-use handle over a Stage.
	Stream[T any] = core.Stream[T]

	// Transformer turns a Stream of IN into a Stream of OUT. Any
	// func(*Stream[IN]) *Stream[OUT] is one.
	Transformer[IN, OUT any] = core.Transformer[IN, OUT]

	// Optional is the result of a terminal operation that may have nothing to report.
	Optional[T any] = core.Optional[T]

	// Collector turns drained elements into a result container.
	Collector[T, R any] = core.Collector[T, R]

	// Hooks holds observation callbacks for one point of a pipeline.
	Hooks[T any] = core.Hooks[T]

	// Entry is a key/value pair produced by FromMap.
	Entry[K comparable, V any] = core.Entry[K, V]

	// Position is a comparable marker into a sequence, used by Between.
	Position[T any, P any] = core.Position[T, P]

	// Counter is the integer Position behind Range.
	Counter = core.Counter

	// Number is satisfied by the built-in integer and floating-point types.
	Number = core.Number

	// ErrPanic wraps a recovered panic value as an error.
	ErrPanic = core.ErrPanic
)

var (
	// ErrNoSuchElement is raised when an element is requested from an
	// exhausted stage, or an empty Optional is unwrapped.
	ErrNoSuchElement = core.ErrNoSuchElement

	// ErrStreamLinked is returned when a Stream handle is used after an
	// intermediate operation took its stage.
	ErrStreamLinked = core.ErrStreamLinked

	// ErrCountOverflow is returned by Average when the element count does
	// not fit the accumulator type.
	ErrCountOverflow = core.ErrCountOverflow
)

// Optional constructors.

// Some creates an Optional holding value.
func Some[T any](value T) Optional[T] {
	return core.Some(value)
}

// None creates an empty Optional.
func None[T any]() Optional[T] {
	return core.None[T]()
}

// Stage constructors.

// New wraps a custom Stage in a Stream.
func New[T any](stage Stage[T]) *Stream[T] {
	return core.New(stage)
}

// Extend wraps the stage of s in a caller-defined stage. s becomes linked.
func Extend[IN, OUT any](s *Stream[IN], build func(Stage[IN]) Stage[OUT]) *Stream[OUT] {
	return core.Extend(s, build)
}

// Type-changing and constrained intermediate operations.

// Map transforms every element with fn.
func Map[IN, OUT any](s *Stream[IN], fn func(IN) OUT) *Stream[OUT] {
	return core.Map(s, fn)
}

// TryMap transforms every element with a fallible fn. The first error ends
// the stream and is returned by the terminal operation.
func TryMap[IN, OUT any](s *Stream[IN], fn func(IN) (OUT, error)) *Stream[OUT] {
	return core.TryMap(s, fn)
}

// Distinct drops elements equal to one already seen.
func Distinct[T comparable](s *Stream[T]) *Stream[T] {
	return core.Distinct(s)
}

// DistinctBy drops elements whose key equals the key of one already seen.
func DistinctBy[T any, K comparable](s *Stream[T], key func(T) K) *Stream[T] {
	return core.DistinctBy(s, key)
}

// Terminal operations that need type parameters of their own.

// Collect drains s into c and returns c's finished result.
func Collect[T, R any](s *Stream[T], c Collector[T, R]) (R, error) {
	return core.Collect(s, c)
}

// MinOf returns the least element by natural ordering.
func MinOf[T cmp.Ordered](s *Stream[T]) (Optional[T], error) {
	return core.MinOf(s)
}

// MaxOf returns the greatest element by natural ordering.
func MaxOf[T cmp.Ordered](s *Stream[T]) (Optional[T], error) {
	return core.MaxOf(s)
}

// Average returns the mean of the elements accumulated in A from identity.
// An empty stream returns identity.
func Average[T, A Number](s *Stream[T], identity A) (A, error) {
	return core.Average(s, identity)
}

// NewSafeHooks wraps hooks with panic recovery; recovered panics are handed
// to panicHandler.
func NewSafeHooks[T any](hooks Hooks[T], panicHandler func(ErrPanic)) Hooks[T] {
	return core.NewSafeHooks(hooks, panicHandler)
}
