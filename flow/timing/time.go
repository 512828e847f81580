// Package timing ties streams to the wall clock: stamping elements with the
// time they were pulled, pacing pulls, and failing upstreams that are too
// slow. Every operator blocks the pulling goroutine instead of spawning one,
// and takes its time from a Clock that tests can replace.
package timing

import (
	"time"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Clock is the source of time for the operators in this package.
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// System is the real clock.
var System Clock = systemClock{}

// Interval creates an infinite stream of sequential integers, sleeping d
// before handing out each one. The first value (0) comes after the first
// interval. Bound it with Limit.
func Interval(d time.Duration, opts ...func(*TimingConfig)) *core.Stream[int] {
	cfg := newConfig(opts)
	i := 0
	return core.Generate(func() (int, bool) {
		cfg.Clock.Sleep(d)
		v := i
		i++
		return v, true
	})
}

// Once creates a stream that emits a single value (0) after the specified
// duration, then completes.
func Once(d time.Duration, opts ...func(*TimingConfig)) *core.Stream[int] {
	return OnceWith(d, 0, opts...)
}

// OnceWith creates a stream that emits the specified value after the
// specified duration, then completes.
func OnceWith[T any](d time.Duration, value T, opts ...func(*TimingConfig)) *core.Stream[T] {
	cfg := newConfig(opts)
	fired := false
	return core.Generate(func() (T, bool) {
		if fired {
			var zero T
			return zero, false
		}
		fired = true
		cfg.Clock.Sleep(d)
		return value, true
	})
}

// Timestamped wraps each item with the time it was pulled.
type Timestamped[T any] struct {
	Value     T
	Timestamp time.Time
}

// Stamped creates a Transformer that wraps each item with the time it was pulled.
func Stamped[T any](opts ...func(*TimingConfig)) core.Transformer[T, Timestamped[T]] {
	cfg := newConfig(opts)
	return func(s *core.Stream[T]) *core.Stream[Timestamped[T]] {
		return core.Map(s, func(v T) Timestamped[T] {
			return Timestamped[T]{Value: v, Timestamp: cfg.Clock.Now()}
		})
	}
}

// TimeInterval represents the interval between consecutive items.
type TimeInterval[T any] struct {
	Value    T
	Interval time.Duration
}

// Elapsed creates a Transformer that wraps each item with the duration since
// the previous one was pulled, or since the first pull for the first item.
func Elapsed[T any](opts ...func(*TimingConfig)) core.Transformer[T, TimeInterval[T]] {
	cfg := newConfig(opts)
	return func(s *core.Stream[T]) *core.Stream[TimeInterval[T]] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[TimeInterval[T]] {
			return &elapsedStage[T]{up: up, clock: cfg.Clock}
		})
	}
}

type elapsedStage[T any] struct {
	up      core.Stage[T]
	clock   Clock
	last    time.Time
	started bool
}

func (e *elapsedStage[T]) HasNext() bool {
	if !e.started {
		e.started = true
		e.last = e.clock.Now()
	}
	return e.up.HasNext()
}

func (e *elapsedStage[T]) Next() TimeInterval[T] {
	if !e.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	v := e.up.Next()
	now := e.clock.Now()
	interval := now.Sub(e.last)
	e.last = now
	return TimeInterval[T]{Value: v, Interval: interval}
}

func (e *elapsedStage[T]) Err() error { return e.up.Err() }

func (e *elapsedStage[T]) Close() error { return core.CloseStage(e.up) }
