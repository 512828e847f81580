package timing

import (
	"time"

	"github.com/lguimbarda/pullflow/flow/core"
)

// TimingConfig provides configuration for timing transformers.
type TimingConfig struct {
	// Clock is read and slept on by the operator. Defaults to System.
	Clock Clock
}

// WithClock returns a functional option that sets the clock.
func WithClock(c Clock) func(*TimingConfig) {
	return func(cfg *TimingConfig) {
		cfg.Clock = c
	}
}

func newConfig(opts []func(*TimingConfig)) TimingConfig {
	cfg := TimingConfig{Clock: System}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Clock == nil {
		cfg.Clock = System
	}
	return cfg
}

// Throttle creates a Transformer that limits emissions to at most one per duration.
// The first item passes through immediately, then items pulled before the
// duration has elapsed since the last emitted one are dropped.
func Throttle[T any](duration time.Duration, opts ...func(*TimingConfig)) core.Transformer[T, T] {
	cfg := newConfig(opts)
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &throttleStage[T]{Upstream: core.Upstream[T]{Up: up}, clock: cfg.Clock, every: duration}
		})
	}
}

type throttleStage[T any] struct {
	core.Upstream[T]
	clock    Clock
	every    time.Duration
	lastEmit time.Time
	emitted  bool
	pending  T
	holding  bool
}

func (t *throttleStage[T]) HasNext() bool {
	for !t.holding && t.Up.HasNext() {
		v := t.Up.Next()
		now := t.clock.Now()
		if t.emitted && now.Sub(t.lastEmit) < t.every {
			continue
		}
		t.lastEmit, t.emitted = now, true
		t.pending, t.holding = v, true
	}
	return t.holding
}

func (t *throttleStage[T]) Next() T {
	if !t.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	var zero T
	v := t.pending
	t.pending, t.holding = zero, false
	return v
}

// RateLimit creates a Transformer that hands out at most n items per
// duration. Once n items went out within the last window, the next one
// waits on the clock until the oldest leaves the window.
func RateLimit[T any](n int, per time.Duration, opts ...func(*TimingConfig)) core.Transformer[T, T] {
	if n <= 0 {
		n = 1
	}
	cfg := newConfig(opts)
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &rateLimitStage[T]{
				Upstream: core.Upstream[T]{Up: up},
				clock:    cfg.Clock,
				n:        n,
				per:      per,
				sent:     make([]time.Time, 0, n),
			}
		})
	}
}

type rateLimitStage[T any] struct {
	core.Upstream[T]
	clock Clock
	n     int
	per   time.Duration
	sent  []time.Time // emission times inside the current window, oldest first
}

func (r *rateLimitStage[T]) HasNext() bool { return r.Up.HasNext() }

func (r *rateLimitStage[T]) Next() T {
	v := r.Up.Next()
	if len(r.sent) == r.n {
		if wait := r.sent[0].Add(r.per).Sub(r.clock.Now()); wait > 0 {
			r.clock.Sleep(wait)
		}
		r.sent = append(r.sent[:0], r.sent[1:]...)
	}
	r.sent = append(r.sent, r.clock.Now())
	return v
}

// Delay creates a Transformer that delays each item by the specified duration.
func Delay[T any](duration time.Duration, opts ...func(*TimingConfig)) core.Transformer[T, T] {
	return DelayWhen(func(T) time.Duration { return duration }, opts...)
}

// DelayWhen creates a Transformer that delays each item by a duration determined
// by the provided function. Non-positive durations do not wait.
func DelayWhen[T any](delayFn func(T) time.Duration, opts ...func(*TimingConfig)) core.Transformer[T, T] {
	cfg := newConfig(opts)
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &delayStage[T]{Upstream: core.Upstream[T]{Up: up}, clock: cfg.Clock, delay: delayFn}
		})
	}
}

type delayStage[T any] struct {
	core.Upstream[T]
	clock Clock
	delay func(T) time.Duration
}

func (d *delayStage[T]) HasNext() bool { return d.Up.HasNext() }

func (d *delayStage[T]) Next() T {
	v := d.Up.Next()
	if wait := d.delay(v); wait > 0 {
		d.clock.Sleep(wait)
	}
	return v
}

// After creates a Transformer that fails with ErrTimeout when upstream takes
// longer than duration to produce an item or to report that it is done.
// Time spent downstream between pulls does not count.
func After[T any](duration time.Duration, opts ...func(*TimingConfig)) core.Transformer[T, T] {
	return AfterWithError[T](duration, ErrTimeout, opts...)
}

// AfterWithError is After with a custom error in place of ErrTimeout.
func AfterWithError[T any](duration time.Duration, timeoutErr error, opts ...func(*TimingConfig)) core.Transformer[T, T] {
	cfg := newConfig(opts)
	return func(s *core.Stream[T]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[T] {
			return &afterStage[T]{
				Upstream: core.Upstream[T]{Up: up},
				clock:    cfg.Clock,
				limit:    duration,
				timeout:  timeoutErr,
			}
		})
	}
}

type afterStage[T any] struct {
	core.Upstream[T]
	clock   Clock
	limit   time.Duration
	timeout error
	err     error
	done    bool
	pending T
	holding bool
}

func (a *afterStage[T]) HasNext() bool {
	if a.holding {
		return true
	}
	if a.done {
		return false
	}
	start := a.clock.Now()
	var v T
	more := a.Up.HasNext()
	if more {
		v = a.Up.Next()
	}
	if a.clock.Now().Sub(start) > a.limit {
		a.done, a.err = true, a.timeout
		return false
	}
	if !more {
		a.done = true
		return false
	}
	a.pending, a.holding = v, true
	return true
}

func (a *afterStage[T]) Next() T {
	if !a.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	var zero T
	v := a.pending
	a.pending, a.holding = zero, false
	return v
}

func (a *afterStage[T]) Err() error {
	if a.err != nil {
		return a.err
	}
	return a.Up.Err()
}

// ErrTimeout is returned when an After transformer's deadline expires.
var ErrTimeout = timeoutError{}

type timeoutError struct{}

func (timeoutError) Error() string   { return "stream timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
