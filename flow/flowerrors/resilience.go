package flowerrors

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/lguimbarda/pullflow/flow/core"
)

// ErrCircuitOpen is returned when a circuit breaker is in the open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// sleep waits between retry attempts. Tests replace it.
var sleep = time.Sleep

// Retry creates a Transformer that applies operation to each element,
// retrying a failing call up to maxRetries more times. If an element still
// fails after all retries, its last error ends the stream.
func Retry[IN, OUT any](maxRetries int, operation func(IN) (OUT, error)) core.Transformer[IN, OUT] {
	return RetryWhen(maxRetries, func(error, int) bool { return true }, operation)
}

// BackoffStrategy defines how to calculate delay between retries.
type BackoffStrategy func(attempt int) time.Duration

// ConstantBackoff returns a BackoffStrategy that always waits the same duration.
func ConstantBackoff(delay time.Duration) BackoffStrategy {
	return func(int) time.Duration { return delay }
}

// LinearBackoff returns a BackoffStrategy that increases delay linearly.
func LinearBackoff(initialDelay time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * initialDelay
	}
}

// ExponentialBackoff returns a BackoffStrategy that doubles delay each attempt.
// The delay is capped at maxDelay if provided (use 0 for no cap).
func ExponentialBackoff(initialDelay, maxDelay time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		delay := initialDelay * time.Duration(math.Pow(2, float64(attempt)))
		if maxDelay > 0 && delay > maxDelay {
			return maxDelay
		}
		return delay
	}
}

// RetryWithBackoff is Retry with a pause, chosen by backoff, before every
// retry. The pause blocks the pull that is retrying.
func RetryWithBackoff[IN, OUT any](maxRetries int, backoff BackoffStrategy, operation func(IN) (OUT, error)) core.Transformer[IN, OUT] {
	return RetryWhen(maxRetries, func(_ error, attempt int) bool {
		sleep(backoff(attempt))
		return true
	}, operation)
}

// RetryWhen creates a Transformer that retries based on a predicate function.
// The predicate receives the error and attempt number (0-indexed) and returns
// true to retry. If the predicate returns false or maxRetries is exceeded,
// the error ends the stream.
func RetryWhen[IN, OUT any](maxRetries int, shouldRetry func(err error, attempt int) bool, operation func(IN) (OUT, error)) core.Transformer[IN, OUT] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return func(s *core.Stream[IN]) *core.Stream[OUT] {
		return core.TryMap(s, func(v IN) (OUT, error) {
			var (
				result OUT
				err    error
			)
			for attempt := 0; attempt <= maxRetries; attempt++ {
				result, err = operation(v)
				if err == nil {
					return result, nil
				}
				if attempt < maxRetries && !shouldRetry(err, attempt) {
					break
				}
			}
			return result, err
		})
	}
}

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker wraps an operation with circuit breaker pattern.
//   - failureThreshold: number of consecutive failures before opening the circuit
//   - resetTimeout: duration to wait before trying half-open state
//   - halfOpenSuccesses: number of successes in half-open before fully closing
//
// A breaker is safe for concurrent use, so it can guard an operation shared
// by several streams.
type CircuitBreaker[IN, OUT any] struct {
	operation         func(IN) (OUT, error)
	failureThreshold  int
	resetTimeout      time.Duration
	halfOpenSuccesses int
	now               func() time.Time

	mu          sync.Mutex
	state       CircuitState
	failures    int
	successes   int
	lastFailure time.Time
}

// NewCircuitBreaker creates a new circuit breaker with the given
// configuration. Non-positive values select the defaults: 5 failures, 30s
// and 1 success.
func NewCircuitBreaker[IN, OUT any](
	operation func(IN) (OUT, error),
	failureThreshold int,
	resetTimeout time.Duration,
	halfOpenSuccesses int,
) *CircuitBreaker[IN, OUT] {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if resetTimeout <= 0 {
		resetTimeout = 30 * time.Second
	}
	if halfOpenSuccesses <= 0 {
		halfOpenSuccesses = 1
	}

	return &CircuitBreaker[IN, OUT]{
		operation:         operation,
		failureThreshold:  failureThreshold,
		resetTimeout:      resetTimeout,
		halfOpenSuccesses: halfOpenSuccesses,
		now:               time.Now,
		state:             CircuitClosed,
	}
}

// Execute runs the operation through the circuit breaker. An open circuit
// fails fast with ErrCircuitOpen without calling the operation.
func (cb *CircuitBreaker[IN, OUT]) Execute(value IN) (OUT, error) {
	cb.mu.Lock()
	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailure) >= cb.resetTimeout {
		cb.state = CircuitHalfOpen
		cb.successes = 0
	}
	if cb.state == CircuitOpen {
		cb.mu.Unlock()
		var zero OUT
		return zero, ErrCircuitOpen
	}
	cb.mu.Unlock()

	result, err := cb.operation(value)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = cb.now()

		// Any failure in half-open goes back to open
		if cb.state == CircuitHalfOpen || cb.failures >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
		return result, err
	}

	if cb.state == CircuitHalfOpen {
		cb.successes++
		if cb.successes >= cb.halfOpenSuccesses {
			cb.state = CircuitClosed
			cb.failures = 0
		}
	} else {
		cb.failures = 0
	}
	return result, nil
}

// State returns the current circuit state.
func (cb *CircuitBreaker[IN, OUT]) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// WithCircuitBreaker creates a Transformer that maps each element through
// cb. The first failure, including ErrCircuitOpen, ends the stream.
func WithCircuitBreaker[IN, OUT any](cb *CircuitBreaker[IN, OUT]) core.Transformer[IN, OUT] {
	return func(s *core.Stream[IN]) *core.Stream[OUT] {
		return core.TryMap(s, cb.Execute)
	}
}

// Fallback creates a Transformer that applies operation to each element and
// substitutes fallbackFn's value when it fails, so the stream never fails
// because of operation. fallbackFn receives the element and the error.
func Fallback[IN, OUT any](operation func(IN) (OUT, error), fallbackFn func(IN, error) OUT) core.Transformer[IN, OUT] {
	return func(s *core.Stream[IN]) *core.Stream[OUT] {
		return core.Map(s, func(v IN) OUT {
			out, err := operation(v)
			if err != nil {
				return fallbackFn(v, err)
			}
			return out
		})
	}
}

// FallbackValue is Fallback with a constant substitute.
func FallbackValue[IN, OUT any](operation func(IN) (OUT, error), defaultValue OUT) core.Transformer[IN, OUT] {
	return Fallback(operation, func(IN, error) OUT { return defaultValue })
}
