package transform

import (
	"errors"

	"github.com/lguimbarda/pullflow/flow/core"
)

// ConcatMap creates a Transformer that projects each source value to a Stream,
// then flattens the inner Streams sequentially: an inner Stream is drained
// before the next source value is pulled. A failed inner Stream ends the
// result with the inner failure.
func ConcatMap[IN, OUT any](project func(IN) *core.Stream[OUT]) core.Transformer[IN, OUT] {
	return func(s *core.Stream[IN]) *core.Stream[OUT] {
		return core.Extend(s, func(up core.Stage[IN]) core.Stage[OUT] {
			return &concatMapStage[IN, OUT]{Upstream: core.Upstream[IN]{Up: up}, project: project}
		})
	}
}

// FlatMap creates a Transformer that expands each item into zero or more items.
func FlatMap[IN, OUT any](fn func(IN) []OUT) core.Transformer[IN, OUT] {
	return ConcatMap(func(v IN) *core.Stream[OUT] { return core.FromSlice(fn(v)) })
}

// Concat creates a Stream that emits all values from the first stream,
// then all values from the second stream, and so on. The given streams are
// linked into the result.
func Concat[T any](streams ...*core.Stream[T]) *core.Stream[T] {
	return ConcatMap(func(s *core.Stream[T]) *core.Stream[T] { return s })(core.Of(streams...))
}

type concatMapStage[IN, OUT any] struct {
	core.Upstream[IN]
	project func(IN) *core.Stream[OUT]
	inner   core.Stage[OUT]
	err     error
	// closeErr collects Close failures of inner stages already drained;
	// Close reports them.
	closeErr error
	closed   bool
}

func (c *concatMapStage[IN, OUT]) HasNext() bool {
	for c.err == nil && !c.closed {
		if c.inner != nil {
			if c.inner.HasNext() {
				return true
			}
			if err := c.inner.Err(); err != nil {
				c.err = err
				break
			}
			c.closeErr = errors.Join(c.closeErr, core.CloseStage(c.inner))
			c.inner = nil
		}
		if !c.Up.HasNext() {
			return false
		}
		inner, err := core.Detach(c.project(c.Up.Next()))
		if err != nil {
			c.err = err
			break
		}
		c.inner = inner
	}
	return false
}

func (c *concatMapStage[IN, OUT]) Next() OUT {
	if !c.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	return c.inner.Next()
}

func (c *concatMapStage[IN, OUT]) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.Up.Err()
}

func (c *concatMapStage[IN, OUT]) Close() error {
	c.closed = true
	errs := []error{c.closeErr}
	c.closeErr = nil
	if c.inner != nil {
		errs = append(errs, core.CloseStage(c.inner))
		c.inner = nil
	}
	errs = append(errs, c.Upstream.Close())
	return errors.Join(errs...)
}
