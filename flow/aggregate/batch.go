package aggregate

import "github.com/lguimbarda/pullflow/flow/core"

// Batch creates a Transformer that collects items into batches of the specified size.
// Each pull fills one batch; the final partial batch is emitted when the
// upstream is exhausted. If size <= 0, panics.
func Batch[T any](size int) core.Transformer[T, []T] {
	if size <= 0 {
		panic("aggregate: batch size must be > 0")
	}
	return Window[T](size, size)
}

// Chunk is an alias for Batch - creates fixed-size chunks from the stream.
func Chunk[T any](size int) core.Transformer[T, []T] {
	return Batch[T](size)
}

// Window creates a sliding window Transformer that emits overlapping windows of items.
// Each window contains 'size' items, and windows slide by 'step' items.
// For example, Window(3, 1) on [1,2,3,4,5] produces [[1,2,3], [2,3,4], [3,4,5]].
// When step == size the trailing partial window is emitted as a final batch;
// otherwise a partial window is dropped.
// If size <= 0 or step <= 0, panics.
func Window[T any](size, step int) core.Transformer[T, []T] {
	if size <= 0 {
		panic("aggregate: window size must be > 0")
	}
	if step <= 0 {
		panic("aggregate: window step must be > 0")
	}
	return func(s *core.Stream[T]) *core.Stream[[]T] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[[]T] {
			return &windowStage[T]{
				Upstream: core.Upstream[T]{Up: up},
				size:     size,
				step:     step,
				window:   make([]T, 0, size),
			}
		})
	}
}

type windowStage[T any] struct {
	core.Upstream[T]
	size, step int
	window     []T
	skip       int
	ready      []T
	done       bool
}

func (w *windowStage[T]) HasNext() bool {
	if w.ready != nil {
		return true
	}
	for !w.done {
		if !w.Up.HasNext() {
			w.done = true
			break
		}
		v := w.Up.Next()
		// Handle step > size (skip items between windows)
		if w.skip > 0 {
			w.skip--
			continue
		}
		w.window = append(w.window, v)
		if len(w.window) == w.size {
			w.ready = make([]T, w.size)
			copy(w.ready, w.window)
			w.slide()
			return true
		}
	}
	// Trailing batch
	if w.step == w.size && len(w.window) > 0 && w.Up.Err() == nil {
		w.ready = w.window
		w.window = nil
		return true
	}
	return false
}

func (w *windowStage[T]) slide() {
	if w.step >= w.size {
		w.window = w.window[:0]
		w.skip = w.step - w.size
		return
	}
	// Keep overlapping portion
	w.window = append(w.window[:0], w.window[w.step:]...)
}

func (w *windowStage[T]) Next() []T {
	if !w.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	v := w.ready
	w.ready = nil
	return v
}
