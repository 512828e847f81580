package flow

// Apply is a helper to apply a single transformer to a stream.
// Equivalent to transformer(stream) but reads left-to-right.
func Apply[IN, OUT any](stream *Stream[IN], transformer Transformer[IN, OUT]) *Stream[OUT] {
	return transformer(stream)
}

// Through chains two transformers together, creating a new transformer
// that first applies t1 and then t2 to the stream.
func Through[IN, MID, OUT any](t1 Transformer[IN, MID], t2 Transformer[MID, OUT]) Transformer[IN, OUT] {
	return func(s *Stream[IN]) *Stream[OUT] {
		return t2(t1(s))
	}
}

// Chain composes multiple transformers of the same type into a single transformer.
// Transformers are applied in order from left to right.
// If no transformers are provided, returns an identity transformer.
func Chain[T any](transformers ...Transformer[T, T]) Transformer[T, T] {
	return func(s *Stream[T]) *Stream[T] {
		return Pipe(s, transformers...)
	}
}

// Pipe applies a series of transformers to a stream, returning the final stream.
// This is a convenience function for applying multiple transformations inline.
func Pipe[T any](source *Stream[T], transformers ...Transformer[T, T]) *Stream[T] {
	result := source
	for _, t := range transformers {
		result = t(result)
	}
	return result
}

// Transformer constructors for the built-in stages.

// Mapping returns a Transformer applying Map with fn.
func Mapping[IN, OUT any](fn func(IN) OUT) Transformer[IN, OUT] {
	return func(s *Stream[IN]) *Stream[OUT] { return Map(s, fn) }
}

// TryMapping returns a Transformer applying TryMap with fn.
func TryMapping[IN, OUT any](fn func(IN) (OUT, error)) Transformer[IN, OUT] {
	return func(s *Stream[IN]) *Stream[OUT] { return TryMap(s, fn) }
}

// Filtering returns a Transformer keeping the elements for which pred holds.
func Filtering[T any](pred func(T) bool) Transformer[T, T] {
	return func(s *Stream[T]) *Stream[T] { return s.Filter(pred) }
}

// Limiting returns a Transformer truncating the stream to n elements.
func Limiting[T any](n int) Transformer[T, T] {
	return func(s *Stream[T]) *Stream[T] { return s.Limit(n) }
}

// Skipping returns a Transformer discarding the first n elements.
func Skipping[T any](n int) Transformer[T, T] {
	return func(s *Stream[T]) *Stream[T] { return s.Skip(n) }
}

// Deduplicating returns a Transformer applying Distinct.
func Deduplicating[T comparable]() Transformer[T, T] {
	return Distinct[T]
}

// Observing returns a Transformer inserting an observation stage.
func Observing[T any](hooks ...Hooks[T]) Transformer[T, T] {
	return func(s *Stream[T]) *Stream[T] { return s.Observe(hooks...) }
}
