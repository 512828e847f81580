package core

// Filter keeps the elements for which pred holds.
func (s *Stream[T]) Filter(pred func(T) bool) *Stream[T] {
	if pred == nil {
		panic("core: nil predicate")
	}
	return s.filter(func(v T) (bool, error) { return pred(v), nil })
}

// TryFilter is Filter with a fallible predicate. The first error ends the
// stream; terminal operations return it unmodified.
func (s *Stream[T]) TryFilter(pred func(T) (bool, error)) *Stream[T] {
	if pred == nil {
		panic("core: nil predicate")
	}
	return s.filter(pred)
}

func (s *Stream[T]) filter(test func(T) (bool, error)) *Stream[T] {
	return Extend(s, func(up Stage[T]) Stage[T] {
		return &filterStage[T]{Upstream: Upstream[T]{Up: up}, test: test}
	})
}

// filterStage moves between seeking (nothing cached), holding (a match in
// pending) and done (upstream exhausted or test failed; permanent).
type filterStage[T any] struct {
	Upstream[T]
	test    func(T) (bool, error)
	pending T
	holding bool
	done    bool
	err     error
}

func (f *filterStage[T]) HasNext() bool {
	if f.holding {
		return true
	}
	for !f.done {
		if !f.Up.HasNext() {
			f.done = true
			break
		}
		v := f.Up.Next()
		ok, err := f.test(v)
		if err != nil {
			f.err, f.done = err, true
			break
		}
		if ok {
			f.pending, f.holding = v, true
			return true
		}
	}
	return false
}

func (f *filterStage[T]) Next() T {
	if !f.HasNext() {
		panic(ErrNoSuchElement)
	}
	var zero T
	v := f.pending
	f.pending, f.holding = zero, false
	return v
}

func (f *filterStage[T]) Err() error {
	if f.err != nil {
		return f.err
	}
	return f.Up.Err()
}
