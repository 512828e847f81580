package core

// Limit passes through at most the first n elements. Once n elements have
// been handed out it reports exhaustion without pulling upstream again.
func (s *Stream[T]) Limit(n int) *Stream[T] {
	if n < 0 {
		panic("core: negative limit")
	}
	return Extend(s, func(up Stage[T]) Stage[T] {
		return &limitStage[T]{Upstream: Upstream[T]{Up: up}, n: n}
	})
}

type limitStage[T any] struct {
	Upstream[T]
	n     int
	count int
}

func (l *limitStage[T]) HasNext() bool {
	return l.count < l.n && l.Up.HasNext()
}

func (l *limitStage[T]) Next() T {
	if !l.HasNext() {
		panic(ErrNoSuchElement)
	}
	l.count++
	return l.Up.Next()
}

// Skip discards the first n elements, or all of them if there are fewer,
// then passes the rest through. The discarding happens on first use.
func (s *Stream[T]) Skip(n int) *Stream[T] {
	if n < 0 {
		panic("core: negative skip")
	}
	return Extend(s, func(up Stage[T]) Stage[T] {
		return &skipStage[T]{Upstream: Upstream[T]{Up: up}, n: n}
	})
}

type skipStage[T any] struct {
	Upstream[T]
	n       int
	skipped bool
}

func (s *skipStage[T]) HasNext() bool {
	if !s.skipped {
		for i := 0; i < s.n && s.Up.HasNext(); i++ {
			s.Up.Next()
		}
		s.skipped = true
	}
	return s.Up.HasNext()
}

func (s *skipStage[T]) Next() T {
	if !s.HasNext() {
		panic(ErrNoSuchElement)
	}
	return s.Up.Next()
}
