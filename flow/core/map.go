package core

// Map transforms every element with fn. It is a stateless pass-through:
// it pulls exactly one upstream element per element it produces.
func Map[IN, OUT any](s *Stream[IN], fn func(IN) OUT) *Stream[OUT] {
	if fn == nil {
		panic("core: nil map function")
	}
	return Extend(s, func(up Stage[IN]) Stage[OUT] {
		return &mapStage[IN, OUT]{Upstream: Upstream[IN]{Up: up}, fn: fn}
	})
}

type mapStage[IN, OUT any] struct {
	Upstream[IN]
	fn func(IN) OUT
}

func (m *mapStage[IN, OUT]) HasNext() bool {
	return m.Up.HasNext()
}

func (m *mapStage[IN, OUT]) Next() OUT {
	return m.fn(m.Up.Next())
}

// TryMap is Map with a fallible function. Since a failure must be known
// before an element is promised, the mapped value is computed in HasNext
// and held until Next. The first error ends the stream.
func TryMap[IN, OUT any](s *Stream[IN], fn func(IN) (OUT, error)) *Stream[OUT] {
	if fn == nil {
		panic("core: nil map function")
	}
	return Extend(s, func(up Stage[IN]) Stage[OUT] {
		return &tryMapStage[IN, OUT]{Upstream: Upstream[IN]{Up: up}, fn: fn}
	})
}

type tryMapStage[IN, OUT any] struct {
	Upstream[IN]
	fn      func(IN) (OUT, error)
	pending OUT
	holding bool
	done    bool
	err     error
}

func (m *tryMapStage[IN, OUT]) HasNext() bool {
	if m.holding {
		return true
	}
	if m.done {
		return false
	}
	if !m.Up.HasNext() {
		m.done = true
		return false
	}
	v, err := m.fn(m.Up.Next())
	if err != nil {
		m.err, m.done = err, true
		return false
	}
	m.pending, m.holding = v, true
	return true
}

func (m *tryMapStage[IN, OUT]) Next() OUT {
	if !m.HasNext() {
		panic(ErrNoSuchElement)
	}
	var zero OUT
	v := m.pending
	m.pending, m.holding = zero, false
	return v
}

func (m *tryMapStage[IN, OUT]) Err() error {
	if m.err != nil {
		return m.err
	}
	return m.Up.Err()
}
