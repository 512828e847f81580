package observe

import "github.com/lguimbarda/pullflow/flow/core"

// Notification represents a materialized stream event.
// This allows downstream operators to treat all events uniformly.
type Notification[T any] struct {
	Kind  NotificationKind
	Value T
	Error error
}

// NotificationKind indicates the type of notification.
type NotificationKind int

const (
	NotificationValue NotificationKind = iota
	NotificationError
	NotificationComplete
)

func (k NotificationKind) String() string {
	switch k {
	case NotificationValue:
		return "value"
	case NotificationError:
		return "error"
	case NotificationComplete:
		return "complete"
	}
	return "unknown"
}

// MaterializeNotification converts a stream of T into a stream of Notification[T].
// Every element becomes a value notification; the end of the upstream becomes
// one final error or complete notification. The upstream failure is
// consumed: the materialized stream itself ends normally.
func MaterializeNotification[T any]() core.Transformer[T, Notification[T]] {
	return func(s *core.Stream[T]) *core.Stream[Notification[T]] {
		return core.Extend(s, func(up core.Stage[T]) core.Stage[Notification[T]] {
			return &materializeStage[T]{up: up}
		})
	}
}

type materializeStage[T any] struct {
	up       core.Stage[T]
	finished bool
}

func (m *materializeStage[T]) HasNext() bool {
	return !m.finished
}

func (m *materializeStage[T]) Next() Notification[T] {
	if m.finished {
		panic(core.ErrNoSuchElement)
	}
	if m.up.HasNext() {
		return Notification[T]{Kind: NotificationValue, Value: m.up.Next()}
	}
	m.finished = true
	if err := m.up.Err(); err != nil {
		return Notification[T]{Kind: NotificationError, Error: err}
	}
	return Notification[T]{Kind: NotificationComplete}
}

func (m *materializeStage[T]) Err() error { return nil }

func (m *materializeStage[T]) Close() error { return core.CloseStage(m.up) }

// DematerializeNotification converts a stream of Notification[T] back to T.
// An error notification ends the stream with that error; a complete
// notification ends it normally.
func DematerializeNotification[T any]() core.Transformer[Notification[T], T] {
	return func(s *core.Stream[Notification[T]]) *core.Stream[T] {
		return core.Extend(s, func(up core.Stage[Notification[T]]) core.Stage[T] {
			return &dematerializeStage[T]{Upstream: core.Upstream[Notification[T]]{Up: up}}
		})
	}
}

type dematerializeStage[T any] struct {
	core.Upstream[Notification[T]]
	pending T
	holding bool
	done    bool
	err     error
}

func (d *dematerializeStage[T]) HasNext() bool {
	if d.holding {
		return true
	}
	for !d.done && d.Up.HasNext() {
		n := d.Up.Next()
		switch n.Kind {
		case NotificationValue:
			d.pending, d.holding = n.Value, true
			return true
		case NotificationError:
			d.err, d.done = n.Error, true
		case NotificationComplete:
			d.done = true
		}
	}
	d.done = true
	return false
}

func (d *dematerializeStage[T]) Next() T {
	if !d.HasNext() {
		panic(core.ErrNoSuchElement)
	}
	var zero T
	v := d.pending
	d.pending, d.holding = zero, false
	return v
}

func (d *dematerializeStage[T]) Err() error {
	if d.err != nil {
		return d.err
	}
	return d.Up.Err()
}
