package core

// Hooks holds typed observation callbacks for one point of a pipeline.
// All fields are optional - nil means no observation for that event.
// Hooks are invoked synchronously from the pull that triggered them, so
// they should be fast.
type Hooks[T any] struct {
	OnStart    func()      // First pull through this point
	OnValue    func(T)     // Element handed downstream
	OnError    func(error) // Upstream ended with a failure
	OnComplete func()      // Exhaustion observed (after OnError, if any)
}

// Observe inserts an observation stage that invokes the given hooks in
// FIFO order. Elements pass through unchanged.
func (s *Stream[T]) Observe(hooks ...Hooks[T]) *Stream[T] {
	sets := make([]Hooks[T], len(hooks))
	copy(sets, hooks)
	return Extend(s, func(up Stage[T]) Stage[T] {
		return &observeStage[T]{Upstream: Upstream[T]{Up: up}, invoker: newHookInvoker(sets)}
	})
}

// Peek calls fn with every element as it is pulled through.
func (s *Stream[T]) Peek(fn func(T)) *Stream[T] {
	if fn == nil {
		panic("core: nil peek function")
	}
	return s.Observe(Hooks[T]{OnValue: fn})
}

type observeStage[T any] struct {
	Upstream[T]
	invoker   *hookInvoker[T]
	started   bool
	completed bool
}

func (o *observeStage[T]) HasNext() bool {
	if !o.started {
		o.started = true
		o.invoker.invokeStart()
	}
	if o.Up.HasNext() {
		return true
	}
	if !o.completed {
		o.completed = true
		if err := o.Up.Err(); err != nil {
			o.invoker.invokeError(err)
		}
		o.invoker.invokeComplete()
	}
	return false
}

func (o *observeStage[T]) Next() T {
	if !o.HasNext() {
		panic(ErrNoSuchElement)
	}
	v := o.Up.Next()
	o.invoker.invokeValue(v)
	return v
}

// hookInvoker caches whether specific hook types exist to avoid repeated
// nil checks on every element.
type hookInvoker[T any] struct {
	hookSets    []Hooks[T]
	hasStart    bool
	hasValue    bool
	hasError    bool
	hasComplete bool
}

func newHookInvoker[T any](sets []Hooks[T]) *hookInvoker[T] {
	invoker := &hookInvoker[T]{hookSets: sets}
	for _, h := range sets {
		if h.OnStart != nil {
			invoker.hasStart = true
		}
		if h.OnValue != nil {
			invoker.hasValue = true
		}
		if h.OnError != nil {
			invoker.hasError = true
		}
		if h.OnComplete != nil {
			invoker.hasComplete = true
		}
	}
	return invoker
}

func (h *hookInvoker[T]) invokeStart() {
	if !h.hasStart {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnStart != nil {
			hooks.OnStart()
		}
	}
}

func (h *hookInvoker[T]) invokeValue(value T) {
	if !h.hasValue {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnValue != nil {
			hooks.OnValue(value)
		}
	}
}

func (h *hookInvoker[T]) invokeError(err error) {
	if !h.hasError {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnError != nil {
			hooks.OnError(err)
		}
	}
}

func (h *hookInvoker[T]) invokeComplete() {
	if !h.hasComplete {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnComplete != nil {
			hooks.OnComplete()
		}
	}
}

// NewSafeHooks wraps every hook in hooks with panic recovery. A recovered
// panic is handed to panicHandler as an ErrPanic; if panicHandler is nil,
// panics are silently recovered.
func NewSafeHooks[T any](hooks Hooks[T], panicHandler func(ErrPanic)) Hooks[T] {
	if panicHandler == nil {
		panicHandler = func(ErrPanic) {}
	}
	guard := func() {
		if r := recover(); r != nil {
			panicHandler(NewPanicError(r))
		}
	}

	var safe Hooks[T]
	if fn := hooks.OnStart; fn != nil {
		safe.OnStart = func() {
			defer guard()
			fn()
		}
	}
	if fn := hooks.OnValue; fn != nil {
		safe.OnValue = func(v T) {
			defer guard()
			fn(v)
		}
	}
	if fn := hooks.OnError; fn != nil {
		safe.OnError = func(err error) {
			defer guard()
			fn(err)
		}
	}
	if fn := hooks.OnComplete; fn != nil {
		safe.OnComplete = func() {
			defer guard()
			fn()
		}
	}
	return safe
}
