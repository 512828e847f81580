package fast

// Mapper is a simple transformation function.
// Panics are NOT recovered - use only with trusted transformation functions.
type Mapper[IN, OUT any] func(IN) OUT

// Map creates a Mapper from a function.
func Map[IN, OUT any](fn func(IN) OUT) Mapper[IN, OUT] {
	return fn
}

// Apply transforms a Seq using this Mapper.
func (m Mapper[IN, OUT]) Apply(s Seq[IN]) Seq[OUT] {
	return func(yield func(OUT) bool) {
		for v := range s {
			if !yield(m(v)) {
				return
			}
		}
	}
}

// FlatMapper transforms one input into zero or more outputs.
type FlatMapper[IN, OUT any] func(IN) []OUT

// FlatMap creates a FlatMapper from a function.
func FlatMap[IN, OUT any](fn func(IN) []OUT) FlatMapper[IN, OUT] {
	return fn
}

// Apply transforms a Seq using this FlatMapper.
func (m FlatMapper[IN, OUT]) Apply(s Seq[IN]) Seq[OUT] {
	return func(yield func(OUT) bool) {
		for v := range s {
			for _, out := range m(v) {
				if !yield(out) {
					return
				}
			}
		}
	}
}

// Fuse combines two Mappers into one.
func Fuse[IN, MID, OUT any](first Mapper[IN, MID], second Mapper[MID, OUT]) Mapper[IN, OUT] {
	return func(in IN) OUT {
		return second(first(in))
	}
}

// Predicate is a filter function.
type Predicate[T any] func(T) bool

// Filter keeps the values that satisfy pred.
func Filter[T any](s Seq[T], pred Predicate[T]) Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}
