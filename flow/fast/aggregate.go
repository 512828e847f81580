package fast

// Take limits the Seq to its first n values.
func Take[T any](s Seq[T], n int) Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v := range s {
			if !yield(v) {
				return
			}
			i++
			if i == n {
				return
			}
		}
	}
}

// Skip drops the first n values.
func Skip[T any](s Seq[T], n int) Seq[T] {
	return func(yield func(T) bool) {
		i := 0
		for v := range s {
			if i < n {
				i++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Batch groups values into slices of size. The last batch may be shorter.
func Batch[T any](s Seq[T], size int) Seq[[]T] {
	if size <= 0 {
		size = 1
	}
	return func(yield func([]T) bool) {
		batch := make([]T, 0, size)
		for v := range s {
			batch = append(batch, v)
			if len(batch) == size {
				if !yield(batch) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}

// Reduce combines all values into a single result. ok is false for an
// empty Seq.
func Reduce[T any](s Seq[T], fn func(T, T) T) (acc T, ok bool) {
	for v := range s {
		if !ok {
			acc, ok = v, true
			continue
		}
		acc = fn(acc, v)
	}
	return acc, ok
}

// Fold reduces with an initial value.
func Fold[T, R any](s Seq[T], initial R, fn func(R, T) R) R {
	acc := initial
	for v := range s {
		acc = fn(acc, v)
	}
	return acc
}
