package fast

// Slice collects all values.
func Slice[T any](s Seq[T]) []T {
	var result []T
	for v := range s {
		result = append(result, v)
	}
	return result
}

// First returns the first value, if any.
func First[T any](s Seq[T]) (T, bool) {
	for v := range s {
		return v, true
	}
	var zero T
	return zero, false
}

// Count returns the number of values.
func Count[T any](s Seq[T]) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// ForEach calls fn for each value.
func ForEach[T any](s Seq[T], fn func(T)) {
	for v := range s {
		fn(v)
	}
}
