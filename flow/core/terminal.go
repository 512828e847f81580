package core

import "cmp"

// Terminal operations drain the stream to a single result or side effect.
// Every one of them returns an error: ErrStreamLinked for a handle whose
// stage was moved downstream, or the failure latched by a fallible stage,
// returned unmodified. A stream that has been drained stays drained; a
// second terminal operation sees no elements.
//
// When a terminal returns it closes the chain it drained, so sources such
// as FromSeq are released even if the drain stopped early.

// release closes st and reports a Close failure through *err, unless the
// terminal already has an error to return.
func release[T any](st Stage[T], err *error) {
	if cerr := CloseStage(st); cerr != nil && *err == nil {
		*err = cerr
	}
}

// Count returns the number of remaining elements.
func (s *Stream[T]) Count() (n int, err error) {
	st, err := s.use()
	if err != nil {
		return 0, err
	}
	defer release(st, &err)
	for st.HasNext() {
		st.Next()
		n++
	}
	if err := st.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

// ForEach calls fn with each element in encounter order.
func (s *Stream[T]) ForEach(fn func(T)) error {
	return s.TryForEach(func(v T) error {
		fn(v)
		return nil
	})
}

// TryForEach calls fn with each element and stops at the first error,
// which is returned unmodified.
func (s *Stream[T]) TryForEach(fn func(T) error) (err error) {
	st, err := s.use()
	if err != nil {
		return err
	}
	defer release(st, &err)
	for st.HasNext() {
		if err := fn(st.Next()); err != nil {
			return err
		}
	}
	return st.Err()
}

// FindFirst returns the first element, if any. It pulls at most one.
func (s *Stream[T]) FindFirst() (first Optional[T], err error) {
	st, err := s.use()
	if err != nil {
		return None[T](), err
	}
	defer release(st, &err)
	if st.HasNext() {
		return Some(st.Next()), nil
	}
	return None[T](), st.Err()
}

// AllMatch reports whether every element satisfies pred. It stops at the
// first element that does not. An empty stream matches.
func (s *Stream[T]) AllMatch(pred func(T) bool) (bool, error) {
	found, err := s.search(func(v T) bool { return !pred(v) })
	return !found, err
}

// AnyMatch reports whether some element satisfies pred. It stops at the
// first element that does. An empty stream does not match.
func (s *Stream[T]) AnyMatch(pred func(T) bool) (bool, error) {
	return s.search(pred)
}

// NoneMatch reports whether no element satisfies pred. It stops at the
// first element that does. An empty stream matches.
func (s *Stream[T]) NoneMatch(pred func(T) bool) (bool, error) {
	found, err := s.search(pred)
	return !found, err
}

// search pulls until pred holds. A failure reports false alongside the error.
func (s *Stream[T]) search(pred func(T) bool) (found bool, err error) {
	st, err := s.use()
	if err != nil {
		return false, err
	}
	defer release(st, &err)
	for st.HasNext() {
		if pred(st.Next()) {
			return true, nil
		}
	}
	return false, st.Err()
}

// Min returns the least element according to compare, which returns a
// negative number, zero or a positive number when a is less than, equal to
// or greater than b. Among equal least elements the first one wins.
func (s *Stream[T]) Min(compare func(a, b T) int) (Optional[T], error) {
	return s.extremum(func(v, best T) bool { return compare(v, best) < 0 })
}

// Max returns the greatest element according to compare. Among equal
// greatest elements the first one wins.
func (s *Stream[T]) Max(compare func(a, b T) int) (Optional[T], error) {
	return s.extremum(func(v, best T) bool { return compare(v, best) > 0 })
}

// extremum keeps the current best and replaces it only with a strictly
// better element, so ties go to the earliest.
func (s *Stream[T]) extremum(better func(v, best T) bool) (result Optional[T], err error) {
	st, err := s.use()
	if err != nil {
		return None[T](), err
	}
	defer release(st, &err)
	if !st.HasNext() {
		return None[T](), st.Err()
	}
	best := st.Next()
	for st.HasNext() {
		if v := st.Next(); better(v, best) {
			best = v
		}
	}
	if err := st.Err(); err != nil {
		return None[T](), err
	}
	return Some(best), nil
}

// MinOf returns the least element by natural ordering.
func MinOf[T cmp.Ordered](s *Stream[T]) (Optional[T], error) {
	return s.Min(cmp.Compare[T])
}

// MaxOf returns the greatest element by natural ordering.
func MaxOf[T cmp.Ordered](s *Stream[T]) (Optional[T], error) {
	return s.Max(cmp.Compare[T])
}

// Reduce left-folds the elements with acc, starting from the first one.
// An empty stream gives None; a single element is returned as is.
func (s *Stream[T]) Reduce(acc func(T, T) T) (reduced Optional[T], err error) {
	st, err := s.use()
	if err != nil {
		return None[T](), err
	}
	defer release(st, &err)
	if !st.HasNext() {
		return None[T](), st.Err()
	}
	result := st.Next()
	for st.HasNext() {
		result = acc(result, st.Next())
	}
	if err := st.Err(); err != nil {
		return None[T](), err
	}
	return Some(result), nil
}

// Fold left-folds the elements with acc, starting from identity.
func (s *Stream[T]) Fold(identity T, acc func(T, T) T) (folded T, err error) {
	st, err := s.use()
	if err != nil {
		return identity, err
	}
	defer release(st, &err)
	result := identity
	for st.HasNext() {
		result = acc(result, st.Next())
	}
	if err := st.Err(); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Number is satisfied by the built-in integer and floating-point types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Average returns the arithmetic mean of the elements, accumulated in A
// starting from identity. An empty stream returns identity. With an integer
// A the division truncates, and the sum wraps like any A arithmetic. If the
// element count cannot be represented in A, Average fails with
// ErrCountOverflow instead of dividing by a wrapped count.
func Average[T, A Number](s *Stream[T], identity A) (avg A, err error) {
	st, err := s.use()
	if err != nil {
		return identity, err
	}
	defer release(st, &err)
	sum := identity
	var count int
	for st.HasNext() {
		sum += A(st.Next())
		count++
	}
	if err := st.Err(); err != nil {
		var zero A
		return zero, err
	}
	if count == 0 {
		return identity, nil
	}
	divisor := A(count)
	if divisor <= 0 || int(divisor) != count {
		var zero A
		return zero, ErrCountOverflow
	}
	return sum / divisor, nil
}

// ToSlice collects the elements into a new slice in drain order.
func (s *Stream[T]) ToSlice() ([]T, error) {
	return s.AppendTo(nil)
}

// AppendTo appends the elements to dst in drain order. On failure it
// returns dst as it was passed in.
func (s *Stream[T]) AppendTo(dst []T) (out []T, err error) {
	st, err := s.use()
	if err != nil {
		return dst, err
	}
	defer release(st, &err)
	out = dst
	for st.HasNext() {
		out = append(out, st.Next())
	}
	if err := st.Err(); err != nil {
		return dst, err
	}
	return out, nil
}
