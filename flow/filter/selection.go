package filter

import (
	"iter"

	"github.com/lguimbarda/pullflow/flow/core"
)

// The functions below are terminal: they drain (or partially drain) the
// stream and return a single answer with the stream's error.

// Find returns the first item matching the predicate.
func Find[T any](s *core.Stream[T], predicate func(T) bool) (core.Optional[T], error) {
	return s.Filter(predicate).FindFirst()
}

// FindIndex returns the 0-based index of the first item matching the
// predicate, or -1 if none matches.
func FindIndex[T any](s *core.Stream[T], predicate func(T) bool) (int, error) {
	index := -1
	i := 0
	found, err := s.AnyMatch(func(v T) bool {
		if predicate(v) {
			index = i
			return true
		}
		i++
		return false
	})
	if err != nil || !found {
		return -1, err
	}
	return index, nil
}

// FindLast returns the last item matching the predicate.
func FindLast[T any](s *core.Stream[T], predicate func(T) bool) (core.Optional[T], error) {
	return Last[T](1)(s.Filter(predicate)).FindFirst()
}

// FindLastIndex returns the 0-based index of the last item matching the
// predicate, or -1 if none matches.
func FindLastIndex[T any](s *core.Stream[T], predicate func(T) bool) (int, error) {
	index := -1
	i := 0
	err := s.ForEach(func(v T) {
		if predicate(v) {
			index = i
		}
		i++
	})
	if err != nil {
		return -1, err
	}
	return index, nil
}

// Contains reports whether the stream holds value. It stops at the first match.
func Contains[T comparable](s *core.Stream[T], value T) (bool, error) {
	return s.AnyMatch(func(v T) bool { return v == value })
}

// ContainsBy reports whether some item matches the predicate.
func ContainsBy[T any](s *core.Stream[T], predicate func(T) bool) (bool, error) {
	return s.AnyMatch(predicate)
}

// IsEmpty reports whether the stream has no items. It pulls at most one.
func IsEmpty[T any](s *core.Stream[T]) (bool, error) {
	first, err := s.FindFirst()
	return !first.IsPresent(), err
}

// IsNotEmpty reports whether the stream has at least one item.
func IsNotEmpty[T any](s *core.Stream[T]) (bool, error) {
	empty, err := IsEmpty(s)
	return !empty, err
}

// IndexOf returns the index of the first occurrence of value, or -1.
func IndexOf[T comparable](s *core.Stream[T], value T) (int, error) {
	return FindIndex(s, func(v T) bool { return v == value })
}

// LastIndexOf returns the index of the last occurrence of value, or -1.
func LastIndexOf[T comparable](s *core.Stream[T], value T) (int, error) {
	return FindLastIndex(s, func(v T) bool { return v == value })
}

// CountIf returns the number of items matching the predicate.
func CountIf[T any](s *core.Stream[T], predicate func(T) bool) (int, error) {
	return s.Filter(predicate).Count()
}

// SequenceEqual reports whether both streams hold equal items in the same
// order. Both streams are pulled in lockstep and comparison stops at the
// first difference.
func SequenceEqual[T comparable](s, other *core.Stream[T]) (bool, error) {
	return SequenceEqualBy(s, other, func(a, b T) bool { return a == b })
}

// SequenceEqualBy is SequenceEqual with a custom equality function.
func SequenceEqualBy[T any](s, other *core.Stream[T], equals func(T, T) bool) (bool, error) {
	nextA, stopA := iter.Pull(s.All())
	defer stopA()
	nextB, stopB := iter.Pull(other.All())
	defer stopB()

	equal := false
	for {
		a, okA := nextA()
		b, okB := nextB()
		if !okA || !okB {
			equal = okA == okB
			break
		}
		if !equals(a, b) {
			break
		}
	}
	if err := s.Err(); err != nil {
		return false, err
	}
	if err := other.Err(); err != nil {
		return false, err
	}
	return equal, nil
}
