package filter

import "github.com/lguimbarda/pullflow/flow/core"

// DistinctUntilChanged creates a Transformer that only emits when the current item
// is different from the previous item.
func DistinctUntilChanged[T comparable]() core.Transformer[T, T] {
	return DistinctUntilChangedBy(func(v T) T { return v })
}

// DistinctUntilChangedBy creates a Transformer that only emits when the key
// derived from the current item is different from the key of the previous item.
func DistinctUntilChangedBy[T any, K comparable](keyFn func(T) K) core.Transformer[T, T] {
	return selecting(func() func(T) verdict {
		var lastKey K
		first := true
		return func(v T) verdict {
			key := keyFn(v)
			if first || key != lastKey {
				first = false
				lastKey = key
				return keep
			}
			return drop
		}
	})
}

// EveryNth creates a Transformer that emits the nth, 2nth, 3nth... item.
// If n <= 1, every item is emitted.
func EveryNth[T any](n int) core.Transformer[T, T] {
	if n <= 0 {
		n = 1
	}
	return selecting(func() func(T) verdict {
		count := 0
		return func(T) verdict {
			count++
			if count == n {
				count = 0
				return keep
			}
			return drop
		}
	})
}

// TakeEvery is an alias for EveryNth with a more descriptive name.
func TakeEvery[T any](n int) core.Transformer[T, T] {
	return EveryNth[T](n)
}
