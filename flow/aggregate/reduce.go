// Package aggregate provides folding terminals and the stateful stages that
// emit running or grouped aggregates.
package aggregate

import (
	"fmt"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Numeric is satisfied by the built-in integer and floating-point types.
type Numeric = core.Number

// Fold reduces all items to a single value of a possibly different type,
// starting from initial. An empty stream returns initial.
func Fold[T, R any](s *core.Stream[T], initial R, folder func(acc R, item T) R) (R, error) {
	acc := initial
	if err := s.ForEach(func(v T) { acc = folder(acc, v) }); err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// Sum adds up all items. An empty stream sums to zero.
func Sum[T Numeric](s *core.Stream[T]) (T, error) {
	return s.Fold(0, func(a, b T) T { return a + b })
}

// Summary describes a numeric stream in one pass.
type Summary[T Numeric] struct {
	Count int
	Sum   T
	Min   T
	Max   T
	Mean  float64
}

func (s Summary[T]) String() string {
	if s.Count == 0 {
		return "count=0"
	}
	return fmt.Sprintf("count=%d sum=%v min=%v max=%v mean=%g", s.Count, s.Sum, s.Min, s.Max, s.Mean)
}

// Summarize drains the stream and reports its count, sum, min, max and mean.
// Min and max keep the earliest of equal values. An empty stream gives the
// zero Summary.
func Summarize[T Numeric](s *core.Stream[T]) (Summary[T], error) {
	var sum Summary[T]
	err := s.ForEach(func(v T) {
		if sum.Count == 0 {
			sum.Min, sum.Max = v, v
		} else {
			if v < sum.Min {
				sum.Min = v
			}
			if v > sum.Max {
				sum.Max = v
			}
		}
		sum.Count++
		sum.Sum += v
	})
	if err != nil {
		return Summary[T]{}, err
	}
	if sum.Count > 0 {
		sum.Mean = float64(sum.Sum) / float64(sum.Count)
	}
	return sum, nil
}

// Scan creates a Transformer that emits each intermediate accumulated value.
// Like Fold, but emits after each item rather than only at the end.
// The initial value is NOT emitted - only values after processing items.
func Scan[T, R any](initial R, scanner func(acc R, item T) R) core.Transformer[T, R] {
	return func(s *core.Stream[T]) *core.Stream[R] {
		acc := initial
		return core.Map(s, func(v T) R {
			acc = scanner(acc, v)
			return acc
		})
	}
}

// RunningSum emits the sum of all items seen so far.
func RunningSum[T Numeric]() core.Transformer[T, T] {
	return Scan(T(0), func(acc, v T) T { return acc + v })
}
