// Package benchmarks provides comparative benchmarks of pullflow against
// popular Go sequence processing libraries and a hand-written loop.
package benchmarks

import (
	"strconv"
	"testing"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

var sizes = []struct {
	name string
	n    int
}{
	{"Small", SmallSize},
	{"Medium", MediumSize},
	{"Large", LargeSize},
}

// bySize runs fn as a sub-benchmark for every data size, with the timer
// reset after the input is generated.
func bySize(b *testing.B, fn func(b *testing.B, data []int)) {
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			data := generateInts(size.n)
			b.ReportAllocs()
			b.ResetTimer()
			fn(b, data)
		})
	}
}

// generateInts creates a slice of integers for benchmarking.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

// generateStrings creates a slice of strings for benchmarking.
func generateStrings(n int) []string {
	data := make([]string, n)
	for i := range data {
		data[i] = strconv.Itoa(i % 50)
	}
	return data
}

func square(x int) int { return x * x }

func isEven(x int) bool { return x%2 == 0 }

func add(a, b int) int { return a + b }
