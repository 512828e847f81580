package core

import (
	"slices"
	"testing"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		n        int
		expected []int
	}{
		{"limit 3", []int{1, 2, 3, 4, 5}, 3, []int{1, 2, 3}},
		{"limit more than available", []int{1, 2}, 5, []int{1, 2}},
		{"limit zero", []int{1, 2, 3}, 0, nil},
		{"empty input", nil, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FromSlice(tt.input).Limit(tt.n).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLimitDoesNotOverPull(t *testing.T) {
	pulled := 0
	s := Range(0, 100).Peek(func(int) { pulled++ }).Limit(3)

	n, err := s.Count()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
	if pulled != 3 {
		t.Errorf("pulled %d elements, want 3", pulled)
	}
}

func TestLimitOnInfiniteSource(t *testing.T) {
	n, err := Iterate(0, func(n int) int { return n + 1 }).Limit(1000).Count()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1000 {
		t.Errorf("Count() = %d, want 1000", n)
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		n        int
		expected []int
	}{
		{"skip 2", []int{1, 2, 3, 4, 5}, 2, []int{3, 4, 5}},
		{"skip all", []int{1, 2, 3}, 3, nil},
		{"skip more than available", []int{1, 2}, 5, nil},
		{"skip zero", []int{1, 2, 3}, 0, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FromSlice(tt.input).Skip(tt.n).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSkipIsLazy(t *testing.T) {
	pulled := 0
	s := Range(0, 10).Peek(func(int) { pulled++ }).Skip(4)
	if pulled != 0 {
		t.Fatalf("Skip pulled %d elements before first use", pulled)
	}

	first, err := s.FindFirst()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.MustGet() != 4 {
		t.Errorf("FindFirst() = %v, want Some(4)", first)
	}
	if pulled != 5 {
		t.Errorf("pulled %d elements, want 5", pulled)
	}

	// The discard phase runs once.
	rest, _ := s.ToSlice()
	if !slices.Equal(rest, []int{5, 6, 7, 8, 9}) {
		t.Errorf("rest = %v, want [5 6 7 8 9]", rest)
	}
}

func TestLimitSkipCountLaws(t *testing.T) {
	for size := 0; size <= 6; size++ {
		for n := 0; n <= 8; n++ {
			limited, _ := Range(0, size).Limit(n).Count()
			if want := min(n, size); limited != want {
				t.Errorf("Range(0,%d).Limit(%d).Count() = %d, want %d", size, n, limited, want)
			}
			skipped, _ := Range(0, size).Skip(n).Count()
			if want := max(0, size-n); skipped != want {
				t.Errorf("Range(0,%d).Skip(%d).Count() = %d, want %d", size, n, skipped, want)
			}
		}
	}
}

func TestSkipThenLimit(t *testing.T) {
	result, err := Range(0, 20).Skip(5).Limit(3).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(result, []int{5, 6, 7}) {
		t.Errorf("got %v, want [5 6 7]", result)
	}
}

func TestNegativeLimitPanics(t *testing.T) {
	for name, build := range map[string]func(){
		"limit": func() { Of(1).Limit(-1) },
		"skip":  func() { Of(1).Skip(-1) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s(-1) should panic", name)
				}
			}()
			build()
		})
	}
}
