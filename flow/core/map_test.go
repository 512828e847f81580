package core

import (
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		fn       func(int) int
		expected []int
	}{
		{"double", []int{1, 2, 3}, func(n int) int { return n * 2 }, []int{2, 4, 6}},
		{"square", []int{1, 2, 3, 4}, func(n int) int { return n * n }, []int{1, 4, 9, 16}},
		{"empty", nil, func(n int) int { return n }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Map(FromSlice(tt.input), tt.fn).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMapChangesType(t *testing.T) {
	result, err := Map(Of(1, 22, 333), strconv.Itoa).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(result, []string{"1", "22", "333"}) {
		t.Errorf("got %v, want [1 22 333]", result)
	}
}

func TestMapIsPassThrough(t *testing.T) {
	calls := 0
	s := Map(Of(1, 2, 3), func(n int) int {
		calls++
		return n
	})
	st := s.stage

	for i := 0; i < 3; i++ {
		if !st.HasNext() {
			t.Fatal("HasNext() = false, want true")
		}
	}
	if calls != 0 {
		t.Errorf("HasNext applied the mapper %d times, want 0", calls)
	}
	st.Next()
	if calls != 1 {
		t.Errorf("Next applied the mapper %d times, want 1", calls)
	}
}

func TestMapComposition(t *testing.T) {
	f := func(n int) int { return n + 1 }
	g := func(n int) string { return strconv.Itoa(n * 3) }

	chained, err := Map(Map(Range(0, 20), f), g).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	composed, err := Map(Range(0, 20), func(n int) string { return g(f(n)) }).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(chained, composed) {
		t.Errorf("map(f).map(g) = %v, map(g∘f) = %v", chained, composed)
	}
}

func TestTryMap(t *testing.T) {
	boom := errors.New("boom")

	t.Run("all succeed", func(t *testing.T) {
		result, err := TryMap(Of("1", "2", "3"), strconv.Atoi).ToSlice()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(result, []int{1, 2, 3}) {
			t.Errorf("got %v, want [1 2 3]", result)
		}
	})

	t.Run("error aborts the drain", func(t *testing.T) {
		calls := 0
		s := TryMap(Range(1, 10), func(n int) (int, error) {
			calls++
			if n == 3 {
				return 0, boom
			}
			return n, nil
		})
		n, err := s.Count()
		if !errors.Is(err, boom) {
			t.Fatalf("Count() error = %v, want %v", err, boom)
		}
		if n != 0 {
			t.Errorf("Count() = %d, want 0 on failure", n)
		}
		if calls != 3 {
			t.Errorf("mapper called %d times, want 3", calls)
		}
	})

	t.Run("error is returned unmodified", func(t *testing.T) {
		_, err := TryMap(Of("x"), strconv.Atoi).ToSlice()
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) {
			t.Fatalf("error %v is not a *strconv.NumError", err)
		}
	})

	t.Run("error seen through downstream stages", func(t *testing.T) {
		s := TryMap(Range(1, 10), func(n int) (int, error) {
			if n == 4 {
				return 0, boom
			}
			return n, nil
		})
		found, err := s.Filter(func(n int) bool { return n > 100 }).Limit(5).AnyMatch(func(int) bool { return true })
		if found || !errors.Is(err, boom) {
			t.Errorf("AnyMatch() = (%v, %v), want (false, %v)", found, err, boom)
		}
	})
}
