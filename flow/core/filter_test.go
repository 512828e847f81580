package core

import (
	"errors"
	"slices"
	"testing"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		pred     func(int) bool
		expected []int
	}{
		{"even numbers", []int{1, 2, 3, 4, 5, 6}, func(n int) bool { return n%2 == 0 }, []int{2, 4, 6}},
		{"all match", []int{2, 4, 6}, func(n int) bool { return n%2 == 0 }, []int{2, 4, 6}},
		{"none match", []int{1, 3, 5}, func(n int) bool { return n%2 == 0 }, nil},
		{"empty", nil, func(n int) bool { return true }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FromSlice(tt.input).Filter(tt.pred).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFilterStateMachine(t *testing.T) {
	pulled := 0
	s := Range(1, 11).Peek(func(int) { pulled++ }).Filter(func(n int) bool { return n%3 == 0 })
	st := s.stage

	if pulled != 0 {
		t.Fatalf("building the pipeline pulled %d elements", pulled)
	}
	if !st.HasNext() || !st.HasNext() {
		t.Fatal("HasNext() = false, want true")
	}
	if pulled != 3 {
		t.Errorf("pulled %d elements after seeking, want 3", pulled)
	}
	if v := st.Next(); v != 3 {
		t.Errorf("Next() = %d, want 3", v)
	}
	// Next without HasNext seeks on its own.
	if v := st.Next(); v != 6 {
		t.Errorf("Next() = %d, want 6", v)
	}
	if v := st.Next(); v != 9 {
		t.Errorf("Next() = %d, want 9", v)
	}
	if st.HasNext() {
		t.Error("HasNext() = true after last match, want false")
	}
	if st.HasNext() {
		t.Error("exhausted filter reported more elements")
	}
	if pulled != 10 {
		t.Errorf("pulled %d elements in total, want 10", pulled)
	}
}

func TestTryFilter(t *testing.T) {
	boom := errors.New("boom")
	s := Range(1, 10).TryFilter(func(n int) (bool, error) {
		if n == 5 {
			return false, boom
		}
		return n%2 == 0, nil
	})

	result, err := s.ToSlice()
	if !errors.Is(err, boom) {
		t.Fatalf("ToSlice() error = %v, want %v", err, boom)
	}
	if result != nil {
		t.Errorf("ToSlice() returned partial result %v", result)
	}

	// The failure is permanent.
	n, err := s.Count()
	if n != 0 || !errors.Is(err, boom) {
		t.Errorf("Count() after failure = (%d, %v), want (0, %v)", n, err, boom)
	}
}

func TestFilterNilPredicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Filter(nil) should panic")
		}
	}()
	Of(1).Filter(nil)
}
