package filter_test

import (
	"errors"
	"testing"

	"github.com/lguimbarda/pullflow/flow"
	"github.com/lguimbarda/pullflow/flow/filter"
)

func TestFind(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	got, err := filter.Find(flow.Of(1, 3, 4, 6), even)
	if err != nil || got.MustGet() != 4 {
		t.Errorf("Find() = (%v, %v), want Some(4)", got, err)
	}
	last, err := filter.FindLast(flow.Of(1, 3, 4, 6, 7), even)
	if err != nil || last.MustGet() != 6 {
		t.Errorf("FindLast() = (%v, %v), want Some(6)", last, err)
	}
	none, err := filter.Find(flow.Of(1, 3), even)
	if err != nil || none.IsPresent() {
		t.Errorf("Find() = (%v, %v), want None", none, err)
	}
}

func TestIndexes(t *testing.T) {
	tests := []struct {
		name string
		run  func() (int, error)
		want int
	}{
		{"find index", func() (int, error) {
			return filter.FindIndex(flow.Of(5, 6, 7), func(n int) bool { return n > 5 })
		}, 1},
		{"find index missing", func() (int, error) {
			return filter.FindIndex(flow.Of(5, 6, 7), func(n int) bool { return n > 9 })
		}, -1},
		{"find last index", func() (int, error) {
			return filter.FindLastIndex(flow.Of(5, 6, 7), func(n int) bool { return n > 5 })
		}, 2},
		{"index of", func() (int, error) { return filter.IndexOf(flow.Of("a", "b", "a"), "a") }, 0},
		{"last index of", func() (int, error) { return filter.LastIndexOf(flow.Of("a", "b", "a"), "a") }, 2},
		{"last index of missing", func() (int, error) { return filter.LastIndexOf(flow.Of("a"), "z") }, -1},
		{"count if", func() (int, error) {
			return filter.CountIf(flow.Range(0, 10), func(n int) bool { return n%3 == 0 })
		}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	pulled := 0
	s := flow.Range(0, 100).Peek(func(int) { pulled++ })
	ok, err := filter.Contains(s, 5)
	if err != nil || !ok {
		t.Errorf("Contains() = (%v, %v), want true", ok, err)
	}
	if pulled != 6 {
		t.Errorf("pulled %d elements, want 6", pulled)
	}

	ok, _ = filter.ContainsBy(flow.Of("go", "rust"), func(s string) bool { return len(s) > 3 })
	if !ok {
		t.Error("ContainsBy() = false, want true")
	}
}

func TestIsEmpty(t *testing.T) {
	empty, _ := filter.IsEmpty(flow.Empty[int]())
	notEmpty, _ := filter.IsNotEmpty(flow.Of(1))
	if !empty || !notEmpty {
		t.Errorf("IsEmpty/IsNotEmpty = %v/%v, want true/true", empty, notEmpty)
	}
}

func TestSequenceEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"equal", []int{1, 2, 3}, []int{1, 2, 3}, true},
		{"both empty", nil, nil, true},
		{"different", []int{1, 2, 3}, []int{1, 9, 3}, false},
		{"shorter", []int{1, 2}, []int{1, 2, 3}, false},
		{"longer", []int{1, 2, 3}, []int{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filter.SequenceEqual(flow.FromSlice(tt.a), flow.FromSlice(tt.b))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSequenceEqualPropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := flow.TryMap(flow.Of(1, 2), func(n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})

	_, err := filter.SequenceEqual(flow.Of(1, 2), failing)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
