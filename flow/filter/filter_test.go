package filter_test

import (
	"slices"
	"strconv"
	"testing"

	"github.com/lguimbarda/pullflow/flow"
	"github.com/lguimbarda/pullflow/flow/filter"
)

func TestWhere(t *testing.T) {
	tests := []struct {
		name      string
		input     []int
		predicate func(int) bool
		want      []int
	}{
		{
			name:      "filter even numbers",
			input:     []int{1, 2, 3, 4, 5, 6},
			predicate: func(n int) bool { return n%2 == 0 },
			want:      []int{2, 4, 6},
		},
		{
			name:      "filter none",
			input:     []int{1, 2, 3},
			predicate: func(n int) bool { return true },
			want:      []int{1, 2, 3},
		},
		{
			name:      "filter all",
			input:     []int{1, 2, 3},
			predicate: func(n int) bool { return false },
			want:      nil,
		},
		{
			name:      "empty input",
			input:     []int{},
			predicate: func(n int) bool { return true },
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filter.Where(tt.predicate)(flow.FromSlice(tt.input)).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExclude(t *testing.T) {
	got, err := flow.Pipe(flow.Range(0, 10), filter.Exclude(func(n int) bool { return n < 7 })).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []int{7, 8, 9}) {
		t.Errorf("got %v, want [7 8 9]", got)
	}
}

func TestMapWhere(t *testing.T) {
	parse := filter.MapWhere(func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	})

	got, err := parse(flow.Of("1", "x", "3", "", "5")).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("got %v, want [1 3 5]", got)
	}
}

func TestMapWhereHoldsLookahead(t *testing.T) {
	calls := 0
	s := filter.MapWhere(func(n int) (int, bool) {
		calls++
		return n * 10, n > 1
	})(flow.Of(1, 2, 3))

	first, _ := s.FindFirst()
	if first.MustGet() != 20 || calls != 2 {
		t.Errorf("FindFirst() = %v after %d calls, want Some(20) after 2", first, calls)
	}
}
