package core

import (
	"errors"
	"maps"
	"runtime"
	"slices"
	"testing"
	"time"
)

func TestFromSlice(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
	}{
		{"nil slice", nil, nil},
		{"empty slice", []int{}, nil},
		{"single element", []int{42}, []int{42}},
		{"multiple elements", []int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FromSlice(tt.input).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	n, err := Empty[string]().Count()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestFromSliceReadsLazily(t *testing.T) {
	data := []int{1, 2, 3}
	s := FromSlice(data)
	first, _ := s.FindFirst()
	data[1] = 20

	rest, err := s.ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.MustGet() != 1 {
		t.Errorf("first = %v, want 1", first)
	}
	// Elements are read lazily, so later writes to the slice are visible.
	if !slices.Equal(rest, []int{20, 3}) {
		t.Errorf("rest = %v, want [20 3]", rest)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		expected []int
	}{
		{"empty range", 5, 5, nil},
		{"reversed range", 5, 1, nil},
		{"single element", 0, 1, []int{0}},
		{"multiple elements", 1, 5, []int{1, 2, 3, 4}},
		{"negative start", -2, 1, []int{-2, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Range(tt.start, tt.end).ToSlice()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

// runePos walks a string rune by rune; equality is by byte offset.
type runePos struct {
	s   string
	off int
}

func (p runePos) Value() rune {
	for _, r := range p.s[p.off:] {
		return r
	}
	return 0
}

func (p runePos) Next() runePos {
	for i := range p.s[p.off:] {
		if i > 0 {
			return runePos{p.s, p.off + i}
		}
	}
	return runePos{p.s, len(p.s)}
}

func TestBetween(t *testing.T) {
	const text = "héllo"
	begin := runePos{text, 0}
	end := runePos{text, len(text)}

	result, err := Between[rune](begin, end).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != text {
		t.Errorf("got %q, want %q", string(result), text)
	}

	n, _ := Between[rune](end, end).Count()
	if n != 0 {
		t.Errorf("Count() with begin == end = %d, want 0", n)
	}
}

func TestFromSeq(t *testing.T) {
	t.Run("slice values", func(t *testing.T) {
		result, err := FromSeq(slices.Values([]string{"a", "b", "c"})).ToSlice()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(result, []string{"a", "b", "c"}) {
			t.Errorf("got %v, want [a b c]", result)
		}
	})

	t.Run("map keys", func(t *testing.T) {
		m := map[string]int{"x": 1, "y": 2, "z": 3}
		result, err := FromSeq(maps.Keys(m)).ToSlice()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		slices.Sort(result)
		if !slices.Equal(result, []string{"x", "y", "z"}) {
			t.Errorf("got %v, want [x y z]", result)
		}
	})

	t.Run("close abandons the iterator", func(t *testing.T) {
		seq := func(yield func(int) bool) {
			for i := 0; ; i++ {
				if !yield(i) {
					return
				}
			}
		}
		s := FromSeq(seq)
		first, _ := s.FindFirst()
		if first.MustGet() != 0 {
			t.Errorf("first = %v, want 0", first)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close() = %v", err)
		}
		n, _ := s.Count()
		if n != 0 {
			t.Errorf("Count() after Close = %d, want 0", n)
		}
	})
}

func TestGenerate(t *testing.T) {
	i := 0
	s := Generate(func() (int, bool) {
		if i >= 3 {
			return 0, false
		}
		i++
		return i * 10, true
	})

	result, err := s.ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(result, []int{10, 20, 30}) {
		t.Errorf("got %v, want [10 20 30]", result)
	}
}

func TestIterate(t *testing.T) {
	result, err := Iterate(1, func(n int) int { return n * 2 }).Limit(5).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(result, []int{1, 2, 4, 8, 16}) {
		t.Errorf("got %v, want [1 2 4 8 16]", result)
	}
}

func TestIterateAppliesFnLazily(t *testing.T) {
	calls := 0
	n, err := Iterate(0, func(v int) int {
		calls++
		return v + 1
	}).Limit(4).Count()
	if err != nil || n != 4 {
		t.Fatalf("Count() = (%d, %v), want 4", n, err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times for 4 elements, want 3", calls)
	}
}

func TestFromSeqStartsOnFirstPull(t *testing.T) {
	started := 0
	seq := func(yield func(int) bool) {
		started++
		yield(1)
	}

	unused := FromSeq(seq)
	if err := unused.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if started != 0 {
		t.Fatalf("iterator started %d times without a pull", started)
	}

	n, err := FromSeq(seq).Count()
	if err != nil || n != 1 || started != 1 {
		t.Errorf("Count() = (%d, %v) with %d starts, want 1 element and 1 start", n, err, started)
	}
}

// settledGoroutines waits up to a second for the goroutine count to drop to
// want and returns the last count seen.
func settledGoroutines(want int) int {
	deadline := time.Now().Add(time.Second)
	n := runtime.NumGoroutine()
	for n > want && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		n = runtime.NumGoroutine()
	}
	return n
}

func TestTerminalsReleaseFromSeq(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	before := runtime.NumGoroutine()

	for range 50 {
		first, err := FromSeq(slices.Values(values)).FindFirst()
		if err != nil || first.MustGet() != 1 {
			t.Fatalf("FindFirst() = (%v, %v)", first, err)
		}
		n, err := FromSeq(slices.Values(values)).Limit(2).Count()
		if err != nil || n != 2 {
			t.Fatalf("Limit(2).Count() = (%d, %v)", n, err)
		}
		found, err := FromSeq(slices.Values(values)).AnyMatch(func(v int) bool { return v == 2 })
		if err != nil || !found {
			t.Fatalf("AnyMatch() = (%v, %v)", found, err)
		}
		for v := range FromSeq(slices.Values(values)).All() {
			if v == 2 {
				break
			}
		}
		_ = FromSeq(slices.Values(values))
	}

	if after := settledGoroutines(before); after > before {
		t.Errorf("goroutines before=%d after=%d", before, after)
	}
}

type closeFailing struct {
	sliceSource[int]
	closed int
}

var errCloseFailed = errors.New("close failed")

func (c *closeFailing) Close() error {
	c.closed++
	return errCloseFailed
}

func TestTerminalReportsCloseFailure(t *testing.T) {
	src := &closeFailing{sliceSource: sliceSource[int]{items: []int{1, 2}}}
	n, err := New[int](src).Count()
	if !errors.Is(err, errCloseFailed) {
		t.Fatalf("Count() = (%d, %v), want errCloseFailed", n, err)
	}
	if src.closed != 1 {
		t.Errorf("closed %d times, want 1", src.closed)
	}

	boom := errors.New("boom")
	failing := &closeFailing{sliceSource: sliceSource[int]{items: []int{1}}}
	_, err = TryMap(New[int](failing), func(int) (int, error) { return 0, boom }).ToSlice()
	if !errors.Is(err, boom) {
		t.Errorf("drain failure should win over the close failure, got %v", err)
	}
}

func TestFromMap(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	entries, err := FromMap(m).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make(map[string]int)
	for _, e := range entries {
		got[e.Key] = e.Value
	}
	if !maps.Equal(got, m) {
		t.Errorf("got %v, want %v", got, m)
	}
}

func TestAll(t *testing.T) {
	var got []int
	s := Of(1, 2, 3)
	for v := range s.All() {
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestAll_EarlyTermination(t *testing.T) {
	s := Of(1, 2, 3, 4)
	for v := range s.All() {
		if v == 2 {
			break
		}
	}
	rest, err := s.ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(rest, []int{3, 4}) {
		t.Errorf("rest = %v, want [3 4]", rest)
	}
}

func TestAll_WithErrors(t *testing.T) {
	boom := errors.New("boom")
	s := TryMap(Of(1, 2, 3), func(n int) (int, error) {
		if n == 3 {
			return 0, boom
		}
		return n, nil
	})

	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if err := s.Err(); !errors.Is(err, boom) {
		t.Errorf("Err() = %v, want %v", err, boom)
	}
}

// squareStage is a stage kind defined outside the built-in set.
type squareStage struct {
	up Stage[int]
}

func (s squareStage) HasNext() bool { return s.up.HasNext() }

func (s squareStage) Next() int {
	v := s.up.Next()
	return v * v
}

func (s squareStage) Err() error { return s.up.Err() }

func TestExtend(t *testing.T) {
	squared := Extend(Range(1, 5), func(up Stage[int]) Stage[int] {
		return squareStage{up: up}
	})

	result, err := squared.Filter(func(n int) bool { return n > 1 }).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(result, []int{4, 9, 16}) {
		t.Errorf("got %v, want [4 9 16]", result)
	}
}

func TestNewPanicsOnNilStage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) should panic")
		}
	}()
	New[int](nil)
}
