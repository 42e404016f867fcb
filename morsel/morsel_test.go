package morsel

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/streamfusion/errors"
	"github.com/kbukum/streamfusion/stream"
)

func collect[T any](t *testing.T, s *Source[T]) []Morsel[T] {
	t.Helper()
	var out []Morsel[T]
	for {
		step := s.Poll(context.Background())
		if m, ok := step.Item(); ok {
			out = append(out, m)
			continue
		}
		if step.IsDone() {
			return out
		}
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		_, err := New[int](stream.Range(0, 3), c)
		appErr, ok := errors.AsAppError(err)
		if !ok || appErr.Code != errors.ErrCodeInvalidConfig {
			t.Fatalf("capacity %d: expected INVALID_CONFIG, got %v", c, err)
		}
		if appErr.Details["field"] != "morsel_capacity" {
			t.Errorf("capacity %d: expected field morsel_capacity, got %v", c, appErr.Details["field"])
		}
	}
}

func TestSource_Completeness(t *testing.T) {
	tests := []struct {
		n, capacity int
		morsels     int
		lastLen     int
	}{
		{0, 4, 0, 0},
		{1, 4, 1, 1},
		{8, 4, 2, 4},
		{10, 4, 3, 2},
		{4096, 256, 16, 256},
		{4096, 1000, 5, 96},
	}
	for _, tc := range tests {
		s, err := New[int](stream.Range(0, tc.n), tc.capacity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h := s.SizeHint(); h != stream.Exact(tc.morsels) {
			t.Errorf("n=%d cap=%d: expected hint exact(%d), got %+v", tc.n, tc.capacity, tc.morsels, h)
		}
		ms := collect(t, s)
		if len(ms) != tc.morsels || s.Emitted() != tc.morsels {
			t.Errorf("n=%d cap=%d: expected %d morsels, got %d (emitted %d)", tc.n, tc.capacity, tc.morsels, len(ms), s.Emitted())
			continue
		}
		var all []int
		for i, m := range ms {
			if m.Cap() != tc.capacity {
				t.Errorf("expected capacity %d, got %d", tc.capacity, m.Cap())
			}
			if i < len(ms)-1 && m.Len() != tc.capacity {
				t.Errorf("expected full morsel %d, got len %d", i, m.Len())
			}
			all = append(all, m.Items()...)
		}
		if tc.morsels > 0 && ms[len(ms)-1].Len() != tc.lastLen {
			t.Errorf("expected last morsel len %d, got %d", tc.lastLen, ms[len(ms)-1].Len())
		}
		var want []int
		for i := range tc.n {
			want = append(want, i)
		}
		if diff := cmp.Diff(want, all); diff != "" {
			t.Errorf("n=%d cap=%d: items lost or reordered (-want +got):\n%s", tc.n, tc.capacity, diff)
		}
	}
}

func TestSource_PullsThroughNotYet(t *testing.T) {
	sparse := stream.Filter[int](stream.Range(0, 100), func(i int) bool { return i%10 == 0 })
	s, _ := New[int](sparse, 3)
	ms := collect(t, s)
	if len(ms) != 4 {
		t.Fatalf("expected 4 morsels, got %d", len(ms))
	}
	if diff := cmp.Diff([]int{0, 10, 20}, ms[0].Items()); diff != "" {
		t.Errorf("unexpected first morsel (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{90}, ms[3].Items()); diff != "" {
		t.Errorf("unexpected tail (-want +got):\n%s", diff)
	}
}

func TestSource_Canceled(t *testing.T) {
	s, _ := New[int](stream.Repeat(1), 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if step := s.Poll(ctx); !step.IsDone() {
		t.Errorf("expected done on canceled context, got %s", step)
	}
}

func TestMorsel_Accessors(t *testing.T) {
	s, _ := New[string](stream.FromSlice([]string{"a", "b", "c"}), 5)
	m, _ := s.Poll(context.Background()).Item()
	if m.Len() != 3 || m.Cap() != 5 {
		t.Errorf("expected len 3 cap 5, got len %d cap %d", m.Len(), m.Cap())
	}
	if m.At(2) != "c" {
		t.Errorf("expected c, got %s", m.At(2))
	}
	if items := m.Items(); cap(items) != 3 {
		t.Errorf("expected clamped view capacity 3, got %d", cap(items))
	}

	c := m.Cursor()
	var got []string
	for {
		step := c.Poll(context.Background())
		if step.IsDone() {
			break
		}
		v, _ := step.Item()
		got = append(got, v)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("unexpected cursor items (-want +got):\n%s", diff)
	}
}

func TestMorsel_AtPanics(t *testing.T) {
	s, _ := New[int](stream.Range(0, 2), 4)
	m, _ := s.Poll(context.Background()).Item()
	for _, i := range []int{-1, 2, 3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for index %d", i)
				}
			}()
			m.At(i)
		}()
	}
}
