package source

import (
	"context"
	"reflect"
	"testing"
)

func fruit() *Memory {
	return NewMemory("fruit", []string{"NAME", "COLOR"}, [][]string{
		{"Apple", "red"},
		{"Banana", "yellow"},
		{"Cherry", "Red"},
		{"Date"},
		{"Elderberry", "purple"},
	})
}

func TestMemoryCount(t *testing.T) {
	m := fruit()
	ctx := context.Background()

	tests := []struct {
		filter string
		want   int
	}{
		{"", 5},
		{"red", 2},
		{"RED", 2},
		{"an", 1},
		{"zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := m.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.filter, got, tt.want)
			}
		})
	}
}

func TestMemoryFetch(t *testing.T) {
	m := fruit()
	ctx := context.Background()

	tests := []struct {
		name  string
		q     Query
		names []string
	}{
		{"first page", Query{Start: 0, Length: 2}, []string{"Apple", "Banana"}},
		{"clamped end", Query{Start: 3, Length: 10}, []string{"Date", "Elderberry"}},
		{"past end", Query{Start: 9, Length: 2}, nil},
		{"negative start", Query{Start: -4, Length: 1}, []string{"Apple"}},
		{"zero length", Query{Start: 0, Length: 0}, nil},
		{"filtered", Query{Filter: "red", Start: 0, Length: 5}, []string{"Apple", "Cherry"}},
		{"filtered offset", Query{Filter: "red", Start: 1, Length: 5}, []string{"Cherry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := m.Fetch(ctx, tt.q)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			var names []string
			for _, r := range rows {
				names = append(names, r[0])
			}
			if !reflect.DeepEqual(names, tt.names) {
				t.Errorf("Fetch(%+v) = %v, want %v", tt.q, names, tt.names)
			}
		})
	}
}

func TestMemoryPadsShortRows(t *testing.T) {
	rows, err := fruit().Fetch(context.Background(), Query{Start: 3, Length: 1})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(rows[0]) != 2 || rows[0][1] != "" {
		t.Errorf("row = %q, want a padded row", rows[0])
	}
}

func TestMemoryFilterIndexIsCached(t *testing.T) {
	var calls int
	m := newIndexed("counted", []string{"N"}, 100, func(i int) []string {
		calls++
		return sequenceRow(i)[:1]
	})
	ctx := context.Background()

	if _, err := m.Count(ctx, "1"); err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	scanned := calls
	if _, err := m.Count(ctx, "1"); err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if calls != scanned {
		t.Errorf("second Count rescanned %d rows", calls-scanned)
	}
	if _, err := m.Count(ctx, "2"); err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if calls != 2*scanned {
		t.Errorf("a new filter should rescan, calls = %d", calls)
	}
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fruit().Fetch(ctx, Query{Length: 1}); err == nil {
		t.Error("Fetch() with a canceled context should fail")
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(1000)
	ctx := context.Background()

	n, err := s.Count(ctx, "")
	if err != nil || n != 1000 {
		t.Fatalf("Count() = %d, %v, want 1000", n, err)
	}
	rows, err := s.Fetch(ctx, Query{Start: 998, Length: 5})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Fetch() returned %d rows, want 2", len(rows))
	}
	want := []string{"999", "0x3e6", "996004", "row 999 of the sequence"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row = %q, want %q", rows[0], want)
	}
	if s.ServerSide() {
		t.Error("sequence should be client-side")
	}
}
