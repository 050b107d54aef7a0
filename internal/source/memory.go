package source

import (
	"context"
	"strings"
	"sync"
)

// Memory is a client-side source whose rows are available locally. Filtered
// views are indexed once per filter string.
type Memory struct {
	name    string
	columns []string
	n       int
	rowAt   func(i int) []string

	mu      sync.Mutex
	filter  string
	matches []int
}

// NewMemory creates a source over rows. Short rows are padded to the
// column count.
func NewMemory(name string, columns []string, rows [][]string) *Memory {
	for i, row := range rows {
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return newIndexed(name, columns, len(rows), func(i int) []string { return rows[i] })
}

func newIndexed(name string, columns []string, n int, rowAt func(int) []string) *Memory {
	return &Memory{name: name, columns: columns, n: n, rowAt: rowAt}
}

func (m *Memory) Name() string      { return m.name }
func (m *Memory) Columns() []string { return m.columns }
func (m *Memory) ServerSide() bool  { return false }
func (m *Memory) Close() error      { return nil }

func (m *Memory) Count(ctx context.Context, filter string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if filter == "" {
		return m.n, nil
	}
	return len(m.index(filter)), nil
}

func (m *Memory) Fetch(ctx context.Context, q Query) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var idx []int
	total := m.n
	if q.Filter != "" {
		idx = m.index(q.Filter)
		total = len(idx)
	}
	start := max(q.Start, 0)
	end := min(start+q.Length, total)
	if q.Length <= 0 || start >= end {
		return nil, nil
	}

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		r := i
		if idx != nil {
			r = idx[i]
		}
		rows = append(rows, m.rowAt(r))
	}
	return rows, nil
}

// index returns the positions of rows matching filter, reusing the last
// result while the filter is unchanged.
func (m *Memory) index(filter string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if filter == m.filter && m.matches != nil {
		return m.matches
	}

	needle := strings.ToLower(filter)
	matches := make([]int, 0)
	for i := 0; i < m.n; i++ {
		if rowContains(m.rowAt(i), needle) {
			matches = append(matches, i)
		}
	}
	m.filter = filter
	m.matches = matches
	return matches
}

func rowContains(row []string, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}
