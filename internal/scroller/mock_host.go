package scroller

import (
	"sort"
	"sync"
	"time"
)

// MockHost is an in-memory Host and View for testing.
// Redraws complete only when CompleteRedraw is called.
type MockHost struct {
	mu sync.Mutex

	// Host state
	Total      int
	Unfiltered int
	NoPaging   bool
	Server     bool

	// Staged and rendered windows
	ReqStart       int
	ReqLength      int
	Drawn          int
	RedrawRequests int

	// View state
	Top         float64
	IsAttached  bool
	Rendered    float64
	Height      string
	MaxHeight   string
	Window      float64
	RootFont    float64
	Font        float64
	Parent      float64
	Wrapper     float64
	HeightLog   []float64
	Rows        [][]string
	RowLines    float64
	RowLinesFn  func(i int, row []string) float64
	Spacer      float64
	Offset      float64
	Adjusts     int
	Resets      int
	SpacerCalls int

	redraw  listeners
	destroy listeners
	scroll  listeners
	resize  listeners
}

type listeners struct {
	next int
	fns  map[int]func()
}

func (l *listeners) add(mu *sync.Mutex, fn func()) Disposer {
	mu.Lock()
	defer mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		mu.Lock()
		defer mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners) snapshot(mu *sync.Mutex) []func() {
	mu.Lock()
	defer mu.Unlock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(), 0, len(ids))
	for _, id := range ids {
		out = append(out, l.fns[id])
	}
	return out
}

func (l *listeners) count(mu *sync.Mutex) int {
	mu.Lock()
	defer mu.Unlock()
	return len(l.fns)
}

// NewMockHost creates an attached mock with one-line rows.
func NewMockHost(total int, viewport float64) *MockHost {
	return &MockHost{
		Total:      total,
		Unfiltered: total,
		IsAttached: true,
		Rendered:   viewport,
		Window:     viewport,
		RootFont:   1,
		Font:       1,
		RowLines:   1,
	}
}

func (m *MockHost) TotalRecords() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Total
}

func (m *MockHost) UnfilteredRecords() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Unfiltered
}

func (m *MockHost) DisplayStart() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Drawn
}

func (m *MockHost) SetRequestedWindow(start, length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReqStart = start
	m.ReqLength = length
}

func (m *MockHost) RequestRedraw() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedrawRequests++
}

func (m *MockHost) OnRedrawComplete(fn func()) Disposer { return m.redraw.add(&m.mu, fn) }
func (m *MockHost) OnBeforeDestroy(fn func()) Disposer  { return m.destroy.add(&m.mu, fn) }
func (m *MockHost) OnScroll(fn func()) Disposer         { return m.scroll.add(&m.mu, fn) }
func (m *MockHost) OnResize(fn func()) Disposer         { return m.resize.add(&m.mu, fn) }

func (m *MockHost) Paginated() bool  { return !m.NoPaging }
func (m *MockHost) ServerSide() bool { return m.Server }

func (m *MockHost) ScrollTop() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Top
}

// SetScrollTop moves the view and notifies scroll listeners.
func (m *MockHost) SetScrollTop(top float64) {
	m.mu.Lock()
	m.Top = top
	m.mu.Unlock()
	for _, fn := range m.scroll.snapshot(&m.mu) {
		fn()
	}
}

// Scroll is SetScrollTop under the name a test reads best.
func (m *MockHost) Scroll(top float64) {
	m.SetScrollTop(top)
}

// Resize notifies resize listeners.
func (m *MockHost) Resize() {
	for _, fn := range m.resize.snapshot(&m.mu) {
		fn()
	}
}

// CompleteRedraw renders the staged window and notifies listeners.
func (m *MockHost) CompleteRedraw() {
	m.mu.Lock()
	m.Drawn = m.ReqStart
	m.mu.Unlock()
	for _, fn := range m.redraw.snapshot(&m.mu) {
		fn()
	}
}

// Destroy notifies before-destroy listeners.
func (m *MockHost) Destroy() {
	for _, fn := range m.destroy.snapshot(&m.mu) {
		fn()
	}
}

// Listeners returns the number of live subscriptions.
func (m *MockHost) Listeners() int {
	return m.redraw.count(&m.mu) + m.destroy.count(&m.mu) + m.scroll.count(&m.mu) + m.resize.count(&m.mu)
}

func (m *MockHost) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RedrawRequests
}

func (m *MockHost) Requested() Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Window{Start: m.ReqStart, Length: m.ReqLength}
}

func (m *MockHost) WindowHeight() float64 { return m.Window }
func (m *MockHost) RootFontSize() float64 { return m.RootFont }
func (m *MockHost) FontSize() float64     { return m.Font }

func (m *MockHost) Attached() bool { return m.IsAttached }

func (m *MockHost) RenderedHeight() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Rendered
}

func (m *MockHost) StyleHeight() string    { return m.Height }
func (m *MockHost) StyleMaxHeight() string { return m.MaxHeight }

func (m *MockHost) SetHeight(h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rendered = h
	m.HeightLog = append(m.HeightLog, h)
}

func (m *MockHost) ParentInnerHeight() float64  { return m.Parent }
func (m *MockHost) WrapperOuterHeight() float64 { return m.Wrapper }

func (m *MockHost) SampleRows(n int) [][]string {
	if len(m.Rows) > n {
		return m.Rows[:n]
	}
	return m.Rows
}

func (m *MockHost) MeasureRows(rows [][]string) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if m.RowLinesFn != nil {
			out[i] = m.RowLinesFn(i, row)
		} else {
			out[i] = m.RowLines
		}
	}
	return out
}

func (m *MockHost) SetSpacerHeight(h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spacer = h
	m.SpacerCalls++
}

func (m *MockHost) SetContentOffset(y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Offset = y
}

func (m *MockHost) AdjustLayout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Adjusts++
}

func (m *MockHost) ResetLayout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spacer = 0
	m.Offset = 0
	m.Resets++
}

// ManualScheduler is a Scheduler whose clock only moves on Advance.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Time
	fn      func()
	stopped bool
}

// NewManualScheduler creates a scheduler starting at a fixed time.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: time.Unix(1_700_000_000, 0)}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, at: s.now.Add(d), fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock and runs due timers in order, on the caller's
// goroutine.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *manualTimer
		for _, t := range s.timers {
			if t.stopped || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.stopped = true
		s.now = next.at
		s.mu.Unlock()
		next.fn()
	}
}
