package scroller

import (
	"errors"
	"log"
	"sync"
)

// ErrPaginationDisabled is returned by Attach for hosts that render all
// records at once.
var ErrPaginationDisabled = errors.New("pagination must be enabled for virtual scrolling")

// State is the controller state of a session.
type State int

const (
	// StateUninitialized waits for a valid measurement.
	StateUninitialized State = iota
	// StateArmed has a committed window and reacts to scrolling.
	StateArmed
	// StatePending waits for the host to finish a requested redraw.
	StatePending
	// StateDetached has released all subscriptions.
	StateDetached
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateArmed:
		return "armed"
	case StatePending:
		return "pending"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

var (
	registryMu sync.Mutex
	registry   = make(map[Host]*Session)
)

// IsAttached reports whether a session is attached to the host.
func IsAttached(host Host) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	_, ok := registry[host]
	return ok
}

// Session virtualizes one host. All methods are safe for concurrent use.
type Session struct {
	host  Host
	view  View
	cfg   Config
	probe *Probe
	pos   *positioner

	scrollThrottle *throttle
	resizeDebounce *debouncer

	mu         sync.Mutex
	state      State
	metrics    Metrics
	window     Window
	bounds     Boundaries
	lastTotal  int
	dirty      bool // scrolled while a redraw was pending
	force      bool // metrics changed while a redraw was pending
	measureBad bool
	disposers  []Disposer
}

// Attach starts virtualizing host inside view. If host already has a
// session, that session is returned. The initial window is staged on the
// host without a redraw, since the host renders its first page itself.
func Attach(host Host, view View, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registryMu.Lock()
	if s, ok := registry[host]; ok {
		registryMu.Unlock()
		return s, nil
	}
	if !host.Paginated() {
		registryMu.Unlock()
		log.Printf("[WARN] [scroller] %v", ErrPaginationDisabled)
		return nil, ErrPaginationDisabled
	}
	s := newSession(host, view, cfg)
	registry[host] = s
	registryMu.Unlock()

	s.subscribe()
	s.Measure()
	return s, nil
}

func newSession(host Host, view View, cfg Config) *Session {
	s := &Session{
		host:      host,
		view:      view,
		cfg:       cfg,
		probe:     NewProbe(view, view, cfg),
		pos:       newPositioner(view),
		lastTotal: -1,
	}
	sched := cfg.scheduler()
	if cfg.ServerThrottle > 0 {
		s.scrollThrottle = newThrottle(sched, cfg.ServerThrottle, s.scroll)
	}
	s.resizeDebounce = newDebouncer(sched, cfg.ResizeDebounce, s.resized)
	return s
}

func (s *Session) subscribe() {
	d := []Disposer{
		s.view.OnScroll(s.handleScroll),
		s.view.OnResize(s.resizeDebounce.Trigger),
		s.host.OnRedrawComplete(s.handleRedrawComplete),
		s.host.OnBeforeDestroy(s.Detach),
	}
	s.mu.Lock()
	s.disposers = append(s.disposers, d...)
	s.mu.Unlock()
}

// Measure re-measures row and viewport height. Hosts call it after layout
// changes they control, such as becoming visible. A changed capacity or
// row height forces a redraw.
func (s *Session) Measure() {
	s.mu.Lock()
	redraw := s.measureLocked()
	s.mu.Unlock()
	if redraw {
		s.host.RequestRedraw()
	}
}

func (s *Session) measureLocked() bool {
	if s.state == StateDetached {
		return false
	}

	prev := s.metrics
	m := s.probe.Measure()
	s.metrics = m
	if !m.Valid() {
		if !s.measureBad {
			log.Printf("[WARN] [scroller] measurement failed (row height %v, viewport %v); window updates suspended",
				m.RowHeight, m.ViewportHeight)
		}
		s.measureBad = true
		return false
	}
	recovered := s.measureBad
	s.measureBad = false

	length := WindowLength(m.Capacity, s.cfg.BufferFactor)
	s.window.Length = length
	s.host.SetRequestedWindow(s.window.Start, length)

	metricsChanged := prev.Capacity != m.Capacity || (prev.RowHeight != 0 && prev.RowHeight != m.RowHeight)
	switch s.state {
	case StateUninitialized:
		s.arm()
		// Whatever the host rendered while measurement failed was planned
		// without a window, so it must render again.
		if recovered && s.lastTotal > 0 {
			s.state = StatePending
			return true
		}
	case StateArmed:
		if metricsChanged {
			return s.updateLocked(true, true)
		}
	case StatePending:
		if metricsChanged {
			s.force = true
		}
	}
	return false
}

// arm commits the first window without asking the host to redraw. The host
// renders it as part of its own first draw.
func (s *Session) arm() {
	total := s.host.TotalRecords()
	p := Plan(s.view.ScrollTop(), s.metrics, s.cfg, total, forcedBoundaries)
	s.commit(p, total)
	s.state = StateArmed
}

func (s *Session) commit(p PlanResult, total int) {
	s.window = p.Window
	s.bounds = p.Boundaries
	s.lastTotal = total
	s.host.SetRequestedWindow(p.Window.Start, p.Window.Length)
}

// updateLocked plans against the current scroll offset and commits the
// result if a boundary was crossed, or unconditionally with replan. The host
// must redraw when the window moved, or always with rerender. It reports
// whether a redraw is due.
func (s *Session) updateLocked(replan, rerender bool) bool {
	if !s.metrics.Valid() {
		return false
	}
	total := s.host.TotalRecords()
	top := s.view.ScrollTop()
	prev := s.bounds
	if replan || rerender {
		prev = forcedBoundaries
	}

	p := Plan(top, s.metrics, s.cfg, total, prev)
	if !p.Changed {
		return false
	}
	if s.cfg.Debug {
		log.Printf("[DEBUG] [scroller] boundary crossed: top=%.0f start=%d max=%d lower=%.0f upper=%.0f",
			top, p.Window.Start, p.MaxStart, p.Boundaries.Lower, p.Boundaries.Upper)
	}

	redraw := rerender || p.Window != s.window
	s.commit(p, total)
	if !redraw || total == 0 {
		return false
	}
	s.state = StatePending
	return true
}

func (s *Session) handleScroll() {
	if s.scrollThrottle != nil && s.host.ServerSide() {
		s.scrollThrottle.Trigger()
		return
	}
	s.scroll()
}

func (s *Session) scroll() {
	s.mu.Lock()
	var redraw bool
	switch s.state {
	case StateArmed:
		redraw = s.updateLocked(false, false)
	case StatePending:
		s.dirty = true
	}
	s.mu.Unlock()
	if redraw {
		s.host.RequestRedraw()
	}
}

func (s *Session) resized() {
	s.Measure()
	s.view.AdjustLayout()
}

// handleRedrawComplete positions the rendered rows, then re-validates the
// window against the current scroll offset: the completion may belong to a
// host-initiated render, or the user may have moved on while it was pending.
func (s *Session) handleRedrawComplete() {
	s.mu.Lock()
	if s.state == StateDetached {
		s.mu.Unlock()
		return
	}
	if s.state == StateUninitialized {
		// Rows exist now, so an earlier failed measurement may succeed.
		if s.measureLocked() {
			s.force = true
		}
	}
	if !s.metrics.Valid() {
		s.mu.Unlock()
		return
	}

	total := s.host.TotalRecords()
	start := s.host.DisplayStart()
	s.pos.Position(s.metrics.RowHeight, total, start)
	s.window.Start = start

	if s.state == StatePending {
		s.state = StateArmed
	}
	rerender := s.force
	s.force = false
	s.dirty = false
	redraw := s.updateLocked(rerender || total != s.lastTotal, rerender)
	s.mu.Unlock()

	if redraw {
		s.host.RequestRedraw()
	}
}

// ScrollToRow scrolls the view so that row index is at the top. The window
// follows through the normal scroll path.
func (s *Session) ScrollToRow(index int) {
	s.mu.Lock()
	rh := s.metrics.RowHeight
	detached := s.state == StateDetached
	s.mu.Unlock()
	if detached || rh <= 0 {
		return
	}

	total := s.host.TotalRecords()
	if index >= total {
		index = total - 1
	}
	if index < 0 {
		index = 0
	}
	s.view.SetScrollTop(float64(index) * rh)
}

// PageInfo returns the visible page for status displays.
func (s *Session) PageInfo() PageInfo {
	s.mu.Lock()
	m := s.metrics
	s.mu.Unlock()

	total := s.host.TotalRecords()
	unfiltered := total
	if c, ok := s.host.(UnfilteredCounter); ok {
		unfiltered = c.UnfilteredRecords()
	}
	return pageInfo(s.view.ScrollTop(), m, total, unfiltered, s.host.ServerSide())
}

// State returns the controller state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Window returns the committed window.
func (s *Session) Window() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Boundaries returns the committed redraw boundaries.
func (s *Session) Boundaries() Boundaries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// Metrics returns the last measurement.
func (s *Session) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Detach releases every subscription, cancels timers and restores the
// view's layout. It is safe to call more than once.
func (s *Session) Detach() {
	s.mu.Lock()
	if s.state == StateDetached {
		s.mu.Unlock()
		return
	}
	s.state = StateDetached
	disposers := s.disposers
	s.disposers = nil
	s.mu.Unlock()

	if s.scrollThrottle != nil {
		s.scrollThrottle.Stop()
	}
	s.resizeDebounce.Stop()
	for _, d := range disposers {
		d()
	}
	s.pos.Reset()

	registryMu.Lock()
	if registry[s.host] == s {
		delete(registry, s.host)
	}
	registryMu.Unlock()
}
